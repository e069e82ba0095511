// Package bodyparser holds the content-type parsers applied to inbound
// request bodies before they reach the authentication engine. Content
// types without a registered parser pass through untouched.
package bodyparser

import (
	"errors"
	"fmt"
	"mime"
	"net/url"
	"strings"
	"sync"
)

// MIMEFormURLEncoded is the content type the plugin registers a parser
// for by default.
const MIMEFormURLEncoded = "application/x-www-form-urlencoded"

// ErrAlreadyRegistered is returned when a content type is registered
// twice on the same registry.
var ErrAlreadyRegistered = errors.New("bodyparser: content type already registered")

// ParserFunc re-renders a raw request body into the canonical bytes
// handed to the engine.
type ParserFunc func(body []byte) ([]byte, error)

// Registry maps normalized content types to parsers. Safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]ParserFunc
}

func NewRegistry() *Registry {
	return &Registry{parsers: map[string]ParserFunc{}}
}

// normalize strips parameters such as charset and lowercases the
// media type, so "Application/JSON; charset=utf-8" and
// "application/json" share one registry slot.
func normalize(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}

// Register adds a parser for a content type. Registering a content
// type twice returns ErrAlreadyRegistered; use Has to probe first when
// the host application may have registered its own.
func (r *Registry) Register(contentType string, fn ParserFunc) error {
	key := normalize(contentType)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.parsers[key]; dup {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, key)
	}

	r.parsers[key] = fn
	return nil
}

// Has reports whether a parser is registered for the content type.
func (r *Registry) Has(contentType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.parsers[normalize(contentType)]
	return ok
}

// Render applies the parser registered for the content type, or
// returns the body unchanged when none is.
func (r *Registry) Render(contentType string, body []byte) ([]byte, error) {
	r.mu.RLock()
	fn := r.parsers[normalize(contentType)]
	r.mu.RUnlock()

	if fn == nil {
		return body, nil
	}
	return fn(body)
}

// FormURLEncoded parses and re-encodes a form body. This is the same
// parse-then-serialize normalization the host framework's form parser
// would apply before the body reaches a handler.
func FormURLEncoded(body []byte) ([]byte, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, err
	}
	return []byte(values.Encode()), nil
}
