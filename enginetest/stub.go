// Package enginetest provides an authentication engine test double, so
// the bridge can be exercised without a real engine behind it.
package enginetest

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/authbridge/fiberauth/authconfig"
)

// Stub is an Engine test double. It records every canonical request
// and config it receives and answers with Respond, or with a bare 200
// when Respond is nil.
type Stub struct {
	mu       sync.Mutex
	requests []*http.Request
	configs  []*authconfig.Config

	// Respond produces the stubbed engine response. Leave nil for an
	// empty 200.
	Respond func(req *http.Request, cfg *authconfig.Config) (*http.Response, error)
}

func (s *Stub) Handle(_ context.Context, req *http.Request, cfg *authconfig.Config) (*http.Response, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.configs = append(s.configs, cfg)
	s.mu.Unlock()

	if s.Respond == nil {
		return Response(http.StatusOK, nil, ""), nil
	}
	return s.Respond(req, cfg)
}

// Requests returns a copy of the canonical requests seen so far.
func (s *Stub) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*http.Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Configs returns a copy of the configs seen so far.
func (s *Stub) Configs() []*authconfig.Config {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*authconfig.Config, len(s.configs))
	copy(out, s.configs)
	return out
}

// LastRequest returns the most recent canonical request, or nil.
func (s *Stub) LastRequest() *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}

// CallCount returns how many times the stub was invoked.
func (s *Stub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Response builds the canonical response shape an engine returns. An
// empty body yields a response without a body at all.
func Response(status int, header http.Header, body string) *http.Response {
	if header == nil {
		header = http.Header{}
	}

	res := &http.Response{
		StatusCode: status,
		Header:     header,
	}

	if body != "" {
		res.Body = io.NopCloser(bytes.NewReader([]byte(body)))
	}

	return res
}
