// Package fiberauth bridges Fiber's request/reply abstraction to an
// external authentication engine speaking standard net/http
// request/response semantics. The bridge only translates formats: an
// inbound Fiber request becomes a canonical *http.Request, the engine
// does all authentication work, and the engine's *http.Response is
// replayed onto the Fiber reply. Session validation, provider OAuth
// flows, CSRF protection and cookie cryptography all live inside the
// engine.
package fiberauth

import (
	"context"
	"net/http"

	"github.com/authbridge/fiberauth/authconfig"
)

// Engine is the external authentication engine. It owns every
// well-known authentication route (sign-in, sign-out, per-provider
// callbacks, session) under the base path carried by the config.
// Implementations must treat the request as read-only.
type Engine interface {
	Handle(ctx context.Context, req *http.Request, cfg *authconfig.Config) (*http.Response, error)
}

// EngineFunc adapts a plain function to the Engine interface.
type EngineFunc func(ctx context.Context, req *http.Request, cfg *authconfig.Config) (*http.Response, error)

func (f EngineFunc) Handle(ctx context.Context, req *http.Request, cfg *authconfig.Config) (*http.Response, error) {
	return f(ctx, req, cfg)
}
