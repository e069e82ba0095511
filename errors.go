package fiberauth

import "errors"

var (
	ErrNilRouter = errors.New("fiberauth: router cannot be nil")
	ErrNilConfig = errors.New("fiberauth: config cannot be nil")
	ErrNilEngine = errors.New("fiberauth: engine cannot be nil")
)

// EngineError is returned by GetSession when the engine answers a
// session lookup with a non-success status and a non-empty body.
// Error() is the engine's own message, verbatim, so callers can
// distinguish "no session" (nil Session, nil error) from "the engine
// itself failed".
type EngineError struct {
	StatusCode int
	Message    string
}

func (e *EngineError) Error() string {
	return e.Message
}
