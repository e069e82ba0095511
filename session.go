package fiberauth

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/authbridge/fiberauth/authconfig"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// Session is the engine-defined login state. The bridge treats it as
// opaque JSON and only checks that it is a non-empty object.
type Session map[string]any

// sessionLocalsKey caches the lookup outcome on the request, so a
// handler chain performs at most one engine round trip even for
// visitors without a session.
const sessionLocalsKey = "fiberauth_session"

// sessionLookup wraps the outcome so a cached "no session" result is
// distinguishable from "not looked up yet" in c.Locals.
type sessionLookup struct {
	session Session
}

// GetSession asks the engine for the session belonging to the
// request's cookies. It builds a synthetic GET against the engine's
// session endpoint carrying only the Cookie header; the rest of the
// inbound request is deliberately dropped so unrelated context never
// leaks into the session check.
//
// It returns (nil, nil) when the engine reports no session, and an
// *EngineError when the engine itself fails.
func GetSession(c *fiber.Ctx, cfg *authconfig.Config, engine Engine) (Session, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if engine == nil {
		return nil, ErrNilEngine
	}

	if cached, ok := c.Locals(sessionLocalsKey).(*sessionLookup); ok {
		return cached.session, nil
	}

	cfg.SetEnvDefaults()

	target := c.Protocol() + "://" + c.Hostname() + cfg.GetBasePath() + "/session"
	req, err := http.NewRequestWithContext(c.UserContext(), fiber.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	if cookie := c.Get(fiber.HeaderCookie); cookie != "" {
		req.Header.Set(fiber.HeaderCookie, cookie)
	}

	res, err := engine.Handle(c.UserContext(), req, cfg)
	if err != nil {
		return nil, err
	}

	body, err := readResponseBody(res)
	if err != nil {
		return nil, err
	}

	// An empty body means "no session" regardless of status, so a 204
	// never reaches the JSON parser.
	if len(bytes.TrimSpace(body)) == 0 {
		c.Locals(sessionLocalsKey, &sessionLookup{})
		return nil, nil
	}

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		var sess Session
		if err := json.Unmarshal(body, &sess); err != nil {
			return nil, err
		}
		if len(sess) == 0 {
			c.Locals(sessionLocalsKey, &sessionLookup{})
			return nil, nil
		}
		c.Locals(sessionLocalsKey, &sessionLookup{session: sess})
		return sess, nil
	}

	var failure struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &failure); err != nil || failure.Message == "" {
		failure.Message = string(body)
	}

	log.WithFields(log.Fields{
		"status": res.StatusCode,
	}).Debug("Session lookup rejected by engine")

	return nil, &EngineError{StatusCode: res.StatusCode, Message: failure.Message}
}

func readResponseBody(res *http.Response) ([]byte, error) {
	if res.Body == nil {
		return nil, nil
	}
	defer res.Body.Close()
	return io.ReadAll(res.Body)
}
