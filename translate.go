package fiberauth

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/authbridge/fiberauth/bodyparser"
	"github.com/gofiber/fiber/v2"
)

// toEngineRequest converts a Fiber request into the canonical
// *http.Request the engine consumes. The URL is rebuilt absolute from
// protocol, host and the original path+query, and the request context
// is the Fiber user context so host-side cancellation reaches the
// engine.
func toEngineRequest(c *fiber.Ctx, parsers *bodyparser.Registry) (*http.Request, error) {
	target := c.Protocol() + "://" + c.Hostname() + c.OriginalURL()

	// GET/HEAD requests must not carry a body into the canonical
	// request, and an empty body stays absent rather than attached.
	var body io.Reader
	if methodMayHaveBody(c.Method()) && len(c.Body()) > 0 {
		rendered, err := parsers.Render(c.Get(fiber.HeaderContentType), c.Body())
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(rendered)
	}

	req, err := http.NewRequestWithContext(c.UserContext(), c.Method(), target, body)
	if err != nil {
		return nil, err
	}

	// fasthttp reuses the key/value slices between requests; string()
	// copies them out before they are recycled. Content-Length and
	// Host are derived from the canonical body and URL instead: the
	// inbound values go stale once a parser re-renders the body.
	c.Request().Header.VisitAll(func(key, value []byte) {
		name := string(key)
		if strings.EqualFold(name, fiber.HeaderContentLength) || strings.EqualFold(name, fiber.HeaderHost) {
			return
		}
		req.Header.Add(name, string(value))
	})

	return req, nil
}

func methodMayHaveBody(method string) bool {
	switch method {
	case fiber.MethodGet, fiber.MethodHead:
		return false
	}
	return true
}

// sendEngineResponse replays a canonical engine response onto the
// Fiber reply and fully determines it: status, headers and body are
// taken from the engine verbatim. Headers are added, not set, so
// multi-valued headers such as repeated Set-Cookie survive the
// translation.
func sendEngineResponse(c *fiber.Ctx, res *http.Response) error {
	for key, values := range res.Header {
		for _, value := range values {
			c.Response().Header.Add(key, value)
		}
	}

	c.Status(res.StatusCode)

	if res.Body == nil {
		return nil
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if len(body) == 0 {
		return nil
	}
	return c.Send(body)
}
