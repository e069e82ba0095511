package fiberauth

import (
	"strings"

	"github.com/authbridge/fiberauth/authconfig"
	"github.com/authbridge/fiberauth/bodyparser"
	"github.com/gofiber/fiber/v2"
	"github.com/jamesread/golure/pkg/redact"
	log "github.com/sirupsen/logrus"
)

// DefaultParsers is the body parser registry used by RegisterPlugin.
// Host applications that need their own form handling can register a
// parser here before the plugin does, and the plugin will leave it
// alone.
var DefaultParsers = bodyparser.NewRegistry()

// RegisterPlugin mounts the authentication engine on a Fiber router.
// It fills environment-derived defaults on the config, ensures a
// form-urlencoded body parser is available, and registers one
// catch-all route for every HTTP method under the router's prefix:
//
//	app := fiber.New()
//	fiberauth.RegisterPlugin(app.Group("/auth"), cfg, engine)
//
// Engine errors propagate unchanged to Fiber's error handler.
func RegisterPlugin(router fiber.Router, cfg *authconfig.Config, engine Engine) error {
	return RegisterPluginWithParsers(router, cfg, engine, DefaultParsers)
}

// RegisterPluginWithParsers is RegisterPlugin with an explicit body
// parser registry, for hosts that keep per-app registries.
func RegisterPluginWithParsers(router fiber.Router, cfg *authconfig.Config, engine Engine, parsers *bodyparser.Registry) error {
	if router == nil {
		return ErrNilRouter
	}
	if cfg == nil {
		return ErrNilConfig
	}
	if engine == nil {
		return ErrNilEngine
	}
	if parsers == nil {
		parsers = DefaultParsers
	}

	cfg.SetEnvDefaults()

	// The host may already have registered its own form parser; a
	// second registration must not fail the plugin.
	if !parsers.Has(bodyparser.MIMEFormURLEncoded) {
		if err := parsers.Register(bodyparser.MIMEFormURLEncoded, bodyparser.FormURLEncoded); err != nil {
			return err
		}
	}

	log.WithFields(log.Fields{
		"providers": cfg.ProviderNames(),
		"secret":    redact.RedactString(cfg.Secret),
	}).Debug("Registered authentication catch-all route")

	router.All("/*", newEngineHandler(cfg, engine, parsers))
	return nil
}

func newEngineHandler(cfg *authconfig.Config, engine Engine, parsers *bodyparser.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		base := basePath(c.Route().Path)

		req, err := toEngineRequest(c, parsers)
		if err != nil {
			return err
		}

		// The engine gets a per-request config copy carrying the base
		// path; the shared config is never written after registration.
		res, err := engine.Handle(c.UserContext(), req, cfg.WithBasePath(base))
		if err != nil {
			log.WithFields(log.Fields{
				"path":     c.Path(),
				"basePath": base,
			}).WithError(err).Debug("Authentication engine returned an error")
			return err
		}

		return sendEngineResponse(c, res)
	}
}

// basePath strips the wildcard segment from a registered route
// pattern, leaving the literal mount prefix: "/auth/*" yields "/auth".
func basePath(routePattern string) string {
	if i := strings.Index(routePattern, "/*"); i >= 0 {
		return routePattern[:i]
	}
	return strings.TrimSuffix(routePattern, "/")
}
