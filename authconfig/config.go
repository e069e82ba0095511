// Package authconfig carries the configuration handed through to the
// external authentication engine. Apart from the base path and the
// environment-derived defaults, every field is opaque to the bridge
// and passed to the engine verbatim.
package authconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// DefaultBasePath is the mount prefix assumed when none is configured.
const DefaultBasePath = "/auth"

type Config struct {
	// Secret is the value the engine uses to sign and encrypt its
	// tokens. Filled from AUTH_SECRET when empty.
	Secret string `yaml:"secret"`

	// BasePath is the URL prefix the authentication routes are mounted
	// under. The plugin derives it per request from the registered
	// route pattern; set it explicitly only when calling GetSession
	// against a non-default mount without the plugin.
	BasePath string `yaml:"basePath"`

	// TrustHost tells the engine to trust the inbound Host header when
	// building callback URLs. Filled from AUTH_TRUST_HOST when unset.
	TrustHost bool `yaml:"trustHost"`

	// RedirectProxyURL is forwarded to the engine for proxied OAuth
	// callbacks. Filled from AUTH_REDIRECT_PROXY_URL when empty.
	RedirectProxyURL string `yaml:"redirectProxyUrl"`

	// Providers are the engine's provider configurations. The bridge
	// never interprets them beyond filling credentials from the
	// environment.
	Providers []*Provider `yaml:"providers"`

	// SessionStrategy is passed through to the engine unchanged.
	SessionStrategy string `yaml:"sessionStrategy"`

	// CookieName is passed through to the engine unchanged.
	CookieName string `yaml:"cookieName"`

	Debug bool `yaml:"debug"`
}

// Provider is one entry in the engine's provider list. All fields are
// engine-defined.
type Provider struct {
	Name         string   `yaml:"name"`
	ClientID     string   `yaml:"clientId"`
	ClientSecret string   `yaml:"clientSecret"`
	AuthURL      string   `yaml:"authUrl"`
	TokenURL     string   `yaml:"tokenUrl"`
	Scopes       []string `yaml:"scopes"`
}

// SetEnvDefaults fills empty fields from the environment. Only empty
// fields are touched, so repeated calls are idempotent.
func (c *Config) SetEnvDefaults() {
	if c.Secret == "" {
		c.Secret = os.Getenv("AUTH_SECRET")
	}

	if !c.TrustHost {
		v := os.Getenv("AUTH_TRUST_HOST")
		c.TrustHost = v == "1" || strings.EqualFold(v, "true")
	}

	if c.RedirectProxyURL == "" {
		c.RedirectProxyURL = os.Getenv("AUTH_REDIRECT_PROXY_URL")
	}

	for _, p := range c.Providers {
		prefix := "AUTH_" + envName(p.Name) + "_"

		if p.ClientID == "" {
			p.ClientID = os.Getenv(prefix + "ID")
		}

		if p.ClientSecret == "" {
			p.ClientSecret = os.Getenv(prefix + "SECRET")
		}
	}
}

// envName maps a provider name like "azure-ad" to the AZURE_AD used in
// its environment variable names.
func envName(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// GetBasePath returns the configured base path, with default fallback.
func (c *Config) GetBasePath() string {
	if c.BasePath != "" {
		return c.BasePath
	}
	return DefaultBasePath
}

// WithBasePath returns a copy of the config carrying the given base
// path. The receiver is never modified: handing the engine a
// per-request copy keeps concurrent requests from racing on a shared
// config value.
func (c *Config) WithBasePath(basePath string) *Config {
	dup := *c
	dup.BasePath = basePath
	return &dup
}

// ProviderNames returns the names of the configured providers, for
// logging.
func (c *Config) ProviderNames() []string {
	names := make([]string, 0, len(c.Providers))
	for _, p := range c.Providers {
		names = append(names, p.Name)
	}
	return names
}

// Load reads a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}
