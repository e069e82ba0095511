package authconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetEnvDefaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "env-secret")
	t.Setenv("AUTH_TRUST_HOST", "true")
	t.Setenv("AUTH_REDIRECT_PROXY_URL", "https://proxy.example.com")
	t.Setenv("AUTH_GITHUB_ID", "gh-id")
	t.Setenv("AUTH_GITHUB_SECRET", "gh-secret")
	t.Setenv("AUTH_AZURE_AD_ID", "az-id")

	cfg := &Config{
		Providers: []*Provider{
			{Name: "github"},
			{Name: "azure-ad", ClientSecret: "explicit"},
		},
	}
	cfg.SetEnvDefaults()

	assert.Equal(t, "env-secret", cfg.Secret)
	assert.True(t, cfg.TrustHost)
	assert.Equal(t, "https://proxy.example.com", cfg.RedirectProxyURL)
	assert.Equal(t, "gh-id", cfg.Providers[0].ClientID)
	assert.Equal(t, "gh-secret", cfg.Providers[0].ClientSecret)
	assert.Equal(t, "az-id", cfg.Providers[1].ClientID)

	// Explicit values win over the environment.
	assert.Equal(t, "explicit", cfg.Providers[1].ClientSecret)
}

func TestSetEnvDefaultsIdempotent(t *testing.T) {
	t.Setenv("AUTH_SECRET", "first")

	cfg := &Config{}
	cfg.SetEnvDefaults()
	require.Equal(t, "first", cfg.Secret)

	t.Setenv("AUTH_SECRET", "second")
	cfg.SetEnvDefaults()
	assert.Equal(t, "first", cfg.Secret)
}

func TestGetBasePathDefault(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, "/auth", cfg.GetBasePath())

	cfg.BasePath = "/admin/auth"
	assert.Equal(t, "/admin/auth", cfg.GetBasePath())
}

func TestWithBasePathCopies(t *testing.T) {
	cfg := &Config{Secret: "s"}

	dup := cfg.WithBasePath("/auth")

	assert.Equal(t, "/auth", dup.BasePath)
	assert.Equal(t, "s", dup.Secret)
	assert.Equal(t, "", cfg.BasePath)
}

func TestProviderNames(t *testing.T) {
	cfg := &Config{
		Providers: []*Provider{{Name: "github"}, {Name: "gitlab"}},
	}
	assert.Equal(t, []string{"github", "gitlab"}, cfg.ProviderNames())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
secret: file-secret
trustHost: true
sessionStrategy: jwt
providers:
  - name: github
    clientId: gh-id
    scopes:
      - read:user
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-secret", cfg.Secret)
	assert.True(t, cfg.TrustHost)
	assert.Equal(t, "jwt", cfg.SessionStrategy)
	require.Len(t, cfg.Providers, 1)
	assert.Equal(t, "github", cfg.Providers[0].Name)
	assert.Equal(t, "gh-id", cfg.Providers[0].ClientID)
	assert.Equal(t, []string{"read:user"}, cfg.Providers[0].Scopes)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("secret: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
