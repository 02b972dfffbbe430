package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/folio/internal/foundation/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "folio.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv(EnvSiteURL, "")
	cfg, err := Load(writeConfig(t, "site:\n  title: My Blog\n"))
	require.NoError(t, err)

	require.Equal(t, "My Blog", cfg.Site.Title)
	require.Equal(t, DefaultContentRoot, cfg.Content.Root)
	require.Equal(t, ".md", cfg.Content.Extension)
	require.Equal(t, DefaultBaseURL, cfg.Site.BaseURL)
	require.Equal(t, DefaultPort, cfg.Server.Port)
	require.Equal(t, "/assets", cfg.Server.AssetsPrefix)
	require.Equal(t, LogLevelInfo, cfg.Logging.Level)
	require.Equal(t, LogFormatText, cfg.Logging.Format)
	require.Equal(t, []string{"/api/", "/thank-you"}, cfg.SEO.RobotsDisallow)
	require.Contains(t, cfg.Site.StaticPages, "/research")
}

func TestLoad_ParsesValuesAndExpandsEnv(t *testing.T) {
	t.Setenv("FOLIO_TEST_ROOT", "/srv/articles")
	t.Setenv(EnvSiteURL, "")
	cfg, err := Load(writeConfig(t, `
content:
  root: ${FOLIO_TEST_ROOT}
  extension: .mdx
site:
  base_url: https://example.com/
server:
  port: 8080
  read_timeout: 5s
logging:
  level: DEBUG
  format: Json
seo:
  robots_disallow: []
`))
	require.NoError(t, err)
	require.Equal(t, "/srv/articles", cfg.Content.Root)
	require.Equal(t, ".mdx", cfg.Content.Extension)
	require.Equal(t, "https://example.com", cfg.Site.BaseURL)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, LogLevelDebug, cfg.Logging.Level)
	require.Equal(t, LogFormatJSON, cfg.Logging.Format)
	require.Empty(t, cfg.SEO.RobotsDisallow)
}

func TestLoad_SiteURLEnvironmentOverride(t *testing.T) {
	t.Setenv(EnvSiteURL, "https://override.example/")
	cfg, err := Load(writeConfig(t, "site:\n  base_url: https://file.example\n"))
	require.NoError(t, err)
	require.Equal(t, "https://override.example", cfg.Site.BaseURL)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	t.Setenv(EnvSiteURL, "")
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultContentRoot, cfg.Content.Root)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv(EnvSiteURL, "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	_, err = Load(writeConfig(t, "site: [unterminated\n"))
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	_, err = Load(writeConfig(t, "site:\n  base_url: not-a-url\n"))
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	_, err = Load(writeConfig(t, "server:\n  port: 70000\n"))
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"extension without dot", func(c *Config) { c.Content.Extension = "md" }, "content.extension"},
		{"root assets prefix", func(c *Config) { c.Server.AssetsPrefix = "/" }, "server.assets_prefix"},
		{"relative metrics path", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Path = "metrics" }, "metrics.path"},
		{"relative static page", func(c *Config) { c.Site.StaticPages = []string{"about"} }, "site.static_pages"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			ce, ok := ferrors.AsClassified(err)
			require.True(t, ok)
			field, _ := ce.Context().GetString("field")
			require.Equal(t, tt.field, field)
		})
	}
	require.NoError(t, Default().Validate())
}

func TestInit(t *testing.T) {
	t.Setenv(EnvSiteURL, "")
	p := filepath.Join(t.TempDir(), "folio.yaml")
	require.NoError(t, Init(p, false))

	err := Init(p, false)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	require.NoError(t, Init(p, true))

	cfg, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", cfg.Site.Author.Name)
	require.True(t, cfg.Metrics.Enabled)
}
