package config

import (
	"time"

	"git.home.luguber.info/inful/folio/internal/content"
)

const (
	DefaultContentRoot = "content/articles"
	DefaultBaseURL     = "http://localhost:3000"
	DefaultPort        = 3000
	DefaultMetricsPath = "/metrics"
)

// defaultStaticPages mirrors the site's non-article pages.
var defaultStaticPages = []string{"/", "/en", "/fr", "/about", "/research", "/en/articles", "/fr/articles"}

var defaultRobotsDisallow = []string{"/api/", "/thank-you"}

func applyDefaults(cfg *Config) {
	if cfg.Content.Root == "" {
		cfg.Content.Root = DefaultContentRoot
	}
	if cfg.Content.Extension == "" {
		cfg.Content.Extension = content.DefaultExtension
	}

	if cfg.Site.BaseURL == "" {
		cfg.Site.BaseURL = DefaultBaseURL
	}
	if cfg.Site.Title == "" {
		cfg.Site.Title = "folio"
	}
	if cfg.Site.DefaultImage == "" {
		cfg.Site.DefaultImage = "/portrait.jpg"
	}
	if len(cfg.Site.StaticPages) == 0 {
		cfg.Site.StaticPages = append([]string(nil), defaultStaticPages...)
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.AssetsPrefix == "" {
		cfg.Server.AssetsPrefix = content.DefaultAssetPrefix
	}

	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	if cfg.SEO.RobotsDisallow == nil {
		cfg.SEO.RobotsDisallow = append([]string(nil), defaultRobotsDisallow...)
	}
	if cfg.SEO.FeedMaxAge <= 0 {
		cfg.SEO.FeedMaxAge = time.Hour
	}
}
