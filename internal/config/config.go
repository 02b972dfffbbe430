package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/folio/internal/foundation/errors"
)

// Config is the folio configuration file.
type Config struct {
	Content ContentConfig `yaml:"content"`
	Site    SiteConfig    `yaml:"site"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	SEO     SEOConfig     `yaml:"seo"`
}

// ContentConfig locates the article store.
type ContentConfig struct {
	Root      string `yaml:"root"`      // Directory holding one folder per article
	Extension string `yaml:"extension"` // Document extension, e.g. ".md"
}

// SiteConfig describes the public site.
type SiteConfig struct {
	BaseURL      string       `yaml:"base_url"`
	Title        string       `yaml:"title"`
	Description  string       `yaml:"description"`
	Author       AuthorConfig `yaml:"author"`
	Twitter      string       `yaml:"twitter"`       // Handle used for twitter:creator
	DefaultImage string       `yaml:"default_image"` // Preview image when an article has none
	StaticPages  []string     `yaml:"static_pages"`  // Paths listed in the sitemap besides articles
	Topics       []string     `yaml:"topics"`        // Listed in llms.txt
}

// AuthorConfig identifies the site author.
type AuthorConfig struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AssetsPrefix    string        `yaml:"assets_prefix"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// SEOConfig tunes robots.txt and the feed.
type SEOConfig struct {
	RobotsDisallow []string      `yaml:"robots_disallow"`
	FeedMaxAge     time.Duration `yaml:"feed_max_age"`
}

// Load reads configPath, expands ${VAR} references and applies defaults and
// environment overrides before validating. An empty configPath yields the
// defaults.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	cfg := &Config{}
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, ferrors.ConfigError("configuration file not found").
					WithContext("path", configPath).
					Build()
			}
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read configuration file").
				WithContext("path", configPath).
				Build()
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse configuration file").
				WithContext("path", configPath).
				WithSeverity(ferrors.SeverityFatal).
				Build()
		}
	}

	applyDefaults(cfg)
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a configuration holding only defaults.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	example := Default()
	example.Site.BaseURL = "${FOLIO_SITE_URL}"
	example.Site.Title = "Jane Doe"
	example.Site.Description = "Essays and notes on machine learning and software"
	example.Site.Author = AuthorConfig{Name: "Jane Doe", Email: "contact@example.com"}
	example.Site.Twitter = "@janedoe"
	example.Site.Topics = []string{"Machine Learning", "Computer Vision", "Software Engineering"}
	example.Metrics.Enabled = true

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write configuration file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
