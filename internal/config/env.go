package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvSiteURL overrides site.base_url when set.
const EnvSiteURL = "FOLIO_SITE_URL"

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads .env files that exist. Variables already present in the
// process environment are never overwritten.
func loadEnvFiles() {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			slog.Warn("Failed to load env file", slog.String("file", name), slog.String("error", err.Error()))
			continue
		}
		slog.Debug("Loaded environment variables", slog.String("file", name))
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvSiteURL)); v != "" {
		cfg.Site.BaseURL = v
	}
	cfg.Site.BaseURL = strings.TrimRight(cfg.Site.BaseURL, "/")
}
