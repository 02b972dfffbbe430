package config

import (
	"net/url"
	"strings"

	ferrors "git.home.luguber.info/inful/folio/internal/foundation/errors"
)

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Site.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ferrors.ConfigError("site.base_url must be an absolute http(s) URL").
			WithContext("field", "site.base_url").
			Build()
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return ferrors.ConfigError("server.port out of range").
			WithContext("field", "server.port").
			Build()
	}
	if !strings.HasPrefix(c.Content.Extension, ".") {
		return ferrors.ConfigError("content.extension must start with a dot").
			WithContext("field", "content.extension").
			Build()
	}
	if !strings.HasPrefix(c.Server.AssetsPrefix, "/") || c.Server.AssetsPrefix == "/" {
		return ferrors.ConfigError("server.assets_prefix must be a path below /").
			WithContext("field", "server.assets_prefix").
			Build()
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return ferrors.ConfigError("metrics.path must start with /").
			WithContext("field", "metrics.path").
			Build()
	}
	for _, p := range c.Site.StaticPages {
		if !strings.HasPrefix(p, "/") {
			return ferrors.ConfigError("site.static_pages entries must start with /").
				WithContext("field", "site.static_pages").
				Build()
		}
	}
	return nil
}
