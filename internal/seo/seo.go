// Package seo renders the machine-readable site artifacts: sitemap.xml,
// the RSS feed, robots.txt and llms.txt.
package seo

import (
	"strings"
	"time"

	"git.home.luguber.info/inful/folio/internal/content"
	"git.home.luguber.info/inful/folio/internal/locale"
)

// Site carries the site-wide values every artifact needs.
type Site struct {
	BaseURL     string
	Title       string
	Description string
	AuthorName  string
	AuthorEmail string
	Topics      []string
	StaticPages []string
	Disallow    []string
}

// URL joins p onto the base URL.
func (s Site) URL(p string) string {
	base := strings.TrimRight(s.BaseURL, "/")
	if p == "" || p == "/" {
		return base
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return base + p
}

// ArticlePath returns the public path of an article page.
func ArticlePath(loc locale.Locale, slug string) string {
	return "/" + loc.String() + "/articles/" + slug
}

func published(s content.Summary) (time.Time, bool) {
	t := s.Published()
	return t, !t.IsZero()
}
