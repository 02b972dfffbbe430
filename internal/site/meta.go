package site

import (
	"strings"

	"git.home.luguber.info/inful/folio/internal/content"
	"git.home.luguber.info/inful/folio/internal/locale"
	"git.home.luguber.info/inful/folio/internal/seo"
)

// pageMeta feeds the <head> of every HTML page.
type pageMeta struct {
	Lang        string
	Title       string
	Description string
	Canonical   string
	Image       string
	OGType      string
	OGLocale    string
	OGAlternate string
	Twitter     string
	Published   string
	Author      string
	Alternates  []alternate
	FeedURL     string
}

type alternate struct {
	HrefLang string
	Href     string
}

func isAbsoluteURL(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

// ogImage turns a resolved preview into an absolute URL, falling back to the
// site's default image.
func (s *Server) ogImage(preview string, ok bool) string {
	img := s.opts.DefaultImage
	if ok && preview != "" {
		img = preview
	}
	if img == "" || isAbsoluteURL(img) {
		return img
	}
	return s.opts.Site.URL(img)
}

func (s *Server) indexMeta(loc locale.Locale) pageMeta {
	m := pageMeta{
		Lang:        loc.String(),
		Title:       s.opts.Site.Title,
		Description: s.opts.Site.Description,
		Canonical:   s.opts.Site.URL("/" + loc.String() + "/articles"),
		Image:       s.ogImage("", false),
		OGType:      "website",
		OGLocale:    loc.OpenGraph(),
		OGAlternate: loc.Other().OpenGraph(),
		Twitter:     s.opts.Twitter,
		FeedURL:     s.opts.Site.URL("/feed.xml"),
	}
	for _, alt := range locale.All {
		m.Alternates = append(m.Alternates, alternate{
			HrefLang: alt.HrefLang(),
			Href:     s.opts.Site.URL("/" + alt.String() + "/articles"),
		})
	}
	return m
}

func (s *Server) articleMeta(a *content.Loaded, image string, translated bool) pageMeta {
	m := pageMeta{
		Lang:        a.Locale.String(),
		Title:       a.Title,
		Description: a.Description,
		Canonical:   s.opts.Site.URL(seo.ArticlePath(a.Locale, a.Slug)),
		Image:       image,
		OGType:      "article",
		OGLocale:    a.Locale.OpenGraph(),
		Twitter:     s.opts.Twitter,
		Author:      a.Author,
		FeedURL:     s.opts.Site.URL("/feed.xml"),
	}
	if t := a.Published(); !t.IsZero() {
		m.Published = t.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	if translated {
		other := a.Locale.Other()
		m.OGAlternate = other.OpenGraph()
		m.Alternates = []alternate{
			{HrefLang: a.Locale.HrefLang(), Href: m.Canonical},
			{HrefLang: other.HrefLang(), Href: s.opts.Site.URL(seo.ArticlePath(other, a.Slug))},
			{HrefLang: "x-default", Href: s.opts.Site.URL(seo.ArticlePath(locale.Default, a.Slug))},
		}
	}
	return m
}
