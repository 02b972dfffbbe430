package seo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"git.home.luguber.info/inful/folio/internal/content"
	"git.home.luguber.info/inful/folio/internal/locale"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// staticRank assigns change frequency and priority to known static pages.
var staticRank = map[string]struct {
	freq     string
	priority float64
}{
	"/":            {"weekly", 1},
	"/en":          {"weekly", 1},
	"/fr":          {"weekly", 1},
	"/about":       {"monthly", 0.8},
	"/research":    {"monthly", 0.8},
	"/en/articles": {"weekly", 0.9},
	"/fr/articles": {"weekly", 0.9},
}

// Sitemap renders the static pages followed by every article in each locale.
func Sitemap(site Site, articles map[locale.Locale][]content.Summary, now time.Time) ([]byte, error) {
	set := urlset{XMLNS: sitemapNS}
	for _, p := range site.StaticPages {
		rank, ok := staticRank[p]
		if !ok {
			rank.freq, rank.priority = "monthly", 0.5
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        site.URL(p),
			LastMod:    now.UTC().Format(time.RFC3339),
			ChangeFreq: rank.freq,
			Priority:   fmt.Sprintf("%.1f", rank.priority),
		})
	}
	for _, loc := range locale.All {
		for _, a := range articles[loc] {
			u := sitemapURL{
				Loc:        site.URL(ArticlePath(loc, a.Slug)),
				ChangeFreq: "monthly",
				Priority:   "0.7",
			}
			if t, ok := published(a); ok {
				u.LastMod = t.UTC().Format(time.RFC3339)
			}
			set.URLs = append(set.URLs, u)
		}
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
