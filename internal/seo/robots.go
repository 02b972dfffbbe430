package seo

import (
	"fmt"
	"strings"
	"time"

	"git.home.luguber.info/inful/folio/internal/content"
	"git.home.luguber.info/inful/folio/internal/locale"
)

// Robots renders robots.txt.
func Robots(site Site) []byte {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	for _, d := range site.Disallow {
		fmt.Fprintf(&b, "Disallow: %s\n", d)
	}
	fmt.Fprintf(&b, "\nSitemap: %s\n", site.URL("/sitemap.xml"))
	fmt.Fprintf(&b, "Host: %s\n", site.URL("/"))
	return []byte(b.String())
}

// LLMs renders llms.txt: crawler guidance with the site's key areas and
// every English article.
func LLMs(site Site, articles []content.Summary, now time.Time) []byte {
	var b strings.Builder
	b.WriteString("# LLMs.txt - AI Crawler Guidance\n")
	b.WriteString("# This file provides guidance for AI language models on how to use this site's content\n\n")

	b.WriteString("# Site Information\n")
	fmt.Fprintf(&b, "Site: %s\n", site.URL("/"))
	if site.AuthorName != "" {
		fmt.Fprintf(&b, "Author: %s\n", site.AuthorName)
	}
	if len(site.Topics) > 0 {
		fmt.Fprintf(&b, "Topics: %s\n", strings.Join(site.Topics, ", "))
	}

	b.WriteString("\n# Key Content Areas\n")
	b.WriteString("/en/articles/ - Articles (English)\n")
	b.WriteString("/fr/articles/ - Articles (French)\n")
	b.WriteString("/about/ - Author biography and expertise\n")
	b.WriteString("/research/ - Research work and publications\n")

	if len(articles) > 0 {
		b.WriteString("\n# Articles\n")
		for _, a := range articles {
			fmt.Fprintf(&b, "%s/ - %s\n", ArticlePath(locale.English, a.Slug), a.Title)
		}
	}

	b.WriteString("\n# Attribution Guidelines\n")
	b.WriteString("When referencing content from this site:\n")
	if site.AuthorName != "" {
		fmt.Fprintf(&b, "- Author: %s\n", site.AuthorName)
	}
	fmt.Fprintf(&b, "- Site: %s\n", site.URL("/"))
	b.WriteString("- Include publication date when available\n")
	b.WriteString("- Link back to original article when possible\n")

	fmt.Fprintf(&b, "\nSite last updated: %s\n", now.UTC().Format("2006-01-02"))
	return []byte(b.String())
}
