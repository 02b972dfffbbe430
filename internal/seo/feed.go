package seo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/url"
	"time"

	"git.home.luguber.info/inful/folio/internal/content"
	"git.home.luguber.info/inful/folio/internal/locale"
)

// FeedEntry is one article and its rendered HTML body.
type FeedEntry struct {
	Article content.Summary
	HTML    string
}

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Content string     `xml:"xmlns:content,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	Copyright     string    `xml:"copyright"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Generator     string    `xml:"generator"`
	Image         rssImage  `xml:"image"`
	AtomLink      atomLink  `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type rssImage struct {
	URL   string `xml:"url"`
	Title string `xml:"title"`
	Link  string `xml:"link"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	GUID        rssGUID `xml:"guid"`
	PubDate     string  `xml:"pubDate,omitempty"`
	Description string  `xml:"description"`
	Author      string  `xml:"author,omitempty"`
	Encoded     cdata   `xml:"content:encoded"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type cdata struct {
	Value string `xml:",cdata"`
}

// Feed renders an RSS 2.0 document of the English articles in entries.
// Relative URLs in each body are made absolute against the site URL.
func Feed(site Site, entries []FeedEntry, now time.Time) ([]byte, error) {
	base, err := url.Parse(site.URL("/"))
	if err != nil {
		return nil, fmt.Errorf("parse site url: %w", err)
	}

	author := ""
	if site.AuthorEmail != "" {
		author = fmt.Sprintf("%s (%s)", site.AuthorEmail, site.AuthorName)
	}

	ch := rssChannel{
		Title:         site.Title,
		Link:          site.URL("/"),
		Description:   site.Description,
		Language:      locale.English.HrefLang(),
		Copyright:     fmt.Sprintf("All rights reserved %d", now.Year()),
		LastBuildDate: now.UTC().Format(time.RFC1123Z),
		Generator:     "folio",
		Image:         rssImage{URL: site.URL("/favicon.ico"), Title: site.Title, Link: site.URL("/")},
		AtomLink:      atomLink{Href: site.URL("/feed.xml"), Rel: "self", Type: "application/rss+xml"},
	}
	for _, e := range entries {
		link := site.URL(ArticlePath(locale.English, e.Article.Slug))
		body, err := AbsolutizeHTML(e.HTML, base)
		if err != nil {
			return nil, err
		}
		item := rssItem{
			Title:       e.Article.Title,
			Link:        link,
			GUID:        rssGUID{IsPermaLink: true, Value: link},
			Description: e.Article.Description,
			Author:      author,
			Encoded:     cdata{Value: body},
		}
		if t, ok := published(e.Article); ok {
			item.PubDate = t.UTC().Format(time.RFC1123Z)
		}
		ch.Items = append(ch.Items, item)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(rss{
		Version: "2.0",
		Content: "http://purl.org/rss/1.0/modules/content/",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: ch,
	}); err != nil {
		return nil, fmt.Errorf("encode feed: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
