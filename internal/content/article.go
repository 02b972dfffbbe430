package content

import (
	"strings"
	"time"

	"git.home.luguber.info/inful/folio/internal/locale"
)

// Layout is the storage convention a folder uses.
type Layout string

const (
	LayoutLegacy      Layout = "legacy"
	LayoutPartitioned Layout = "partitioned"
)

// Article is the front matter record of a document.
type Article struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Author      string `yaml:"author" json:"author"`
	Date        string `yaml:"date" json:"date"`
	Lang        string `yaml:"lang,omitempty" json:"lang,omitempty"`
	// Slug is the authored override. The resolved slug lives on Summary.
	Slug string `yaml:"slug,omitempty" json:"-"`
}

// Published parses Date as RFC 3339 or YYYY-MM-DD. Unparseable dates yield
// the zero time.
func (a Article) Published() time.Time {
	raw := strings.TrimSpace(a.Date)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Summary is the public view of a resolved article.
type Summary struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Author         string `json:"author"`
	Date           string `json:"date"`
	Lang           string `json:"lang,omitempty"`
	Slug           string `json:"slug"`
	Folder         string `json:"folder"`
	HasTranslation bool   `json:"hasTranslation"`
}

// Published returns the parsed publication date.
func (s Summary) Published() time.Time {
	return Article{Date: s.Date}.Published()
}

func newSummary(a Article, folder string, hasTranslation bool) Summary {
	slug := strings.TrimSpace(a.Slug)
	if slug == "" {
		slug = folder
	}
	return Summary{
		Title:          a.Title,
		Description:    a.Description,
		Author:         a.Author,
		Date:           a.Date,
		Lang:           a.Lang,
		Slug:           slug,
		Folder:         folder,
		HasTranslation: hasTranslation,
	}
}

// Loaded is the result of loading one article for one locale.
type Loaded struct {
	Summary
	Article Article
	Locale  locale.Locale
	Layout  Layout
	// Source is the document the metadata came from; BodySource the one the
	// body came from. They differ only for the legacy translated fallback.
	Source      string
	BodySource  string
	Fingerprint string
	Body        *Body
}
