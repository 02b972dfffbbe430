// Package locale defines the closed set of content languages served by folio
// and the helpers that map them onto URL segments, HTTP negotiation and
// OpenGraph metadata.
package locale

import (
	"strings"

	"golang.org/x/text/language"

	"git.home.luguber.info/inful/folio/internal/foundation/normalization"
)

// Locale is a supported content language.
type Locale string

const (
	English Locale = "en"
	French  Locale = "fr"

	// Default is the locale used when none is requested, and the only locale
	// allowed to fall back to a legacy root document.
	Default = English
)

// All lists supported locales in precedence order.
var All = []Locale{English, French}

var normalizer = normalization.NewNormalizer(map[string]Locale{
	"en": English,
	"fr": French,
}, Default)

var regionTags = map[Locale]language.Tag{
	English: language.AmericanEnglish,
	French:  language.MustParse("fr-FR"),
}

// Parse accepts user input such as CLI flags (case-insensitive, trimmed).
func Parse(raw string) (Locale, error) {
	return normalizer.NormalizeWithError(raw)
}

// FromSegment parses a URL path segment. Only the exact lower-case codes are
// accepted; anything else is a routing not-found condition.
func FromSegment(segment string) (Locale, bool) {
	return normalizer.Strict(segment)
}

// String returns the two-letter code.
func (l Locale) String() string { return string(l) }

// Valid reports whether l is one of the supported locales.
func (l Locale) Valid() bool {
	_, ok := regionTags[l]
	return ok
}

// Other returns the opposite locale of the English/French pair.
func (l Locale) Other() Locale {
	if l == French {
		return English
	}
	return French
}

// IsDefault reports whether l is the default locale.
func (l Locale) IsDefault() bool { return l == Default }

// Tag returns the BCP 47 tag including region (en-US, fr-FR).
func (l Locale) Tag() language.Tag {
	if t, ok := regionTags[l]; ok {
		return t
	}
	return regionTags[Default]
}

// HrefLang returns the value used in alternate link hreflang attributes.
func (l Locale) HrefLang() string { return l.Tag().String() }

// OpenGraph returns the og:locale form (en_US, fr_FR).
func (l Locale) OpenGraph() string {
	return strings.ReplaceAll(l.Tag().String(), "-", "_")
}
