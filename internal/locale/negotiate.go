package locale

import "golang.org/x/text/language"

var matcher = language.NewMatcher([]language.Tag{language.English, language.French})

// Negotiate picks the best supported locale for an Accept-Language header
// value. Unparseable or unmatched headers yield Default.
func Negotiate(acceptLanguage string) Locale {
	if acceptLanguage == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return All[idx]
}
