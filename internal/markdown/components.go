package markdown

import (
	"html"
	"regexp"
	"strings"
)

var (
	componentRe    = regexp.MustCompile(`<(Image|Figure)\b([^>]*?)/?>`)
	attributeRe    = regexp.MustCompile(`([A-Za-z_:][-A-Za-z0-9_:.]*)=(?:"([^"]*)"|'([^']*)'|\{([^}]*)\})`)
	captionLinkRe  = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	passThroughImg = []string{"alt", "width", "height", "title"}
)

// ExpandComponents rewrites Image and Figure components into plain HTML.
// A `src={Name}` attribute is replaced by urls[Name]; names without a URL
// lose their src.
func ExpandComponents(src []byte, urls map[string]string) []byte {
	return componentRe.ReplaceAllFunc(src, func(tag []byte) []byte {
		m := componentRe.FindSubmatch(tag)
		attrs := parseAttributes(string(m[2]), urls)

		var b strings.Builder
		img := renderImg(attrs)
		switch string(m[1]) {
		case "Figure":
			b.WriteString(`<figure>`)
			b.WriteString(img)
			if caption := attrs["caption"]; caption != "" {
				b.WriteString(`<figcaption>`)
				b.WriteString(renderCaption(caption))
				b.WriteString(`</figcaption>`)
			}
			b.WriteString(`</figure>`)
		default:
			b.WriteString(img)
		}
		return []byte(b.String())
	})
}

func parseAttributes(raw string, urls map[string]string) map[string]string {
	attrs := map[string]string{}
	for _, m := range attributeRe.FindAllStringSubmatch(raw, -1) {
		name := m[1]
		switch {
		case m[4] != "" && name == "src":
			if u, ok := urls[strings.TrimSpace(m[4])]; ok {
				attrs[name] = u
			}
		case m[4] != "":
			attrs[name] = strings.Trim(strings.TrimSpace(m[4]), `"'`)
		case m[3] != "":
			attrs[name] = m[3]
		default:
			attrs[name] = m[2]
		}
	}
	return attrs
}

func renderImg(attrs map[string]string) string {
	var b strings.Builder
	b.WriteString(`<img`)
	if s, ok := attrs["src"]; ok {
		b.WriteString(` src="` + html.EscapeString(s) + `"`)
	}
	for _, name := range passThroughImg {
		if v, ok := attrs[name]; ok {
			b.WriteString(` ` + name + `="` + html.EscapeString(v) + `"`)
		}
	}
	b.WriteString(` loading="lazy">`)
	return b.String()
}

// renderCaption escapes caption text and turns [text](url) into external links.
func renderCaption(caption string) string {
	var b strings.Builder
	last := 0
	for _, loc := range captionLinkRe.FindAllStringSubmatchIndex(caption, -1) {
		b.WriteString(html.EscapeString(caption[last:loc[0]]))
		text := caption[loc[2]:loc[3]]
		href := caption[loc[4]:loc[5]]
		b.WriteString(`<a href="` + html.EscapeString(href) + `" target="_blank" rel="noopener noreferrer">`)
		b.WriteString(html.EscapeString(text))
		b.WriteString(`</a>`)
		last = loc[1]
	}
	b.WriteString(html.EscapeString(caption[last:]))
	return b.String()
}
