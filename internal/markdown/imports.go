package markdown

import (
	"bytes"
	"regexp"
)

// ImageImport binds a local name to an image file path declared by an
// import statement (`import Cover from './cover.png'`).
type ImageImport struct {
	Name string
	From string
}

var (
	imageImportRe = regexp.MustCompile(`(?m)^import[ \t]+([A-Za-z0-9_$]+)[ \t]+from[ \t]+['"]([^'"\n]+\.(?:png|jpe?g|webp|gif|svg))['"];?[ \t]*\r?$`)
	anyImportRe   = regexp.MustCompile(`^[ \t]*import[ \t]+\S.*[ \t]+from[ \t]+['"][^'"]+['"];?[ \t]*\r?$`)
	imageUsageRe  = regexp.MustCompile(`<(Image|Figure)\b[^>]*\bsrc=\{([A-Za-z0-9_$]+)\}[^>]*>`)
)

// ExtractImageImports returns the image imports declared in src, in document order.
func ExtractImageImports(src []byte) []ImageImport {
	matches := imageImportRe.FindAllSubmatch(src, -1)
	imports := make([]ImageImport, 0, len(matches))
	for _, m := range matches {
		imports = append(imports, ImageImport{Name: string(m[1]), From: string(m[2])})
	}
	return imports
}

// FirstUsedImage returns the first name in names referenced as the src of an
// Image or Figure component, in document order.
func FirstUsedImage(src []byte, names map[string]struct{}) (string, bool) {
	for _, m := range imageUsageRe.FindAllSubmatch(src, -1) {
		name := string(m[2])
		if _, ok := names[name]; ok {
			return name, true
		}
	}
	return "", false
}

// StripImports removes import statement lines so they are not rendered.
func StripImports(src []byte) []byte {
	lines := bytes.SplitAfter(src, []byte("\n"))
	out := make([]byte, 0, len(src))
	for _, line := range lines {
		if anyImportRe.Match(bytes.TrimRight(line, "\n")) {
			continue
		}
		out = append(out, line...)
	}
	return out
}
