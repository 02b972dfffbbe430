package content

import (
	"io/fs"
	"path"
	"strings"

	"git.home.luguber.info/inful/folio/internal/markdown"
)

// AssetResolver maps a store-relative asset path to the URL it is served at.
type AssetResolver interface {
	URL(assetPath string) (string, error)
}

// Body is the renderable handle of a loaded article. Rendering is deferred
// until a caller needs HTML.
type Body struct {
	source   []byte
	dir      string
	assets   AssetResolver
	renderer *markdown.Renderer
}

// Source returns the raw Markdown body without front matter.
func (b *Body) Source() []byte { return b.source }

// Render strips import statements, expands image components and converts the
// body to HTML. Relative image references resolve against the document's
// directory; references that cannot be served are left untouched.
func (b *Body) Render() (*markdown.Result, error) {
	imports := markdown.ExtractImageImports(b.source)
	urls := make(map[string]string, len(imports))
	for _, imp := range imports {
		if u, ok := b.assetURL(imp.From); ok {
			urls[imp.Name] = u
		} else {
			delete(urls, imp.Name)
		}
	}
	src := markdown.ExpandComponents(markdown.StripImports(b.source), urls)
	return b.renderer.Convert(src, func(dest string) (string, bool) {
		if isExternalRef(dest) {
			return "", false
		}
		return b.assetURL(dest)
	})
}

func (b *Body) assetURL(ref string) (string, bool) {
	if b.assets == nil {
		return "", false
	}
	p, err := resolveAssetPath(b.dir, ref)
	if err != nil {
		return "", false
	}
	u, err := b.assets.URL(p)
	if err != nil {
		return "", false
	}
	return u, true
}

// resolveAssetPath joins ref onto docDir and rejects anything that would leave
// the store root.
func resolveAssetPath(docDir, ref string) (string, error) {
	ref = strings.ReplaceAll(strings.TrimSpace(ref), `\`, "/")
	if ref == "" || path.IsAbs(ref) {
		return "", ErrUnsafeAssetPath
	}
	p := path.Join(docDir, ref)
	if p == "." || p == ".." || strings.HasPrefix(p, "../") || !fs.ValidPath(p) {
		return "", ErrUnsafeAssetPath
	}
	return p, nil
}

func isExternalRef(dest string) bool {
	switch {
	case dest == "", strings.HasPrefix(dest, "/"), strings.HasPrefix(dest, "#"):
		return true
	case strings.Contains(dest, "://"), strings.HasPrefix(dest, "data:"), strings.HasPrefix(dest, "mailto:"):
		return true
	}
	return false
}
