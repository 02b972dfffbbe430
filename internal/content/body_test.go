package content

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/folio/internal/locale"
	"git.home.luguber.info/inful/folio/internal/markdown"
)

func TestBody_RenderResolvesImagesAndStripsImports(t *testing.T) {
	body := "import Cover from './cover.png'\n" +
		"import Missing from './missing.png'\n\n" +
		"## Overview\n\n" +
		"<Figure src={Cover} alt=\"cover\" caption=\"The [cover](https://example.com)\" />\n\n" +
		"![inline](./img/inline.gif) ![remote](https://cdn.example.com/r.png)\n\n" +
		"<Image src={Missing} alt=\"gone\" />\n"
	fsys := fstest.MapFS{
		"post/page.md":        page("Post", "2024-01-01", "", body),
		"post/cover.png":      file("cover"),
		"post/img/inline.gif": file("gif"),
	}
	svc := newTestService(t, fsys)

	loaded, err := svc.Get(context.Background(), "post", locale.English)
	require.NoError(t, err)
	res, err := loaded.Body.Render()
	require.NoError(t, err)

	coverURL, err := svc.Assets().URL("post/cover.png")
	require.NoError(t, err)
	inlineURL, err := svc.Assets().URL("post/img/inline.gif")
	require.NoError(t, err)

	html := string(res.HTML)
	require.NotContains(t, html, "import Cover")
	require.Contains(t, html, `<figure><img src="`+coverURL+`" alt="cover" loading="lazy">`)
	require.Contains(t, html, `<a href="https://example.com" target="_blank" rel="noopener noreferrer">cover</a>`)
	require.Contains(t, html, `<img src="`+inlineURL+`" alt="inline">`)
	require.Contains(t, html, `<img src="https://cdn.example.com/r.png" alt="remote">`)
	require.Contains(t, html, `<img alt="gone" loading="lazy">`)
	require.Equal(t, []markdown.Heading{{Title: "Overview", Anchor: "overview", Level: 2}}, res.Headings)
}

func TestBody_RenderRedeclaredImportUsesLast(t *testing.T) {
	body := "import A from './b.png'\nimport A from './a.png'\n\n<Image src={A} alt=\"x\" />\n"
	svc := newTestService(t, fstest.MapFS{
		"post/page.md": page("Post", "2024-01-01", "", body),
		"post/a.png":   file("a"),
		"post/b.png":   file("b"),
	})

	loaded, err := svc.Get(context.Background(), "post", locale.English)
	require.NoError(t, err)
	res, err := loaded.Body.Render()
	require.NoError(t, err)

	aURL, err := svc.Assets().URL("post/a.png")
	require.NoError(t, err)
	require.Contains(t, string(res.HTML), `<img src="`+aURL+`" alt="x" loading="lazy">`)
}

func TestResolveAssetPath(t *testing.T) {
	tests := []struct {
		dir, ref string
		want     string
		wantErr  bool
	}{
		{"post", "./a.png", "post/a.png", false},
		{"post/fr", "../a.png", "post/a.png", false},
		{"post", "img/../a.png", "post/a.png", false},
		{"post", `img\a.png`, "post/img/a.png", false},
		{"post", "../../a.png", "", true},
		{"post", "/a.png", "", true},
		{"post", "", "", true},
		{"post", "..", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.dir+"|"+tt.ref, func(t *testing.T) {
			got, err := resolveAssetPath(tt.dir, tt.ref)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsafeAssetPath)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
