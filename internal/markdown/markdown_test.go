package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderer_Convert_CollectsOutlineAndRendersHTML(t *testing.T) {
	r := NewRenderer()
	src := []byte("# Title\n\n## Getting Started\n\nSome *text*.\n\n### Deeper Dive\n\n#### Too deep\n")

	res, err := r.Convert(src, nil)
	require.NoError(t, err)
	require.Contains(t, string(res.HTML), `<h2 id="getting-started">Getting Started</h2>`)
	require.Contains(t, string(res.HTML), `<em>text</em>`)
	require.Equal(t, []Heading{
		{Title: "Getting Started", Anchor: "getting-started", Level: 2},
		{Title: "Deeper Dive", Anchor: "deeper-dive", Level: 3},
	}, res.Headings)
}

func TestRenderer_Convert_ResolvesImageDestinations(t *testing.T) {
	r := NewRenderer()
	src := []byte("![A cat](./cat.png) and ![remote](https://example.com/x.png)\n")

	res, err := r.Convert(src, func(dest string) (string, bool) {
		if dest == "./cat.png" {
			return "/assets/post/cat.0123456789abcdef.png", true
		}
		return "", false
	})
	require.NoError(t, err)
	require.Contains(t, string(res.HTML), `<img src="/assets/post/cat.0123456789abcdef.png" alt="A cat">`)
	require.Contains(t, string(res.HTML), `<img src="https://example.com/x.png" alt="remote">`)
}

func TestRenderer_Convert_PassesRawHTMLBlocks(t *testing.T) {
	r := NewRenderer()
	src := []byte("Intro\n\n<figure><img src=\"/a.png\" loading=\"lazy\"></figure>\n\nOutro\n")

	res, err := r.Convert(src, nil)
	require.NoError(t, err)
	require.Contains(t, string(res.HTML), `<figure><img src="/a.png" loading="lazy"></figure>`)
}

func TestRenderer_Convert_GFMTables(t *testing.T) {
	r := NewRenderer()
	res, err := r.Convert([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"), nil)
	require.NoError(t, err)
	require.Contains(t, string(res.HTML), "<table>")
}
