// Package markdown renders article bodies through a fixed goldmark pipeline and
// provides the source-level analysis (image imports, component usage, links)
// the content layer needs.
package markdown

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Heading is one entry of a document outline.
type Heading struct {
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
	Level  int    `json:"level"`
}

// Result is the output of a single conversion.
type Result struct {
	HTML     []byte
	Headings []Heading
}

// ResolveFunc maps a Markdown image destination to the URL that should be
// emitted. Returning false keeps the original destination.
type ResolveFunc func(dest string) (string, bool)

var resolverKey = parser.NewContextKey()

// Renderer converts Markdown bodies (front matter already removed) to HTML.
// It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds the renderer used for every article body.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(imageDestinationTransformer{}, 100)),
		),
		goldmark.WithRendererOptions(
			// Article components are authored as raw HTML blocks.
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

// Convert parses src once, collects the h2/h3 outline and renders HTML.
func (r *Renderer) Convert(src []byte, resolve ResolveFunc) (*Result, error) {
	ctx := parser.NewContext()
	if resolve != nil {
		ctx.Set(resolverKey, resolve)
	}
	doc := r.md.Parser().Parse(text.NewReader(src), parser.WithContext(ctx))

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, doc); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return &Result{HTML: buf.Bytes(), Headings: collectHeadings(doc, src)}, nil
}

type imageDestinationTransformer struct{}

func (imageDestinationTransformer) Transform(doc *gmast.Document, _ text.Reader, pc parser.Context) {
	resolve, ok := pc.Get(resolverKey).(ResolveFunc)
	if !ok || resolve == nil {
		return
	}
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if img, ok := n.(*gmast.Image); ok {
			if url, ok := resolve(string(img.Destination)); ok {
				img.Destination = []byte(url)
			}
		}
		return gmast.WalkContinue, nil
	})
}

func collectHeadings(doc gmast.Node, src []byte) []Heading {
	var headings []Heading
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok || h.Level < 2 || h.Level > 3 {
			return gmast.WalkContinue, nil
		}
		anchor := ""
		if id, ok := h.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				anchor = string(b)
			}
		}
		headings = append(headings, Heading{
			Title:  nodeText(h, src),
			Anchor: anchor,
			Level:  h.Level,
		})
		return gmast.WalkSkipChildren, nil
	})
	return headings
}

func nodeText(n gmast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.String:
			buf.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return buf.String()
}

// ExtractLinks parses a Markdown body and extracts link-like constructs.
//
// This is an analysis API; it does not attempt to re-render Markdown.
func ExtractLinks(body []byte, _ Options) ([]Link, error) {
	md := goldmark.New()
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			// Goldmark resolves reference-style links to a Link node with a Destination.
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		}
		return gmast.WalkContinue, nil
	})

	// Reference definitions are stored in the parse context (not represented as AST nodes).
	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}

	return links, nil
}
