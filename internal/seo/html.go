package seo

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var urlAttributes = map[string]struct{}{"href": {}, "src": {}, "poster": {}}

// AbsolutizeHTML rewrites relative href/src/poster attributes of an HTML
// fragment against base. Fragment anchors and absolute URLs are kept.
func AbsolutizeHTML(fragment string, base *url.URL) (string, error) {
	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), container)
	if err != nil {
		return "", fmt.Errorf("parse html fragment: %w", err)
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		rewriteURLs(n, base)
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("render html fragment: %w", err)
		}
	}
	return buf.String(), nil
}

func rewriteURLs(n *html.Node, base *url.URL) {
	if n.Type == html.ElementNode {
		for i, attr := range n.Attr {
			if _, ok := urlAttributes[attr.Key]; !ok || attr.Namespace != "" {
				continue
			}
			if strings.HasPrefix(attr.Val, "#") {
				continue
			}
			ref, err := url.Parse(attr.Val)
			if err != nil || ref.IsAbs() {
				continue
			}
			n.Attr[i].Val = base.ResolveReference(ref).String()
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteURLs(c, base)
	}
}
