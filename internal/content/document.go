package content

import (
	"errors"
	"fmt"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/folio/internal/frontmatter"
	"git.home.luguber.info/inful/folio/internal/markdown"
)

// Document is a parsed store document.
type Document struct {
	Path        string
	Meta        Article
	Body        []byte
	frontMatter []byte
}

// ReadDocument reads and parses p. A missing file returns an error matching
// fs.ErrNotExist; anything else that prevents parsing wraps ErrInvalidDocument.
func (s *Store) ReadDocument(p string) (*Document, error) {
	raw, err := s.ReadFile(p)
	if err != nil {
		return nil, err
	}
	return ParseDocument(p, raw)
}

// ParseDocument splits raw into front matter and body and decodes the metadata.
func ParseDocument(p string, raw []byte) (*Document, error) {
	fm, body, had, _, err := frontmatter.Split(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, p, err)
	}
	if !had {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, p, ErrMissingFrontMatter)
	}

	doc := &Document{Path: p, Body: body, frontMatter: fm}
	if _, err := frontmatter.Decode(raw, &doc.Meta); err != nil && !errors.Is(err, frontmatter.ErrNoFrontmatter) {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, p, err)
	}
	return doc, nil
}

// Fingerprint is the mdfp content fingerprint of the document.
func (d *Document) Fingerprint() string {
	return mdfp.CalculateFingerprintFromParts(string(d.frontMatter), string(d.Body))
}

// Imports returns the image imports the document declares.
func (d *Document) Imports() []markdown.ImageImport {
	return markdown.ExtractImageImports(d.Body)
}
