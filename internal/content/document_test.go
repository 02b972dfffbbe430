package content

import (
	"testing"

	"github.com/inful/mdfp"
	"github.com/stretchr/testify/require"
)

func TestParseDocument_DecodesMetadata(t *testing.T) {
	raw := []byte("---\ntitle: Hello\ndescription: Desc\nauthor: Ann\ndate: 2024-03-05\nslug: hello-world\n---\n# Body\n")
	doc, err := ParseDocument("hello/page.md", raw)
	require.NoError(t, err)
	require.Equal(t, Article{
		Title:       "Hello",
		Description: "Desc",
		Author:      "Ann",
		Date:        "2024-03-05",
		Slug:        "hello-world",
	}, doc.Meta)
	require.Equal(t, "# Body\n", string(doc.Body))
}

func TestParseDocument_MissingFrontMatter(t *testing.T) {
	_, err := ParseDocument("x/page.md", []byte("# Just a body\n"))
	require.ErrorIs(t, err, ErrInvalidDocument)
	require.ErrorIs(t, err, ErrMissingFrontMatter)
}

func TestParseDocument_InvalidYAML(t *testing.T) {
	_, err := ParseDocument("x/page.md", []byte("---\ntitle: [unclosed\n---\nbody\n"))
	require.ErrorIs(t, err, ErrInvalidDocument)
}

func TestParseDocument_UnclosedFrontMatter(t *testing.T) {
	_, err := ParseDocument("x/page.md", []byte("---\ntitle: x\nbody\n"))
	require.ErrorIs(t, err, ErrInvalidDocument)
}

func TestDocument_Fingerprint(t *testing.T) {
	doc, err := ParseDocument("x/page.md", []byte("---\ntitle: x\n---\nbody\n"))
	require.NoError(t, err)
	require.Equal(t, mdfp.CalculateFingerprintFromParts("title: x\n", "body\n"), doc.Fingerprint())
}

func TestArticle_Published(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-03-05", "2024-03-05T00:00:00Z"},
		{"2024-03-05T10:30:00Z", "2024-03-05T10:30:00Z"},
		{"2024-03-05T10:30:00", "2024-03-05T10:30:00Z"},
		{" 2024-03-05 ", "2024-03-05T00:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got := Article{Date: tt.date}.Published()
			require.Equal(t, tt.want, got.UTC().Format("2006-01-02T15:04:05Z07:00"))
		})
	}
	require.True(t, Article{Date: "sometime"}.Published().IsZero())
}
