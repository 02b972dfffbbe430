package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\nkey: value\n---\n# Title\n")

	fm, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	input := []byte("---\nkey: value\n# Title\n")

	fm, body, had, style, err := Split(input)
	_ = fm
	_ = body
	_ = style
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\r\nkey: value\r\n---\r\n# Title\r\n")

	fm, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestSplit_EmptyFrontmatterBlock_SplitsAsHadWithEmptyFrontmatter(t *testing.T) {
	input := []byte("---\n---\n# Title\n")

	fm, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestParseYAML_ValidYAML_ReturnsMap(t *testing.T) {
	fm := []byte("uid: abc\ntags:\n  - one\n")

	fields, err := ParseYAML(fm)
	require.NoError(t, err)
	require.Equal(t, "abc", fields["uid"])
	require.Equal(t, []any{"one"}, fields["tags"])
}

func TestParseYAML_Empty_ReturnsEmptyMap(t *testing.T) {
	fields, err := ParseYAML(nil)
	require.NoError(t, err)
	require.Empty(t, fields)
}

func TestParseYAML_InvalidYAML_ReturnsError(t *testing.T) {
	_, err := ParseYAML([]byte(": not yaml"))
	require.Error(t, err)
}

type testMeta struct {
	Title string `yaml:"title"`
	Date  string `yaml:"date"`
	Slug  string `yaml:"slug,omitempty"`
}

func TestDecode_PopulatesStructAndReturnsBody(t *testing.T) {
	input := []byte("---\ntitle: Starry Nights\ndate: 2023-04-01\nextra: ignored\n---\n# Body\n")

	var meta testMeta
	body, err := Decode(input, &meta)
	require.NoError(t, err)
	require.Equal(t, "Starry Nights", meta.Title)
	require.Equal(t, "2023-04-01", meta.Date)
	require.Empty(t, meta.Slug)
	require.Equal(t, []byte("# Body\n"), body)
}

func TestDecode_NoFrontmatter_ReturnsSentinelAndBody(t *testing.T) {
	input := []byte("# Just a body\n")

	var meta testMeta
	body, err := Decode(input, &meta)
	require.ErrorIs(t, err, ErrNoFrontmatter)
	require.Equal(t, input, body)
}

func TestDecode_InvalidYAML_ReturnsSentinel(t *testing.T) {
	input := []byte("---\ntitle: [unclosed\n---\nbody\n")

	var meta testMeta
	_, err := Decode(input, &meta)
	require.ErrorIs(t, err, ErrInvalidYAML)
}

func TestDecode_MissingClosingDelimiter(t *testing.T) {
	var meta testMeta
	_, err := Decode([]byte("---\ntitle: x\n"), &meta)
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
}
