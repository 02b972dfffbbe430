package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/folio/internal/content"
	ferrors "git.home.luguber.info/inful/folio/internal/foundation/errors"
)

func writeStore(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return root
}

func sampleStore(t *testing.T) string {
	return writeStore(t, map[string]string{
		"hello/en/page.md": "---\ntitle: Hello\ndescription: First\nauthor: Jane\ndate: 2024-05-01\n---\n" +
			"import Cover from './cover.png'\n\n## Intro\n\n<Image src={Cover} alt=\"c\" />\n",
		"hello/en/cover.png": "png",
		"hello/fr/page.md":   "---\ntitle: Bonjour\ndescription: Premier\nauthor: Jane\ndate: 2024-05-01\n---\nTexte\n",
		"old/page.md":        "---\ntitle: Old\ndescription: Legacy\nauthor: Jane\ndate: 2020-01-01\n---\nBody\n",
	})
}

// run parses args like the binary does and executes the selected command.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FOLIO_SITE_URL", "")

	var out bytes.Buffer
	g := &Global{Out: &out, Err: io.Discard}
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("folio"),
		kong.Vars{"version": "test"},
		kong.Bind(g),
		kong.Exit(func(int) { t.Fatalf("unexpected exit for %v", args) }),
	)
	require.NoError(t, err)

	if !hasConfigFlag(args) {
		args = append([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}, args...)
	}
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	err = kctx.Run(g, cli)
	return out.String(), err
}

func hasConfigFlag(args []string) bool {
	for _, a := range args {
		if a == "--config" || a == "-c" {
			return true
		}
	}
	return false
}

func exitCode(err error) int {
	return ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err)
}

func TestListTable(t *testing.T) {
	root := sampleStore(t)

	out, err := run(t, "--content", root, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "DATE"))
	assert.Contains(t, lines[1], "hello")
	assert.Contains(t, lines[1], "yes")
	assert.Contains(t, lines[2], "old")
	assert.Contains(t, lines[2], "no")
}

func TestListJSONFrench(t *testing.T) {
	root := sampleStore(t)

	out, err := run(t, "--content", root, "list", "--locale", "FR", "--json")
	require.NoError(t, err)
	var items []content.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Bonjour", items[0].Title)
	assert.Equal(t, "hello", items[0].Slug)
}

func TestListUnknownLocaleIsNotFound(t *testing.T) {
	root := sampleStore(t)

	_, err := run(t, "--content", root, "list", "--locale", "de")
	require.Error(t, err)
	assert.Equal(t, 4, exitCode(err))
}

func TestShow(t *testing.T) {
	root := sampleStore(t)

	out, err := run(t, "--content", root, "show", "hello", "--html")
	require.NoError(t, err)
	assert.Contains(t, out, "Title:       Hello\n")
	assert.Contains(t, out, "URL:         http://localhost:3000/en/articles/hello\n")
	assert.Contains(t, out, "Translation: true\n")
	assert.Contains(t, out, `<h2 id="intro">Intro</h2>`)
	assert.Contains(t, out, `<img src="/assets/hello/en/cover.`)

	out, err = run(t, "--content", root, "show", "old")
	require.NoError(t, err)
	assert.Contains(t, out, "Layout:      legacy\n")
	assert.True(t, strings.HasSuffix(out, "Body\n"))

	_, err = run(t, "--content", root, "show", "missing")
	require.Error(t, err)
	assert.Equal(t, 4, exitCode(err))
}

func TestOGImage(t *testing.T) {
	root := sampleStore(t)

	out, err := run(t, "--content", root, "og-image", "hello")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "http://localhost:3000/assets/hello/en/cover."), out)

	_, err = run(t, "--content", root, "og-image", "old")
	require.Error(t, err)
	assert.Equal(t, 4, exitCode(err))
}

func TestCheck(t *testing.T) {
	out, err := run(t, "--content", sampleStore(t), "check")
	require.NoError(t, err)
	assert.Equal(t, "No issues found\n", out)

	broken := writeStore(t, map[string]string{
		"a/en/page.md":    "---\ntitle: A\nslug: shared\n---\n",
		"b/en/page.md":    "---\ntitle: B\nslug: shared\n---\n",
		"c/translated.md": "---\ntitle: C\n---\n",
		"d/en/page.md":    "---\ntitle: [oops\n---\n",
	})
	out, err = run(t, "--content", broken, "check")
	require.Error(t, err)
	assert.Equal(t, 11, exitCode(err))
	assert.Contains(t, out, string(content.IssueSlugCollision))
	assert.Contains(t, out, string(content.IssueDanglingTranslated))
	assert.Contains(t, out, string(content.IssueParse))
}

func TestArtifacts(t *testing.T) {
	root := sampleStore(t)

	out, err := run(t, "--content", root, "robots")
	require.NoError(t, err)
	assert.Contains(t, out, "Sitemap: http://localhost:3000/sitemap.xml\n")
	assert.Contains(t, out, "Disallow: /api/\n")

	out, err = run(t, "--content", root, "sitemap")
	require.NoError(t, err)
	assert.Contains(t, out, "<loc>http://localhost:3000/fr/articles/hello</loc>")

	out, err = run(t, "--content", root, "feed")
	require.NoError(t, err)
	assert.Contains(t, out, "<title>Old</title>")

	out, err = run(t, "--content", root, "llms")
	require.NoError(t, err)
	assert.Contains(t, out, "/en/articles/old/ - Old\n")
}

func TestConfigFileDrivesContentRoot(t *testing.T) {
	root := sampleStore(t)
	cfgPath := filepath.Join(t.TempDir(), "folio.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("content:\n  root: "+root+"\nsite:\n  base_url: https://example.com\n"), 0o600))

	out, err := run(t, "--config", cfgPath, "og-image", "hello")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "https://example.com/assets/hello/en/cover."), out)
}

func TestMissingExplicitConfigIsConfigError(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "list")
	require.Error(t, err)
	assert.Equal(t, 7, exitCode(err))
}

func TestMissingContentRoot(t *testing.T) {
	_, err := run(t, "--content", filepath.Join(t.TempDir(), "nope"), "list")
	require.Error(t, err)
	assert.Equal(t, 7, exitCode(err))
}

func TestInit(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "folio.yaml")

	out, err := run(t, "--config", cfgPath, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "initialized successfully")
	_, statErr := os.Stat(cfgPath)
	require.NoError(t, statErr)

	_, err = run(t, "--config", cfgPath, "init")
	require.Error(t, err)
	assert.Equal(t, 7, exitCode(err))

	_, err = run(t, "--config", cfgPath, "init", "--force")
	require.NoError(t, err)
}
