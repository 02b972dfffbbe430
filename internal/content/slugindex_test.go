package content

import (
	"context"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugIndex_PartitionedEnglishWinsCollision(t *testing.T) {
	fsys := fstest.MapFS{
		"a-legacy/page.md":         page("Legacy", "2020-01-01", "shared", ""),
		"z-partitioned/en/page.md": page("Partitioned", "2021-01-01", "shared", ""),
	}
	idx := NewSlugIndex(NewStore(fsys, ""), discardLogger(), nil)

	folder, ok, err := idx.Lookup(context.Background(), "shared")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "z-partitioned", folder)
}

func TestSlugIndex_FolderNameIsDefaultSlug(t *testing.T) {
	fsys := fstest.MapFS{
		"first-post/page.md":     page("First", "2020-01-01", "", ""),
		"second-post/en/page.md": page("Second", "2020-01-01", "", ""),
		"third/en/page.md":       page("Third", "2020-01-01", "custom-third", ""),
	}
	m, err := NewSlugIndex(NewStore(fsys, ""), discardLogger(), nil).Map(context.Background())
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"first-post":   "first-post",
		"second-post":  "second-post",
		"custom-third": "third",
	}, m)
}

func TestSlugIndex_SkipsUnparseableFolders(t *testing.T) {
	rec := newCountingRecorder()
	fsys := fstest.MapFS{
		"broken/page.md":  file("---\ntitle: [oops\n---\n"),
		"no-meta/page.md": file("# no front matter\n"),
		"good/page.md":    page("Good", "2020-01-01", "", ""),
	}
	m, err := NewSlugIndex(NewStore(fsys, ""), discardLogger(), rec).Map(context.Background())
	require.NoError(t, err)
	require.Equal(t, map[string]string{"good": "good"}, m)
	require.Equal(t, 2, rec.skipped[SkipReasonParse])
}

func TestSlugIndex_BrokenPartitionedFallsBackToLegacyClaim(t *testing.T) {
	fsys := fstest.MapFS{
		"post/en/page.md": file("---\ntitle: [oops\n---\n"),
		"post/page.md":    page("Post", "2020-01-01", "", ""),
	}
	folder, ok, err := NewSlugIndex(NewStore(fsys, ""), discardLogger(), nil).Lookup(context.Background(), "post")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "post", folder)
}

func TestSlugIndex_FrenchOnlyFoldersResolveWithoutOverriding(t *testing.T) {
	fsys := fstest.MapFS{
		"seul/fr/page.md":       page("Seul", "2020-01-01", "", ""),
		"rival/fr/page.md":      page("Rival", "2020-01-01", "primary", ""),
		"primary/page.md":       page("Primary", "2020-01-01", "", ""),
		"primary/translated.md": file("corps"),
	}
	m, err := NewSlugIndex(NewStore(fsys, ""), discardLogger(), nil).Map(context.Background())
	require.NoError(t, err)
	require.Equal(t, "seul", m["seul"])
	require.Equal(t, "primary", m["primary"])
}

func TestSlugIndex_BuiltOncePerIndex(t *testing.T) {
	rec := newCountingRecorder()
	fsys := fstest.MapFS{
		"one/page.md": page("One", "2020-01-01", "", ""),
	}
	idx := NewSlugIndex(NewStore(fsys, ""), discardLogger(), rec)
	require.False(t, idx.Built())

	_, ok, err := idx.Lookup(context.Background(), "one")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, idx.Built())

	// Content added after the first build is not picked up.
	fsys["two/page.md"] = page("Two", "2020-01-01", "", "")
	_, ok, err = idx.Lookup(context.Background(), "two")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 1, rec.buildCount())
}

func TestSlugIndex_ConcurrentFirstUseBuildsOnce(t *testing.T) {
	rec := newCountingRecorder()
	fsys := fstest.MapFS{}
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		fsys[name+"/en/page.md"] = page(name, "2020-01-01", "", "")
	}
	idx := NewSlugIndex(NewStore(fsys, ""), discardLogger(), rec)

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			folder, ok, err := idx.Lookup(context.Background(), "c")
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "c", folder)
		}()
	}
	wg.Wait()
	require.Equal(t, 1, rec.buildCount())
}

func TestSlugIndex_MapReturnsCopy(t *testing.T) {
	fsys := fstest.MapFS{"one/page.md": page("One", "2020-01-01", "", "")}
	idx := NewSlugIndex(NewStore(fsys, ""), discardLogger(), nil)
	m, err := idx.Map(context.Background())
	require.NoError(t, err)
	delete(m, "one")

	_, ok, err := idx.Lookup(context.Background(), "one")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSlugIndex_CanceledBuildIsNotMemoized(t *testing.T) {
	fsys := fstest.MapFS{"one/page.md": page("One", "2020-01-01", "", "")}
	idx := NewSlugIndex(NewStore(fsys, ""), discardLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := idx.Lookup(ctx, "one")
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, idx.Built())

	_, ok, err := idx.Lookup(context.Background(), "one")
	require.NoError(t, err)
	require.True(t, ok)
}
