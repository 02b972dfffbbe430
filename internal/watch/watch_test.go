package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestShouldIgnoreEvent(t *testing.T) {
	require.True(t, shouldIgnoreEvent("/tmp/.hidden.md"))
	require.True(t, shouldIgnoreEvent("/tmp/#foo#"))
	require.True(t, shouldIgnoreEvent("/tmp/foo.swp"))
	require.True(t, shouldIgnoreEvent("/tmp/page.md~"))
	require.True(t, shouldIgnoreEvent("/tmp/.DS_Store"))
	require.True(t, shouldIgnoreEvent("/tmp/Thumbs.db"))
	require.False(t, shouldIgnoreEvent("/tmp/post/en/page.md"))
	require.False(t, shouldIgnoreEvent("/tmp/post/cover.png"))
}

func TestTriggerIsDebounced(t *testing.T) {
	var calls atomic.Int32
	w, err := New(t.TempDir(), func() { calls.Add(1) }, WithDebounce(30*time.Millisecond), quiet())
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	for range 10 {
		w.trigger()
	}
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRunRefreshesOnWrite(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "post", "en"), 0o755))

	changed := make(chan struct{}, 8)
	w, err := New(root, func() { changed <- struct{}{} }, WithDebounce(20*time.Millisecond), quiet())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(root, "post", "en", "page.md"), []byte("---\ntitle: x\n---\n"), 0o644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no refresh after write")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewFailsForMissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), func() {}, quiet())
	require.Error(t, err)
}
