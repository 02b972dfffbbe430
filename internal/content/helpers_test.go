package content

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"git.home.luguber.info/inful/folio/internal/metrics"
)

// page builds a document with front matter. slug may be empty.
func page(title, date, slug, body string) *fstest.MapFile {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", title)
	b.WriteString("description: A test article\n")
	b.WriteString("author: Test Author\n")
	fmt.Fprintf(&b, "date: %q\n", date)
	if slug != "" {
		fmt.Fprintf(&b, "slug: %s\n", slug)
	}
	b.WriteString("---\n")
	b.WriteString(body)
	return &fstest.MapFile{Data: []byte(b.String())}
}

func file(s string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(s)}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, fsys fstest.MapFS, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{WithLogger(discardLogger())}, opts...)
	return NewService(NewStore(fsys, ""), opts...)
}

type countingRecorder struct {
	metrics.NoopRecorder

	mu       sync.Mutex
	builds   int
	skipped  map[string]int
	loads    map[metrics.LoadResult]int
	previews map[metrics.PreviewResult]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		skipped:  map[string]int{},
		loads:    map[metrics.LoadResult]int{},
		previews: map[metrics.PreviewResult]int{},
	}
}

func (r *countingRecorder) ObserveIndexBuild(time.Duration, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builds++
}

func (r *countingRecorder) IncSkippedFolder(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped[reason]++
}

func (r *countingRecorder) IncArticleLoad(result metrics.LoadResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads[result]++
}

func (r *countingRecorder) IncPreviewResult(result metrics.PreviewResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.previews[result]++
}

func (r *countingRecorder) buildCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.builds
}
