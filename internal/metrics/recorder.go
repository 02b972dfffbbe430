package metrics

import "time"

// LoadResult enumerates article load outcomes for counters.
type LoadResult string

const (
	LoadOK         LoadResult = "ok"
	LoadNotFound   LoadResult = "not_found"
	LoadParseError LoadResult = "parse_error"
)

// PreviewResult enumerates preview image resolution outcomes.
type PreviewResult string

const (
	PreviewFound PreviewResult = "found"
	PreviewNone  PreviewResult = "none"
)

// Recorder defines observability hooks for content resolution and HTTP serving.
// Implementations may forward to Prometheus or any other backend. Components
// default to NoopRecorder so metrics stay optional.
type Recorder interface {
	ObserveIndexBuild(d time.Duration, folders int)
	IncArticleLoad(result LoadResult)
	IncSkippedFolder(reason string)
	ObserveListDuration(locale string, d time.Duration)
	IncPreviewResult(result PreviewResult)
	ObserveHTTPRequest(route string, status int, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveIndexBuild(time.Duration, int) {}
func (NoopRecorder) IncArticleLoad(LoadResult) {}
func (NoopRecorder) IncSkippedFolder(string) {}
func (NoopRecorder) ObserveListDuration(string, time.Duration) {}
func (NoopRecorder) IncPreviewResult(PreviewResult) {}
func (NoopRecorder) ObserveHTTPRequest(string, int, time.Duration) {}
