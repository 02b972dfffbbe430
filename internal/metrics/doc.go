// Package metrics provides the observability hooks used by content resolution
// and the HTTP site.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	svc := content.NewService(store, content.WithRecorder(metrics.NoopRecorder{}))
//
// When metrics are enabled the CLI swaps in a PrometheusRecorder bound to a
// dedicated registry and exposes it with HTTPHandler.
package metrics
