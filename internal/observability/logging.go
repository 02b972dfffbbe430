// Package observability carries request-scoped values through a context and
// attaches them to every log record written with that context.
package observability

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/folio/internal/logfields"
)

// LogContext holds structured logging context information.
type LogContext struct {
	RequestID string
	Slug      string
	Locale    string
}

type logContextKeyType string

const logContextKey logContextKeyType = "log-context"

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	lc := extractLogContext(ctx)
	lc.RequestID = requestID
	return context.WithValue(ctx, logContextKey, lc)
}

// WithArticle adds the requested slug and locale to the context.
func WithArticle(ctx context.Context, slug, locale string) context.Context {
	lc := extractLogContext(ctx)
	lc.Slug = slug
	lc.Locale = locale
	return context.WithValue(ctx, logContextKey, lc)
}

func extractLogContext(ctx context.Context) LogContext {
	if ctx == nil {
		return LogContext{}
	}
	if lc, ok := ctx.Value(logContextKey).(LogContext); ok {
		return lc
	}
	return LogContext{}
}

// GetContext returns the structured log context from the provided context.
func GetContext(ctx context.Context) LogContext {
	return extractLogContext(ctx)
}

// RequestID returns the request ID stored in ctx, if any.
func RequestID(ctx context.Context) string {
	return extractLogContext(ctx).RequestID
}

func getLogAttrs(ctx context.Context) []slog.Attr {
	lc := extractLogContext(ctx)
	var attrs []slog.Attr
	if lc.RequestID != "" {
		attrs = append(attrs, logfields.RequestID(lc.RequestID))
	}
	if lc.Slug != "" {
		attrs = append(attrs, logfields.Slug(lc.Slug))
	}
	if lc.Locale != "" {
		attrs = append(attrs, logfields.Locale(lc.Locale))
	}
	return attrs
}

// ContextHandler decorates a handler so records logged with a context carry
// that context's LogContext attributes.
type ContextHandler struct {
	slog.Handler
}

// NewContextHandler wraps h.
func NewContextHandler(h slog.Handler) *ContextHandler {
	return &ContextHandler{Handler: h}
}

// Handle adds the context attributes, skipping keys the record already has.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	attrs := getLogAttrs(ctx)
	if len(attrs) > 0 {
		r = r.Clone()
		present := make(map[string]struct{}, r.NumAttrs())
		r.Attrs(func(a slog.Attr) bool {
			present[a.Key] = struct{}{}
			return true
		})
		for _, a := range attrs {
			if _, ok := present[a.Key]; !ok {
				r.AddAttrs(a)
			}
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithGroup(name)}
}
