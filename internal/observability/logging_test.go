package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextValues(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithArticle(ctx, "hello", "fr")

	lc := GetContext(ctx)
	assert.Equal(t, "req-1", lc.RequestID)
	assert.Equal(t, "hello", lc.Slug)
	assert.Equal(t, "fr", lc.Locale)
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	buf.Reset()
	return rec
}

func TestContextHandlerAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil)))

	ctx := WithArticle(WithRequestID(context.Background(), "req-2"), "hello", "en")
	logger.InfoContext(ctx, "loaded")
	rec := decodeLine(t, &buf)
	assert.Equal(t, "req-2", rec["request_id"])
	assert.Equal(t, "hello", rec["slug"])
	assert.Equal(t, "en", rec["locale"])

	logger.InfoContext(ctx, "explicit", slog.String("slug", "other"))
	rec = decodeLine(t, &buf)
	assert.Equal(t, "other", rec["slug"])

	logger.Info("plain")
	rec = decodeLine(t, &buf)
	assert.NotContains(t, rec, "request_id")
}

func TestContextHandlerKeepsDerivedLoggers(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil))).With(slog.String("component", "site"))

	logger.WarnContext(WithRequestID(context.Background(), "req-3"), "warned")
	rec := decodeLine(t, &buf)
	assert.Equal(t, "site", rec["component"])
	assert.Equal(t, "req-3", rec["request_id"])
}
