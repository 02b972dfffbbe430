package metrics

import (
	"strconv"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "folio"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once           sync.Once
	indexDuration  prom.Histogram
	indexFolders   prom.Gauge
	articleLoads   *prom.CounterVec
	skippedFolders *prom.CounterVec
	listDuration   *prom.HistogramVec
	previewResults *prom.CounterVec
	httpRequests   *prom.CounterVec
	httpDuration   *prom.HistogramVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.indexDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "slug_index_build_duration_seconds",
			Help:      "Duration of slug index builds",
			Buckets:   prom.DefBuckets,
		})
		pr.indexFolders = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "slug_index_folders",
			Help:      "Folders mapped by the most recent slug index build",
		})
		pr.articleLoads = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "article_loads_total",
			Help:      "Article loads by result",
		}, []string{"result"})
		pr.skippedFolders = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_folders_total",
			Help:      "Folders skipped during discovery or listing, by reason",
		}, []string{"reason"})
		pr.listDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "listing_duration_seconds",
			Help:      "Duration of article listings by locale",
			Buckets:   prom.DefBuckets,
		}, []string{"locale"})
		pr.previewResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "preview_resolutions_total",
			Help:      "Preview image resolutions by result",
		}, []string{"result"})
		pr.httpRequests = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "status"})
		pr.httpDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prom.DefBuckets,
		}, []string{"route"})
		reg.MustRegister(pr.indexDuration, pr.indexFolders, pr.articleLoads, pr.skippedFolders,
			pr.listDuration, pr.previewResults, pr.httpRequests, pr.httpDuration)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveIndexBuild(d time.Duration, folders int) {
	if p == nil || p.indexDuration == nil {
		return
	}
	p.indexDuration.Observe(d.Seconds())
	p.indexFolders.Set(float64(folders))
}

func (p *PrometheusRecorder) IncArticleLoad(result LoadResult) {
	if p == nil || p.articleLoads == nil {
		return
	}
	p.articleLoads.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncSkippedFolder(reason string) {
	if p == nil || p.skippedFolders == nil {
		return
	}
	p.skippedFolders.WithLabelValues(reason).Inc()
}

func (p *PrometheusRecorder) ObserveListDuration(locale string, d time.Duration) {
	if p == nil || p.listDuration == nil {
		return
	}
	p.listDuration.WithLabelValues(locale).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPreviewResult(result PreviewResult) {
	if p == nil || p.previewResults == nil {
		return
	}
	p.previewResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveHTTPRequest(route string, status int, d time.Duration) {
	if p == nil || p.httpRequests == nil {
		return
	}
	p.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}
