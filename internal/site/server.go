package site

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/folio/internal/content"
	ferrors "git.home.luguber.info/inful/folio/internal/foundation/errors"
	"git.home.luguber.info/inful/folio/internal/locale"
	"git.home.luguber.info/inful/folio/internal/logfields"
	"git.home.luguber.info/inful/folio/internal/metrics"
	"git.home.luguber.info/inful/folio/internal/seo"
)

// Options configures a Server.
type Options struct {
	Site         seo.Site
	Twitter      string
	DefaultImage string
	// FeedMaxAge is the Cache-Control max-age of the SEO documents.
	FeedMaxAge time.Duration
	// MetricsPath exposes Registry when non-empty.
	MetricsPath string
	Registry    *prometheus.Registry
	Recorder    metrics.Recorder
	Logger      *slog.Logger

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server is the public HTTP site.
type Server struct {
	content   *content.Service
	artifacts *Artifacts
	opts      Options
	logger    *slog.Logger
	recorder  metrics.Recorder
	adapter   *ferrors.HTTPErrorAdapter
	pages     *template.Template
	handler   http.Handler
	started   time.Time
}

// New wires the routes and middleware for svc.
func New(svc *content.Service, opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	pages, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		content:   svc,
		artifacts: NewArtifacts(svc, opts.Site, opts.Logger),
		opts:      opts,
		logger:    opts.Logger,
		recorder:  opts.Recorder,
		adapter:   ferrors.NewHTTPErrorAdapter(opts.Logger),
		pages:     pages,
		started:   time.Now(),
	}
	s.handler = chain(s.logger, s.recorder, s.adapter)(s.routes())
	return s, nil
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	for _, loc := range locale.All {
		mux.HandleFunc("GET /"+loc.String(), s.handleLocaleHome)
		mux.HandleFunc("GET /"+loc.String()+"/articles", s.handleIndex)
		mux.HandleFunc("GET /"+loc.String()+"/articles/{slug}", s.handleArticle)
	}
	mux.HandleFunc("GET /articles/{slug}", s.handleLegacyArticle)

	mux.HandleFunc("GET /api/articles", s.handleAPIList)
	mux.HandleFunc("GET /api/articles/{locale}/{slug}", s.handleAPIArticle)

	mux.HandleFunc("GET /sitemap.xml", s.handleSitemap)
	mux.HandleFunc("GET /feed.xml", s.handleFeed)
	mux.HandleFunc("GET /robots.txt", s.handleRobots)
	mux.HandleFunc("GET /llms.txt", s.handleLLMs)

	mux.HandleFunc("GET "+s.content.Assets().Prefix()+"/", s.handleAsset)
	mux.HandleFunc("GET /health", s.handleHealth)
	if s.opts.MetricsPath != "" {
		mux.Handle("GET "+s.opts.MetricsPath, metrics.HTTPHandler(s.opts.Registry))
	}

	mux.HandleFunc("/", s.handleNotFound)
	return mux
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully within ShutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to bind listener").
			WithContext("addr", addr).
			Build()
	}
	return s.Serve(ctx, ln)
}

// Serve runs the site on a pre-bound listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.opts.ReadTimeout,
		ReadHeaderTimeout: s.opts.ReadTimeout,
		WriteTimeout:      s.opts.WriteTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server started", slog.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "http server failed").Build()
	case <-ctx.Done():
	}

	timeout := s.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("HTTP server shutdown incomplete", logfields.Error(err))
		return fmt.Errorf("http server shutdown: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}
