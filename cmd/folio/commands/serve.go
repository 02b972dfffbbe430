package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/folio/internal/content"
	"git.home.luguber.info/inful/folio/internal/metrics"
	"git.home.luguber.info/inful/folio/internal/site"
	"git.home.luguber.info/inful/folio/internal/watch"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Port  int  `short:"p" help:"Port to listen on (overrides server.port)"`
	Watch bool `short:"w" help:"Refresh the slug index when content changes on disk"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		recorder metrics.Recorder = metrics.NoopRecorder{}
		registry *prometheus.Registry
	)
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	env, err := openConfig(g, cfg, content.WithRecorder(recorder))
	if err != nil {
		return err
	}
	opts := site.Options{
		Site:            env.site,
		Twitter:         env.cfg.Site.Twitter,
		DefaultImage:    env.cfg.Site.DefaultImage,
		FeedMaxAge:      env.cfg.SEO.FeedMaxAge,
		Recorder:        recorder,
		Logger:          env.logger,
		ReadTimeout:     env.cfg.Server.ReadTimeout,
		WriteTimeout:    env.cfg.Server.WriteTimeout,
		ShutdownTimeout: env.cfg.Server.ShutdownTimeout,
	}
	if registry != nil {
		opts.MetricsPath = env.cfg.Metrics.Path
		opts.Registry = registry
	}
	srv, err := site.New(env.service, opts)
	if err != nil {
		return err
	}

	port := env.cfg.Server.Port
	if s.Port != 0 {
		port = s.Port
	}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return srv.ListenAndServe(gctx, fmt.Sprintf(":%d", port))
	})
	if s.Watch {
		w, err := watch.New(env.cfg.Content.Root, env.service.Refresh, watch.WithLogger(env.logger))
		if err != nil {
			stop()
			_ = group.Wait()
			return err
		}
		group.Go(func() error { return w.Run(gctx) })
	}
	return group.Wait()
}
