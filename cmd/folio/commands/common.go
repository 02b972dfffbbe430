package commands

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/folio/internal/config"
	"git.home.luguber.info/inful/folio/internal/content"
	ferrors "git.home.luguber.info/inful/folio/internal/foundation/errors"
	"git.home.luguber.info/inful/folio/internal/locale"
	"git.home.luguber.info/inful/folio/internal/logfields"
	"git.home.luguber.info/inful/folio/internal/observability"
	"git.home.luguber.info/inful/folio/internal/seo"
)

// DefaultConfigPath is used when --config is not given. It may be absent.
const DefaultConfigPath = "folio.yaml"

// Global carries process-wide state shared by all commands.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
	Err    io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"folio.yaml"`
	Content string           `help:"Content root directory (overrides content.root)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Serve   ServeCmd   `cmd:"" help:"Serve the site over HTTP"`
	List    ListCmd    `cmd:"" help:"List the articles of a locale"`
	Show    ShowCmd    `cmd:"" help:"Show one article"`
	OGImage OGImageCmd `cmd:"" name:"og-image" help:"Print the preview image URL of an article"`
	Check   CheckCmd   `cmd:"" help:"Validate the content store"`
	Sitemap SitemapCmd `cmd:"" help:"Write sitemap.xml to stdout"`
	Feed    FeedCmd    `cmd:"" help:"Write the RSS feed to stdout"`
	Robots  RobotsCmd  `cmd:"" help:"Write robots.txt to stdout"`
	LLMs    LLMsCmd    `cmd:"" name:"llms" help:"Write llms.txt to stdout"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	if g.Out == nil {
		g.Out = os.Stdout
	}
	if g.Err == nil {
		g.Err = os.Stderr
	}
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = newLogger(g.Err, level, config.LogFormatText)
	slog.SetDefault(g.Logger)
	return nil
}

func newLogger(w io.Writer, level slog.Level, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if format == config.LogFormatJSON {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(observability.NewContextHandler(h))
}

// loadConfig reads --config. A missing file falls back to defaults when it
// is the default path or --content was given.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	path := c.Config
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && (path == DefaultConfigPath || c.Content != "") {
		g.logger().Debug("No configuration file, using defaults", logfields.Path(path))
		path = ""
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if c.Content != "" {
		cfg.Content.Root = c.Content
	}
	if !c.Verbose && g.Err != nil {
		g.Logger = newLogger(g.Err, cfg.Logging.Level.SlogLevel(), cfg.Logging.Format)
		slog.SetDefault(g.Logger)
	}
	return cfg, nil
}

// environment is what most commands need: configuration and a service over
// the content root.
type environment struct {
	cfg     *config.Config
	logger  *slog.Logger
	service *content.Service
	site    seo.Site
}

func (c *CLI) open(g *Global, opts ...content.Option) (*environment, error) {
	cfg, err := c.loadConfig(g)
	if err != nil {
		return nil, err
	}
	return openConfig(g, cfg, opts...)
}

func openConfig(g *Global, cfg *config.Config, opts ...content.Option) (*environment, error) {
	info, err := os.Stat(cfg.Content.Root)
	if err != nil || !info.IsDir() {
		return nil, ferrors.ConfigError("content root is not a directory").
			WithContext("path", cfg.Content.Root).
			Build()
	}

	logger := g.logger()
	opts = append([]content.Option{
		content.WithLogger(logger),
		content.WithAssetPrefix(cfg.Server.AssetsPrefix),
	}, opts...)
	store := content.OpenDir(cfg.Content.Root, cfg.Content.Extension)
	return &environment{
		cfg:     cfg,
		logger:  logger,
		service: content.NewService(store, opts...),
		site:    siteFromConfig(cfg),
	}, nil
}

func siteFromConfig(cfg *config.Config) seo.Site {
	return seo.Site{
		BaseURL:     cfg.Site.BaseURL,
		Title:       cfg.Site.Title,
		Description: cfg.Site.Description,
		AuthorName:  cfg.Site.Author.Name,
		AuthorEmail: cfg.Site.Author.Email,
		Topics:      cfg.Site.Topics,
		StaticPages: cfg.Site.StaticPages,
		Disallow:    cfg.SEO.RobotsDisallow,
	}
}

func (g *Global) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func (g *Global) out() io.Writer {
	if g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// parseLocale accepts en/fr in any case. Other values are not-found, like an
// unknown locale segment in a URL.
func parseLocale(raw string) (locale.Locale, error) {
	loc, err := locale.Parse(raw)
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryNotFound, "unknown locale").
			WithContext("locale", raw).
			Build()
	}
	return loc, nil
}
