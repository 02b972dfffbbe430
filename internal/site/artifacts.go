package site

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/folio/internal/content"
	"git.home.luguber.info/inful/folio/internal/locale"
	"git.home.luguber.info/inful/folio/internal/logfields"
	"git.home.luguber.info/inful/folio/internal/seo"
)

// Artifacts builds the SEO documents from the current store contents. It
// backs both the HTTP routes and the CLI generators.
type Artifacts struct {
	content *content.Service
	site    seo.Site
	logger  *slog.Logger
	now     func() time.Time
}

// NewArtifacts returns a generator for site. A nil logger uses slog.Default.
func NewArtifacts(svc *content.Service, site seo.Site, logger *slog.Logger) *Artifacts {
	if logger == nil {
		logger = slog.Default()
	}
	return &Artifacts{content: svc, site: site, logger: logger, now: time.Now}
}

// Site returns the site description the artifacts are rendered for.
func (a *Artifacts) Site() seo.Site { return a.site }

// Sitemap renders sitemap.xml over both locales.
func (a *Artifacts) Sitemap(ctx context.Context) ([]byte, error) {
	byLocale := make(map[locale.Locale][]content.Summary, len(locale.All))
	for _, loc := range locale.All {
		items, err := a.content.List(ctx, loc)
		if err != nil {
			return nil, err
		}
		byLocale[loc] = items
	}
	return seo.Sitemap(a.site, byLocale, a.now())
}

// Feed renders the RSS feed of the English listing with full bodies.
// Articles whose body fails to render are left out.
func (a *Artifacts) Feed(ctx context.Context) ([]byte, error) {
	items, err := a.content.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]seo.FeedEntry, 0, len(items))
	for _, item := range items {
		loaded, err := a.content.Get(ctx, item.Slug, locale.English)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			a.logger.WarnContext(ctx, "Skipping feed item", logfields.Slug(item.Slug), logfields.Error(err))
			continue
		}
		rendered, err := loaded.Body.Render()
		if err != nil {
			a.logger.WarnContext(ctx, "Skipping feed item", logfields.Slug(item.Slug), logfields.Error(err))
			continue
		}
		entries = append(entries, seo.FeedEntry{Article: item, HTML: string(rendered.HTML)})
	}
	return seo.Feed(a.site, entries, a.now())
}

// Robots renders robots.txt.
func (a *Artifacts) Robots() []byte { return seo.Robots(a.site) }

// LLMs renders llms.txt.
func (a *Artifacts) LLMs(ctx context.Context) ([]byte, error) {
	items, err := a.content.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return seo.LLMs(a.site, items, a.now()), nil
}
