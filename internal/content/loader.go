package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"git.home.luguber.info/inful/folio/internal/frontmatter"
	"git.home.luguber.info/inful/folio/internal/locale"
	"git.home.luguber.info/inful/folio/internal/logfields"
	"git.home.luguber.info/inful/folio/internal/markdown"
)

// errNotApplicable signals that a strategy has nothing to offer for a folder;
// the chain moves on to the next one.
var errNotApplicable = errors.New("strategy not applicable")

// resolution is what a strategy produced: where metadata and body came from.
type resolution struct {
	meta   *Document
	body   *Document
	layout Layout
	// tagged means the metadata was borrowed from another locale and must be
	// tagged with the requested one.
	tagged bool
}

type strategy struct {
	name    string
	resolve func(s *Store, folder string, loc locale.Locale) (*resolution, error)
}

// strategies is the ordered fallback chain; the first success wins.
var strategies = []strategy{
	{name: "partitioned", resolve: resolvePartitioned},
	{name: "legacy", resolve: resolveLegacyDefault},
	{name: "legacy-translated", resolve: resolveLegacyTranslated},
}

func resolvePartitioned(s *Store, folder string, loc locale.Locale) (*resolution, error) {
	doc, err := readIfExists(s, s.PartitionedPath(folder, loc))
	if err != nil {
		return nil, err
	}
	return &resolution{meta: doc, body: doc, layout: LayoutPartitioned}, nil
}

func resolveLegacyDefault(s *Store, folder string, loc locale.Locale) (*resolution, error) {
	if !loc.IsDefault() {
		return nil, errNotApplicable
	}
	doc, err := readIfExists(s, s.LegacyPath(folder))
	if err != nil {
		return nil, err
	}
	return &resolution{meta: doc, body: doc, layout: LayoutLegacy}, nil
}

func resolveLegacyTranslated(s *Store, folder string, loc locale.Locale) (*resolution, error) {
	if loc.IsDefault() {
		return nil, errNotApplicable
	}
	legacy, translated := s.LegacyPath(folder), s.TranslatedPath(folder)
	if !s.Exists(legacy) || !s.Exists(translated) {
		return nil, errNotApplicable
	}
	meta, err := readIfExists(s, legacy)
	if err != nil {
		return nil, err
	}
	raw, err := s.ReadFile(translated)
	if err != nil {
		if isNotExist(err) {
			return nil, errNotApplicable
		}
		return nil, err
	}
	// The companion file's own front matter, if any, is not used.
	body := &Document{Path: translated, Body: raw}
	if fm, b, had, _, splitErr := frontmatter.Split(raw); splitErr == nil && had {
		body.Body, body.frontMatter = b, fm
	}
	return &resolution{meta: meta, body: body, layout: LayoutLegacy, tagged: true}, nil
}

func readIfExists(s *Store, p string) (*Document, error) {
	doc, err := s.ReadDocument(p)
	if isNotExist(err) {
		return nil, errNotApplicable
	}
	return doc, err
}

// Loader resolves a folder and locale to a loaded article.
type Loader struct {
	store    *Store
	assets   AssetResolver
	renderer *markdown.Renderer
	logger   *slog.Logger
}

// NewLoader returns a Loader reading from store. assets may be nil, in which
// case rendered bodies keep their original image references.
func NewLoader(store *Store, assets AssetResolver, renderer *markdown.Renderer, logger *slog.Logger) *Loader {
	if renderer == nil {
		renderer = markdown.NewRenderer()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{store: store, assets: assets, renderer: renderer, logger: logger}
}

// Load walks the strategy chain for folder and loc. It returns an error
// matching ErrArticleNotFound when no strategy applies, and one matching
// ErrInvalidDocument when a document exists but cannot be parsed.
func (l *Loader) Load(ctx context.Context, folder string, loc locale.Locale) (*Loaded, error) {
	if !loc.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, loc)
	}
	for _, st := range strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := st.resolve(l.store, folder, loc)
		if errors.Is(err, errNotApplicable) {
			continue
		}
		if err != nil {
			return nil, err
		}
		l.logger.DebugContext(ctx, "Resolved article",
			logfields.Folder(folder),
			logfields.Locale(loc.String()),
			logfields.Layout(string(res.layout)),
			slog.String("strategy", st.name))
		return l.assemble(folder, loc, res), nil
	}
	return nil, fmt.Errorf("%w: folder %s has no %s document", ErrArticleNotFound, folder, loc)
}

func (l *Loader) assemble(folder string, loc locale.Locale, res *resolution) *Loaded {
	meta := res.meta.Meta
	if res.tagged {
		meta.Lang = loc.String()
	}
	return &Loaded{
		Summary:     newSummary(meta, folder, l.HasTranslation(folder, loc)),
		Article:     meta,
		Locale:      loc,
		Layout:      res.layout,
		Source:      res.meta.Path,
		BodySource:  res.body.Path,
		Fingerprint: res.body.Fingerprint(),
		Body: &Body{
			source:   res.body.Body,
			dir:      path.Dir(res.body.Path),
			assets:   l.assets,
			renderer: l.renderer,
		},
	}
}

// HasTranslation reports, at call time, whether folder carries a document for
// the other locale: a partitioned file or a legacy translated companion.
func (l *Loader) HasTranslation(folder string, loc locale.Locale) bool {
	return l.store.Exists(l.store.PartitionedPath(folder, loc.Other())) ||
		l.store.Exists(l.store.TranslatedPath(folder))
}
