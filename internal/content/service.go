package content

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	ferrors "git.home.luguber.info/inful/folio/internal/foundation/errors"
	"git.home.luguber.info/inful/folio/internal/locale"
	"git.home.luguber.info/inful/folio/internal/logfields"
	"git.home.luguber.info/inful/folio/internal/markdown"
	"git.home.luguber.info/inful/folio/internal/metrics"
)

// Service is the entry point for article resolution. It is safe for
// concurrent use.
type Service struct {
	store       *Store
	assets      *FingerprintAssets
	assetPrefix string
	loader      *Loader
	preview     *PreviewResolver
	logger      *slog.Logger
	recorder    metrics.Recorder

	mu    sync.RWMutex
	index *SlugIndex
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used by the service and its components.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithAssetPrefix sets the URL prefix fingerprinted assets are served under.
func WithAssetPrefix(prefix string) Option {
	return func(s *Service) { s.assetPrefix = prefix }
}

// NewService wires the slug index, loader and preview resolver over store.
func NewService(store *Store, opts ...Option) *Service {
	s := &Service{
		store:       store,
		assetPrefix: DefaultAssetPrefix,
		logger:      slog.Default(),
		recorder:    metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.assets = NewFingerprintAssets(store.FS(), s.assetPrefix)
	s.loader = NewLoader(store, s.assets, markdown.NewRenderer(), s.logger)
	s.preview = NewPreviewResolver(store, s.assets, s.logger, s.recorder)
	s.index = NewSlugIndex(store, s.logger, s.recorder)
	return s
}

// Store returns the underlying content store.
func (s *Service) Store() *Store { return s.store }

// Assets returns the fingerprinted asset resolver.
func (s *Service) Assets() *FingerprintAssets { return s.assets }

// Index returns the current slug index.
func (s *Service) Index() *SlugIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Refresh replaces the slug index with a fresh, unbuilt one. It is used when
// the store is known to have changed on disk.
func (s *Service) Refresh() {
	next := NewSlugIndex(s.store, s.logger, s.recorder)
	s.mu.Lock()
	s.index = next
	s.mu.Unlock()
	s.logger.Info("Content index invalidated")
}

// Get loads the article mapped to slug in loc. Unknown slugs, unknown
// locales and slugs without a document for loc are classified not-found
// errors; unparseable documents are classified docs errors.
func (s *Service) Get(ctx context.Context, slug string, loc locale.Locale) (*Loaded, error) {
	if !loc.Valid() {
		s.recorder.IncArticleLoad(metrics.LoadNotFound)
		return nil, notFound(slug, loc, ErrUnknownLocale)
	}
	folder, ok, err := s.Index().Lookup(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.recorder.IncArticleLoad(metrics.LoadNotFound)
		return nil, notFound(slug, loc, ErrArticleNotFound)
	}

	loaded, err := s.loader.Load(ctx, folder, loc)
	switch {
	case err == nil:
		s.recorder.IncArticleLoad(metrics.LoadOK)
		// The index owns the slug; a document for another locale may not
		// repeat the override.
		loaded.Slug = slug
		return loaded, nil
	case errors.Is(err, ErrArticleNotFound):
		s.recorder.IncArticleLoad(metrics.LoadNotFound)
		return nil, notFound(slug, loc, err)
	case errors.Is(err, ErrInvalidDocument):
		s.recorder.IncArticleLoad(metrics.LoadParseError)
		s.logger.WarnContext(ctx, "Article cannot be parsed",
			logfields.Slug(slug), logfields.Folder(folder), logfields.Error(err))
		return nil, ferrors.WrapError(err, ferrors.CategoryDocs, "article cannot be parsed").
			WithContext("slug", slug).
			WithContext("locale", loc.String()).
			Build()
	default:
		return nil, err
	}
}

// HasTranslation reports whether the article mapped to slug exists in the
// other locale. Unknown slugs report false.
func (s *Service) HasTranslation(ctx context.Context, slug string, loc locale.Locale) bool {
	folder, ok, err := s.Index().Lookup(ctx, slug)
	if err != nil || !ok {
		return false
	}
	return s.loader.HasTranslation(folder, loc)
}

// PreviewImage returns the served URL of the article's preview image. It
// never fails; ok is false when no image can be resolved.
func (s *Service) PreviewImage(ctx context.Context, slug string, loc locale.Locale) (string, bool) {
	if !loc.Valid() {
		s.recorder.IncPreviewResult(metrics.PreviewNone)
		return "", false
	}
	folder, ok, err := s.Index().Lookup(ctx, slug)
	if err != nil || !ok {
		s.recorder.IncPreviewResult(metrics.PreviewNone)
		return "", false
	}
	return s.preview.Resolve(folder, loc)
}

func notFound(slug string, loc locale.Locale, cause error) error {
	return ferrors.WrapError(cause, ferrors.CategoryNotFound, "article not found").
		WithContext("slug", slug).
		WithContext("locale", loc.String()).
		Build()
}
