package content

import (
	"errors"
	"log/slog"
	"path"

	"git.home.luguber.info/inful/folio/internal/locale"
	"git.home.luguber.info/inful/folio/internal/logfields"
	"git.home.luguber.info/inful/folio/internal/markdown"
	"git.home.luguber.info/inful/folio/internal/metrics"
)

var (
	errNoPreviewSource = errors.New("no document for preview")
	errNoImageImports  = errors.New("document declares no image imports")
)

// PreviewResolver derives the social preview image of an article from the
// image imports in its raw source. Resolution is best effort: every failure
// collapses to "no image".
type PreviewResolver struct {
	store    *Store
	assets   AssetResolver
	logger   *slog.Logger
	recorder metrics.Recorder
}

// NewPreviewResolver returns a resolver that serves images through assets.
func NewPreviewResolver(store *Store, assets AssetResolver, logger *slog.Logger, recorder metrics.Recorder) *PreviewResolver {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &PreviewResolver{store: store, assets: assets, logger: logger, recorder: recorder}
}

// Resolve returns the served URL of the preview image for folder in loc.
func (p *PreviewResolver) Resolve(folder string, loc locale.Locale) (string, bool) {
	u, err := p.resolve(folder, loc)
	if err != nil {
		p.logger.Debug("No preview image",
			logfields.Folder(folder), logfields.Locale(loc.String()), logfields.Error(err))
		p.recorder.IncPreviewResult(metrics.PreviewNone)
		return "", false
	}
	p.recorder.IncPreviewResult(metrics.PreviewFound)
	return u, true
}

func (p *PreviewResolver) resolve(folder string, loc locale.Locale) (string, error) {
	if p.assets == nil {
		return "", ErrAssetNotFound
	}
	src, err := p.source(folder, loc)
	if err != nil {
		return "", err
	}
	raw, err := p.store.ReadFile(src)
	if err != nil {
		return "", err
	}

	imports := markdown.ExtractImageImports(raw)
	if len(imports) == 0 {
		return "", errNoImageImports
	}
	// A name declared twice binds to its last declaration.
	declared := make(map[string]string, len(imports))
	names := make(map[string]struct{}, len(imports))
	for _, imp := range imports {
		declared[imp.Name] = imp.From
		names[imp.Name] = struct{}{}
	}

	from := imports[0].From
	if name, ok := markdown.FirstUsedImage(raw, names); ok {
		from = declared[name]
	}

	assetPath, err := resolveAssetPath(path.Dir(src), from)
	if err != nil {
		return "", err
	}
	return p.assets.URL(assetPath)
}

// source picks the partitioned document for loc, else the legacy root
// document. The translated companion never supplies a preview.
func (p *PreviewResolver) source(folder string, loc locale.Locale) (string, error) {
	for _, candidate := range []string{p.store.PartitionedPath(folder, loc), p.store.LegacyPath(folder)} {
		if p.store.Exists(candidate) {
			return candidate, nil
		}
	}
	return "", errNoPreviewSource
}
