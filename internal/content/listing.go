package content

import (
	"context"
	"errors"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	ferrors "git.home.luguber.info/inful/folio/internal/foundation/errors"
	"git.home.luguber.info/inful/folio/internal/locale"
	"git.home.luguber.info/inful/folio/internal/logfields"
)

// listConcurrency bounds parallel document reads during a listing.
const listConcurrency = 8

// ListAll returns the English listing: partitioned English folders first,
// then legacy folders.
func (s *Service) ListAll(ctx context.Context) ([]Summary, error) {
	return s.List(ctx, locale.Default)
}

// List returns every article readable in loc, one entry per slug, sorted by
// publication date, most recent first. Folders that cannot be parsed or have
// no document for loc are skipped.
func (s *Service) List(ctx context.Context, loc locale.Locale) ([]Summary, error) {
	if !loc.Valid() {
		return nil, ferrors.WrapError(ErrUnknownLocale, ferrors.CategoryNotFound, "unknown locale").
			WithContext("locale", loc.String()).
			Build()
	}
	start := time.Now()

	slugs, err := s.Index().Map(ctx)
	if err != nil {
		return nil, err
	}
	scan, err := s.store.Scan(ctx)
	if err != nil {
		return nil, err
	}
	folders := listingFolders(scan, loc)

	loaded := make([]*Loaded, len(folders))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listConcurrency)
	for i, folder := range folders {
		g.Go(func() error {
			l, err := s.loader.Load(gctx, folder, loc)
			switch {
			case err == nil:
				loaded[i] = l
			case errors.Is(err, ErrArticleNotFound):
				s.logger.DebugContext(gctx, "Folder has no document for locale",
					logfields.Folder(folder), logfields.Locale(loc.String()))
			case errors.Is(err, ErrInvalidDocument):
				s.logger.WarnContext(gctx, "Skipping unreadable article",
					logfields.Folder(folder), logfields.Locale(loc.String()), logfields.Error(err))
				s.recorder.IncSkippedFolder(SkipReasonParse)
			default:
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	assignIndexedSlugs(loaded, slugs)
	out := dedupe(loaded, slugs)
	sortByDate(out)
	s.recorder.ObserveListDuration(loc.String(), time.Since(start))
	return out, nil
}

// listingFolders returns folders with a loc-partitioned document followed by
// legacy folders, each folder once.
func listingFolders(scan ScanResult, loc locale.Locale) []string {
	seen := make(map[string]struct{})
	var folders []string
	add := func(batch []string) {
		for _, f := range batch {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			folders = append(folders, f)
		}
	}
	add(scan.PartitionedFolders(loc))
	add(scan.LegacyFolders())
	return folders
}

// assignIndexedSlugs replaces each entry's slug with the one the index
// assigned to its folder. Folders the index does not own keep their own slug
// and are dropped by dedupe.
func assignIndexedSlugs(loaded []*Loaded, slugs map[string]string) {
	byFolder := make(map[string]string, len(slugs))
	for slug, folder := range slugs {
		byFolder[folder] = slug
	}
	for _, l := range loaded {
		if l == nil {
			continue
		}
		if slug, ok := byFolder[l.Folder]; ok {
			l.Slug = slug
		}
	}
}

// dedupe keeps the first entry per slug, and only when the slug index agrees
// on its folder, so every listed slug loads the same article.
func dedupe(loaded []*Loaded, slugs map[string]string) []Summary {
	seen := make(map[string]struct{}, len(loaded))
	out := make([]Summary, 0, len(loaded))
	for _, l := range loaded {
		if l == nil {
			continue
		}
		if _, dup := seen[l.Slug]; dup {
			continue
		}
		if slugs[l.Slug] != l.Folder {
			continue
		}
		seen[l.Slug] = struct{}{}
		out = append(out, l.Summary)
	}
	return out
}

func sortByDate(items []Summary) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Published().After(items[j].Published())
	})
}
