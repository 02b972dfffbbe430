package content

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"git.home.luguber.info/inful/folio/internal/locale"
	"git.home.luguber.info/inful/folio/internal/logfields"
	"git.home.luguber.info/inful/folio/internal/metrics"
)

// SkipReasonParse labels folders skipped because their document cannot be parsed.
const SkipReasonParse = "parse_error"

// SlugIndex maps slugs to folders. It is built lazily on first use and then
// read many times; concurrent first callers share a single build.
type SlugIndex struct {
	store    *Store
	logger   *slog.Logger
	recorder metrics.Recorder

	group singleflight.Group
	mu    sync.RWMutex
	slugs map[string]string
}

// NewSlugIndex returns an unbuilt index over store.
func NewSlugIndex(store *Store, logger *slog.Logger, recorder metrics.Recorder) *SlugIndex {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &SlugIndex{store: store, logger: logger, recorder: recorder}
}

// Lookup returns the folder mapped to slug.
func (x *SlugIndex) Lookup(ctx context.Context, slug string) (string, bool, error) {
	slugs, err := x.ensure(ctx)
	if err != nil {
		return "", false, err
	}
	folder, ok := slugs[slug]
	return folder, ok, nil
}

// Map returns a copy of the slug to folder mapping.
func (x *SlugIndex) Map(ctx context.Context) (map[string]string, error) {
	slugs, err := x.ensure(ctx)
	if err != nil {
		return nil, err
	}
	return maps.Clone(slugs), nil
}

// Built reports whether the mapping has been computed.
func (x *SlugIndex) Built() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.slugs != nil
}

func (x *SlugIndex) ensure(ctx context.Context) (map[string]string, error) {
	x.mu.RLock()
	slugs := x.slugs
	x.mu.RUnlock()
	if slugs != nil {
		return slugs, nil
	}

	v, err, _ := x.group.Do("build", func() (any, error) {
		x.mu.RLock()
		existing := x.slugs
		x.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}
		built, err := x.build(ctx)
		if err != nil {
			return nil, err
		}
		x.mu.Lock()
		x.slugs = built
		x.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]string), nil
}

// build maps partitioned English folders first, then legacy folders, then
// folders that only carry a non-default locale. Earlier claims win.
func (x *SlugIndex) build(ctx context.Context) (map[string]string, error) {
	start := time.Now()
	scan, err := x.store.Scan(ctx)
	if err != nil {
		return nil, err
	}

	slugs := make(map[string]string)
	primary := make(map[string]struct{})
	claim := func(p, folder string) {
		doc, err := x.store.ReadDocument(p)
		if err != nil {
			x.logger.Warn("Skipping folder with unreadable document",
				logfields.Folder(folder), logfields.Path(p), logfields.Error(err))
			x.recorder.IncSkippedFolder(SkipReasonParse)
			return
		}
		slug := newSummary(doc.Meta, folder, false).Slug
		if owner, taken := slugs[slug]; taken {
			if owner != folder {
				x.logger.Warn("Slug already claimed by another folder",
					logfields.Slug(slug), logfields.Folder(folder), slog.String("owner", owner))
			}
			return
		}
		slugs[slug] = folder
	}

	for _, folder := range scan.PartitionedFolders(locale.Default) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		primary[folder] = struct{}{}
		claim(x.store.PartitionedPath(folder, locale.Default), folder)
	}
	for _, folder := range scan.LegacyFolders() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		primary[folder] = struct{}{}
		claim(x.store.LegacyPath(folder), folder)
	}
	for _, loc := range locale.All {
		if loc.IsDefault() {
			continue
		}
		for _, folder := range scan.PartitionedFolders(loc) {
			if _, ok := primary[folder]; ok {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			primary[folder] = struct{}{}
			claim(x.store.PartitionedPath(folder, loc), folder)
		}
	}

	elapsed := time.Since(start)
	x.recorder.ObserveIndexBuild(elapsed, len(slugs))
	x.logger.Debug("Built slug index",
		logfields.Count(len(slugs)),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return slugs, nil
}
