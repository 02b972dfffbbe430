package content

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"git.home.luguber.info/inful/folio/internal/locale"
)

// ScanResult holds the raw document paths found under the store root.
type ScanResult struct {
	// Legacy holds <folder>/page.<ext> paths.
	Legacy []string
	// Partitioned holds <folder>/<locale>/page.<ext> paths.
	Partitioned []string
}

// Scan enumerates legacy and partitioned documents. It never fails on an
// empty or missing store; only context cancellation is reported.
func (s *Store) Scan(ctx context.Context) (ScanResult, error) {
	var res ScanResult

	legacy, err := s.glob(ctx, path.Join("*", pageName+s.ext))
	if err != nil {
		return ScanResult{}, err
	}
	res.Legacy = legacy

	for _, loc := range locale.All {
		matches, err := s.glob(ctx, path.Join("*", loc.String(), pageName+s.ext))
		if err != nil {
			return ScanResult{}, err
		}
		res.Partitioned = append(res.Partitioned, matches...)
	}
	sort.Strings(res.Partitioned)
	return res, nil
}

func (s *Store) glob(ctx context.Context, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matches, err := fs.Glob(s.fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", pattern, err)
	}
	out := matches[:0]
	for _, m := range matches {
		if isHidden(folderOf(m)) || !s.Exists(m) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// LegacyFolders returns folders with a root document, in scan order.
func (r ScanResult) LegacyFolders() []string {
	folders := make([]string, 0, len(r.Legacy))
	for _, p := range r.Legacy {
		folders = append(folders, folderOf(p))
	}
	return folders
}

// PartitionedFolders returns folders with a document for loc, in scan order.
func (r ScanResult) PartitionedFolders(loc locale.Locale) []string {
	var folders []string
	for _, p := range r.Partitioned {
		if localeOf(p) == loc {
			folders = append(folders, folderOf(p))
		}
	}
	return folders
}

// folderOf returns the first path element, which names the article folder.
func folderOf(p string) string {
	folder, _, _ := strings.Cut(p, "/")
	return folder
}

func localeOf(p string) locale.Locale {
	parts := strings.Split(p, "/")
	if len(parts) != 3 {
		return ""
	}
	return locale.Locale(parts[1])
}

func isHidden(folder string) bool {
	return strings.HasPrefix(folder, ".") || strings.HasPrefix(folder, "_")
}
