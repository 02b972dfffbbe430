package content

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"strings"

	"git.home.luguber.info/inful/folio/internal/locale"
)

const (
	// DefaultExtension is the document extension used when none is configured.
	DefaultExtension = ".md"

	pageName       = "page"
	translatedName = "translated"
)

// Store is read-only access to the article tree rooted at an fs.FS.
// All paths are slash-separated and relative to the root.
type Store struct {
	fsys fs.FS
	ext  string
}

// NewStore wraps fsys. An empty ext selects DefaultExtension.
func NewStore(fsys fs.FS, ext string) *Store {
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &Store{fsys: fsys, ext: ext}
}

// OpenDir returns a Store over a directory on disk.
func OpenDir(root, ext string) *Store {
	return NewStore(os.DirFS(root), ext)
}

// FS returns the underlying file system.
func (s *Store) FS() fs.FS { return s.fsys }

// Extension returns the document extension including the leading dot.
func (s *Store) Extension() string { return s.ext }

// PartitionedPath returns folder/<locale>/page.<ext>.
func (s *Store) PartitionedPath(folder string, loc locale.Locale) string {
	return path.Join(folder, loc.String(), pageName+s.ext)
}

// LegacyPath returns folder/page.<ext>.
func (s *Store) LegacyPath(folder string) string {
	return path.Join(folder, pageName+s.ext)
}

// TranslatedPath returns folder/translated.<ext>.
func (s *Store) TranslatedPath(folder string) string {
	return path.Join(folder, translatedName+s.ext)
}

// Exists reports whether p names a regular file in the store.
func (s *Store) Exists(p string) bool {
	info, err := fs.Stat(s.fsys, p)
	return err == nil && info.Mode().IsRegular()
}

// ReadFile returns the raw bytes of p.
func (s *Store) ReadFile(p string) ([]byte, error) {
	return fs.ReadFile(s.fsys, p)
}

// LayoutOf reports the layout variant of folder at call time.
func (s *Store) LayoutOf(folder string) Layout {
	for _, loc := range locale.All {
		if s.Exists(s.PartitionedPath(folder, loc)) {
			return LayoutPartitioned
		}
	}
	return LayoutLegacy
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
