package content

import (
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// DefaultAssetPrefix is the URL path assets are served under.
const DefaultAssetPrefix = "/assets"

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
}

// IsImage reports whether p has a supported image extension.
func IsImage(p string) bool {
	_, ok := imageTypes[strings.ToLower(path.Ext(p))]
	return ok
}

// ContentType returns the MIME type of an image path, or
// application/octet-stream for anything else.
func ContentType(p string) string {
	if t, ok := imageTypes[strings.ToLower(path.Ext(p))]; ok {
		return t
	}
	return "application/octet-stream"
}

type assetHash struct {
	size    int64
	modTime time.Time
	sum     uint64
}

// FingerprintAssets serves store images under content-hashed URLs of the form
// <prefix>/<dir>/<name>.<hash>.<ext>.
type FingerprintAssets struct {
	fsys   fs.FS
	prefix string

	mu     sync.Mutex
	hashes map[string]assetHash
}

// NewFingerprintAssets returns a resolver for images in fsys.
func NewFingerprintAssets(fsys fs.FS, prefix string) *FingerprintAssets {
	prefix = "/" + strings.Trim(prefix, "/")
	if prefix == "/" {
		prefix = DefaultAssetPrefix
	}
	return &FingerprintAssets{fsys: fsys, prefix: prefix, hashes: map[string]assetHash{}}
}

// Prefix returns the URL path prefix, without a trailing slash.
func (a *FingerprintAssets) Prefix() string { return a.prefix }

// URL returns the served URL for a store-relative image path.
func (a *FingerprintAssets) URL(assetPath string) (string, error) {
	if !fs.ValidPath(assetPath) || assetPath == "." {
		return "", fmt.Errorf("%w: %s", ErrUnsafeAssetPath, assetPath)
	}
	if !IsImage(assetPath) {
		return "", fmt.Errorf("%w: %s", ErrAssetNotFound, assetPath)
	}
	sum, err := a.hash(assetPath)
	if err != nil {
		return "", err
	}
	ext := path.Ext(assetPath)
	stem := strings.TrimSuffix(assetPath, ext)
	return fmt.Sprintf("%s/%s.%016x%s", a.prefix, stem, sum, ext), nil
}

// Open reverses URL. It returns the asset bytes and store path, or
// ErrAssetNotFound when the URL is malformed or its hash is stale.
func (a *FingerprintAssets) Open(urlPath string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(urlPath, a.prefix+"/")
	if !ok {
		return nil, "", ErrAssetNotFound
	}
	ext := path.Ext(rest)
	withHash := strings.TrimSuffix(rest, ext)
	hashExt := path.Ext(withHash)
	if len(hashExt) != 17 {
		return nil, "", ErrAssetNotFound
	}
	want, err := strconv.ParseUint(hashExt[1:], 16, 64)
	if err != nil {
		return nil, "", ErrAssetNotFound
	}
	assetPath := strings.TrimSuffix(withHash, hashExt) + ext
	if !fs.ValidPath(assetPath) || !IsImage(assetPath) {
		return nil, "", ErrAssetNotFound
	}

	data, err := fs.ReadFile(a.fsys, assetPath)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrAssetNotFound, assetPath)
	}
	if xxhash.Sum64(data) != want {
		return nil, "", fmt.Errorf("%w: %s", ErrAssetNotFound, assetPath)
	}
	return data, assetPath, nil
}

func (a *FingerprintAssets) hash(assetPath string) (uint64, error) {
	info, err := fs.Stat(a.fsys, assetPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrAssetNotFound, assetPath)
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%w: %s", ErrAssetNotFound, assetPath)
	}

	a.mu.Lock()
	cached, ok := a.hashes[assetPath]
	a.mu.Unlock()
	if ok && cached.size == info.Size() && cached.modTime.Equal(info.ModTime()) {
		return cached.sum, nil
	}

	data, err := fs.ReadFile(a.fsys, assetPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrAssetNotFound, assetPath)
	}
	sum := xxhash.Sum64(data)

	a.mu.Lock()
	a.hashes[assetPath] = assetHash{size: info.Size(), modTime: info.ModTime(), sum: sum}
	a.mu.Unlock()
	return sum, nil
}
