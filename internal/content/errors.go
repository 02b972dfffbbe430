package content

import "errors"

var (
	// ErrArticleNotFound indicates no folder is mapped to the slug, or no
	// document resolves for it under any fallback.
	ErrArticleNotFound = errors.New("article not found")

	// ErrUnknownLocale indicates a locale outside the supported set.
	ErrUnknownLocale = errors.New("unknown locale")

	// ErrMissingFrontMatter indicates a document without a front matter block.
	ErrMissingFrontMatter = errors.New("document has no front matter")

	// ErrInvalidDocument indicates a document exists but cannot be parsed.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrUnsafeAssetPath indicates an asset reference that escapes the store root.
	ErrUnsafeAssetPath = errors.New("asset path escapes content root")

	// ErrAssetNotFound indicates an asset that does not exist or is not an image.
	ErrAssetNotFound = errors.New("asset not found")
)
