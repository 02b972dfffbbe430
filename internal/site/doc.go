// Package site serves the article store over HTTP: localized HTML pages, a
// JSON API, the SEO artifacts and fingerprinted assets.
package site
