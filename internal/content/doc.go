// Package content resolves bilingual articles from a read-only content store.
//
// A store holds one folder per article. A folder uses one of two layouts:
//
//	<folder>/page.md            legacy primary document
//	<folder>/translated.md      legacy French body (optional)
//	<folder>/en/page.md         partitioned English
//	<folder>/fr/page.md         partitioned French
//
// Service ties the pieces together: a SlugIndex maps slugs to folders once per
// process, a Loader walks an ordered chain of resolution strategies for a
// folder and locale, and a PreviewResolver picks the image used for social
// preview metadata. Article content is read fresh on every call.
package content
