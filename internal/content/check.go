package content

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"git.home.luguber.info/inful/folio/internal/frontmatter"
	"git.home.luguber.info/inful/folio/internal/locale"
	"git.home.luguber.info/inful/folio/internal/markdown"
)

// IssueKind classifies a store validation finding.
type IssueKind string

const (
	IssueParse              IssueKind = "parse_error"
	IssueSlugCollision      IssueKind = "slug_collision"
	IssueDanglingTranslated IssueKind = "dangling_translation"
	IssueMissingImage       IssueKind = "missing_image"
	IssueUnsafeImage        IssueKind = "unsafe_image"
)

// Issue is one finding of Check.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Folder  string    `json:"folder"`
	Path    string    `json:"path,omitempty"`
	Message string    `json:"message"`
}

func (i Issue) String() string {
	if i.Path != "" {
		return fmt.Sprintf("%s: %s: %s", i.Kind, i.Path, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s", i.Kind, i.Folder, i.Message)
}

// Check validates the whole store: unparseable documents, folders competing
// for a slug, translated companions without a legacy page, and image
// references that are missing or escape the store.
func (s *Service) Check(ctx context.Context) ([]Issue, error) {
	scan, err := s.store.Scan(ctx)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	claims := make(map[string][]string)
	claimed := make(map[string]struct{})

	inspect := func(p string, claim bool) {
		doc, err := s.store.ReadDocument(p)
		if err != nil {
			issues = append(issues, Issue{Kind: IssueParse, Folder: folderOf(p), Path: p, Message: err.Error()})
			return
		}
		issues = append(issues, s.checkImages(doc.Path, doc.Body)...)
		folder := folderOf(p)
		if _, done := claimed[folder]; claim && !done {
			claimed[folder] = struct{}{}
			slug := newSummary(doc.Meta, folder, false).Slug
			claims[slug] = append(claims[slug], folder)
		}
	}

	primary := make(map[string]bool)
	for _, folder := range scan.PartitionedFolders(locale.Default) {
		primary[folder] = true
	}
	for _, folder := range scan.LegacyFolders() {
		primary[folder] = true
	}
	for _, p := range scan.Partitioned {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		folder := folderOf(p)
		inspect(p, localeOf(p).IsDefault() || !primary[folder])
	}
	for _, p := range scan.Legacy {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		inspect(p, true)
	}

	translated, err := fs.Glob(s.store.FS(), path.Join("*", translatedName+s.store.Extension()))
	if err != nil {
		return nil, err
	}
	for _, p := range translated {
		folder := folderOf(p)
		if isHidden(folder) {
			continue
		}
		if !s.store.Exists(s.store.LegacyPath(folder)) {
			issues = append(issues, Issue{Kind: IssueDanglingTranslated, Folder: folder, Path: p,
				Message: "translated companion has no legacy page to borrow metadata from"})
			continue
		}
		if raw, err := s.store.ReadFile(p); err == nil {
			if _, body, _, _, err := frontmatter.Split(raw); err == nil {
				issues = append(issues, s.checkImages(p, body)...)
			}
		}
	}

	for slug, folders := range claims {
		if len(folders) < 2 {
			continue
		}
		sort.Strings(folders)
		issues = append(issues, Issue{Kind: IssueSlugCollision, Folder: folders[0],
			Message: fmt.Sprintf("slug %q is claimed by folders %v", slug, folders)})
	}

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Folder != issues[j].Folder {
			return issues[i].Folder < issues[j].Folder
		}
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		return issues[i].Kind < issues[j].Kind
	})
	return issues, nil
}

func (s *Service) checkImages(docPath string, body []byte) []Issue {
	var refs []string
	for _, imp := range markdown.ExtractImageImports(body) {
		refs = append(refs, imp.From)
	}
	links, err := markdown.ExtractLinks(body, markdown.Options{})
	if err == nil {
		for _, l := range links {
			if l.Kind == markdown.LinkKindImage && !isExternalRef(l.Destination) {
				refs = append(refs, l.Destination)
			}
		}
	}

	var issues []Issue
	folder := folderOf(docPath)
	for _, ref := range refs {
		p, err := resolveAssetPath(path.Dir(docPath), ref)
		if err != nil {
			issues = append(issues, Issue{Kind: IssueUnsafeImage, Folder: folder, Path: docPath,
				Message: fmt.Sprintf("image %q resolves outside the content root", ref)})
			continue
		}
		if !s.store.Exists(p) {
			issues = append(issues, Issue{Kind: IssueMissingImage, Folder: folder, Path: docPath,
				Message: fmt.Sprintf("image %q not found", ref)})
		}
	}
	return issues
}
