package site

import (
	"net/http"
	"strings"

	"git.home.luguber.info/inful/folio/internal/content"
	ferrors "git.home.luguber.info/inful/folio/internal/foundation/errors"
	"git.home.luguber.info/inful/folio/internal/locale"
	"git.home.luguber.info/inful/folio/internal/markdown"
	"git.home.luguber.info/inful/folio/internal/observability"
)

// ListResponse is the payload of GET /api/articles.
type ListResponse struct {
	Locale   string            `json:"locale"`
	Count    int               `json:"count"`
	Articles []content.Summary `json:"articles"`
}

// ArticleResponse is the payload of GET /api/articles/{locale}/{slug}.
type ArticleResponse struct {
	content.Summary
	Locale      string             `json:"locale"`
	Image       string             `json:"image,omitempty"`
	Fingerprint string             `json:"fingerprint"`
	HTML        string             `json:"html"`
	Headings    []markdown.Heading `json:"headings"`
}

func (s *Server) handleAPIList(w http.ResponseWriter, r *http.Request) {
	loc := locale.Default
	if raw := r.URL.Query().Get("locale"); raw != "" {
		loc = locale.Locale(raw)
	}
	items, err := s.content.List(r.Context(), loc)
	if err != nil {
		s.adapter.WriteErrorResponse(w, r, err)
		return
	}
	if items == nil {
		items = []content.Summary{}
	}
	s.writeAPI(w, r, ListResponse{Locale: loc.String(), Count: len(items), Articles: items})
}

func (s *Server) handleAPIArticle(w http.ResponseWriter, r *http.Request) {
	loc := locale.Locale(r.PathValue("locale"))
	slug := r.PathValue("slug")
	ctx := observability.WithArticle(r.Context(), slug, loc.String())

	a, err := s.content.Get(ctx, slug, loc)
	if err != nil {
		s.adapter.WriteErrorResponse(w, r, err)
		return
	}

	etag := quoteETag(a.Fingerprint)
	w.Header().Set("ETag", etag)
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	rendered, err := a.Body.Render()
	if err != nil {
		s.adapter.WriteErrorResponse(w, r, ferrors.WrapError(err, ferrors.CategoryDocs, "article cannot be rendered").
			WithContext("slug", slug).
			WithContext("locale", loc.String()).
			Build())
		return
	}
	resp := ArticleResponse{
		Summary:     a.Summary,
		Locale:      a.Locale.String(),
		Fingerprint: a.Fingerprint,
		HTML:        string(rendered.HTML),
		Headings:    rendered.Headings,
	}
	if resp.Headings == nil {
		resp.Headings = []markdown.Heading{}
	}
	if img, ok := s.content.PreviewImage(ctx, slug, loc); ok {
		resp.Image = s.ogImage(img, true)
	}
	s.writeAPI(w, r, resp)
}

func (s *Server) writeAPI(w http.ResponseWriter, r *http.Request, v any) {
	if err := writeJSON(w, r, http.StatusOK, v); err != nil {
		s.adapter.WriteErrorResponse(w, r, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode response").Build())
	}
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
