package site

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"git.home.luguber.info/inful/folio/internal/content"
	ferrors "git.home.luguber.info/inful/folio/internal/foundation/errors"
	"git.home.luguber.info/inful/folio/internal/locale"
	"git.home.luguber.info/inful/folio/internal/logfields"
	"git.home.luguber.info/inful/folio/internal/markdown"
	"git.home.luguber.info/inful/folio/internal/observability"
	"git.home.luguber.info/inful/folio/internal/seo"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageStrings = map[locale.Locale]map[string]string{
	locale.English: {
		"articles":    "Articles",
		"contents":    "Contents",
		"empty":       "No articles yet.",
		"translation": "Lire en français",
		"switch":      "Français",
		"notFound":    "Page not found",
		"error":       "Something went wrong",
		"back":        "All articles",
	},
	locale.French: {
		"articles":    "Articles",
		"contents":    "Sommaire",
		"empty":       "Aucun article pour le moment.",
		"translation": "Read in English",
		"switch":      "English",
		"notFound":    "Page introuvable",
		"error":       "Une erreur est survenue",
		"back":        "Tous les articles",
	},
}

func parseTemplates() (*template.Template, error) {
	return template.New("site").Funcs(template.FuncMap{
		"t": func(loc string, key string) string {
			l, ok := locale.FromSegment(loc)
			if !ok {
				l = locale.Default
			}
			return pageStrings[l][key]
		},
	}).ParseFS(templateFS, "templates/*.html")
}

type indexEntry struct {
	content.Summary
	URL string
}

type indexPage struct {
	Meta      pageMeta
	Articles  []indexEntry
	SwitchURL string
}

type articlePage struct {
	Meta           pageMeta
	Article        *content.Loaded
	HTML           template.HTML
	Headings       []markdown.Heading
	TranslationURL string
	IndexURL       string
}

type errorPage struct {
	Meta    pageMeta
	Status  int
	Message string
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	loc := locale.Negotiate(r.Header.Get("Accept-Language"))
	w.Header().Add("Vary", "Accept-Language")
	http.Redirect(w, r, "/"+loc.String()+"/articles", http.StatusFound)
}

func (s *Server) handleLocaleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, r.URL.Path+"/articles", http.StatusFound)
}

// handleLegacyArticle keeps pre-localization links working.
func (s *Server) handleLegacyArticle(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, seo.ArticlePath(locale.Default, r.PathValue("slug")), http.StatusPermanentRedirect)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	loc := localeOfPattern(r)
	items, err := s.content.List(r.Context(), loc)
	if err != nil {
		s.writePageError(w, r, loc, err)
		return
	}
	page := indexPage{
		Meta:      s.indexMeta(loc),
		Articles:  make([]indexEntry, 0, len(items)),
		SwitchURL: "/" + loc.Other().String() + "/articles",
	}
	for _, item := range items {
		page.Articles = append(page.Articles, indexEntry{Summary: item, URL: seo.ArticlePath(loc, item.Slug)})
	}
	s.render(w, r, http.StatusOK, "index", page)
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	loc := localeOfPattern(r)
	slug := r.PathValue("slug")
	ctx := observability.WithArticle(r.Context(), slug, loc.String())

	a, err := s.content.Get(ctx, slug, loc)
	if err != nil {
		s.writePageError(w, r, loc, err)
		return
	}
	rendered, err := a.Body.Render()
	if err != nil {
		s.writePageError(w, r, loc, ferrors.WrapError(err, ferrors.CategoryDocs, "article cannot be rendered").
			WithContext("slug", slug).
			WithContext("locale", loc.String()).
			Build())
		return
	}

	translated := s.content.HasTranslation(ctx, slug, loc)
	preview, ok := s.content.PreviewImage(ctx, slug, loc)
	page := articlePage{
		Meta:     s.articleMeta(a, s.ogImage(preview, ok), translated),
		Article:  a,
		HTML:     template.HTML(rendered.HTML), //nolint:gosec // rendered from the trusted content store
		Headings: rendered.Headings,
		IndexURL: "/" + loc.String() + "/articles",
	}
	if translated {
		page.TranslationURL = seo.ArticlePath(loc.Other(), slug)
	}
	w.Header().Set("ETag", quoteETag(a.Fingerprint))
	s.render(w, r, http.StatusOK, "article", page)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	err := ferrors.NotFoundError("page not found").
		WithContext("path", r.URL.Path).
		Build()
	s.writePageError(w, r, locale.Default, err)
}

// writePageError renders the HTML error page with the classified status.
func (s *Server) writePageError(w http.ResponseWriter, r *http.Request, loc locale.Locale, err error) {
	status := s.adapter.StatusCodeFor(err)
	key := "error"
	if status == http.StatusNotFound {
		key = "notFound"
		s.logger.DebugContext(r.Context(), "Page not found", logfields.Path(r.URL.Path), logfields.Error(err))
	} else {
		s.logger.ErrorContext(r.Context(), "Page failed", logfields.Path(r.URL.Path), logfields.Status(status), logfields.Error(err))
	}
	s.render(w, r, status, "error", errorPage{
		Meta:    pageMeta{Lang: loc.String(), Title: pageStrings[loc][key]},
		Status:  status,
		Message: pageStrings[loc][key],
	})
}

// render executes into a buffer so template failures still yield a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.adapter.WriteErrorResponse(w, r, ferrors.WrapError(err, ferrors.CategoryInternal, "template execution failed").
			WithContext("template", name).
			Build())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// localeOfPattern reads the locale from the first path segment of a route
// registered per locale.
func localeOfPattern(r *http.Request) locale.Locale {
	seg, _, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	loc, ok := locale.FromSegment(seg)
	if !ok {
		return locale.Default
	}
	return loc
}

func quoteETag(fingerprint string) string {
	return `"` + fingerprint + `"`
}
