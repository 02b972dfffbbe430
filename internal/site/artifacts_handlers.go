package site

import (
	"fmt"
	"net/http"
	"time"

	"git.home.luguber.info/inful/folio/internal/content"
	"git.home.luguber.info/inful/folio/internal/version"
)

const immutableCacheControl = "public, max-age=31536000, immutable"

func (s *Server) artifactCacheControl() string {
	if s.opts.FeedMaxAge <= 0 {
		return ""
	}
	return fmt.Sprintf("public, max-age=%d", int(s.opts.FeedMaxAge/time.Second))
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	body, err := s.artifacts.Sitemap(r.Context())
	if err != nil {
		s.adapter.WriteErrorResponse(w, r, err)
		return
	}
	writeBytes(w, "application/xml; charset=utf-8", s.artifactCacheControl(), body)
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	body, err := s.artifacts.Feed(r.Context())
	if err != nil {
		s.adapter.WriteErrorResponse(w, r, err)
		return
	}
	writeBytes(w, "application/rss+xml; charset=utf-8", s.artifactCacheControl(), body)
}

func (s *Server) handleRobots(w http.ResponseWriter, _ *http.Request) {
	writeBytes(w, "text/plain; charset=utf-8", s.artifactCacheControl(), s.artifacts.Robots())
}

func (s *Server) handleLLMs(w http.ResponseWriter, r *http.Request) {
	body, err := s.artifacts.LLMs(r.Context())
	if err != nil {
		s.adapter.WriteErrorResponse(w, r, err)
		return
	}
	writeBytes(w, "text/plain; charset=utf-8", s.artifactCacheControl(), body)
}

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	data, assetPath, err := s.content.Assets().Open(r.URL.Path)
	if err != nil {
		s.handleNotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", content.ContentType(assetPath))
	w.Header().Set("Cache-Control", immutableCacheControl)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	_, _ = w.Write(data)
}

// HealthResponse is the payload of GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
	IndexSize int       `json:"index_size,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Uptime:    time.Since(s.started).Seconds(),
	}
	if idx := s.content.Index(); idx.Built() {
		if slugs, err := idx.Map(r.Context()); err == nil {
			health.IndexSize = len(slugs)
		}
	}
	s.writeAPI(w, r, health)
}
