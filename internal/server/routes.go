package server

import (
	"net/http"

	"inkwell/internal/metrics"
	"inkwell/internal/models"
	"inkwell/internal/site"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health, metrics and assets.
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /assets/", s.assetHandler())

	// Pages.
	s.page(mux, "GET /{$}", s.handleHome)
	for _, page := range site.StaticPages() {
		s.page(mux, "GET /"+page.Slug, s.handleStatic(page))
	}
	s.page(mux, "GET /contact", s.handleContactForm)
	s.page(mux, "POST /contact", s.handleContactSubmit)
	mux.HandleFunc("POST /theme", s.handleTheme)

	// Blog and work.
	s.page(mux, "GET /blog/{$}", s.handleList(models.KindPost))
	s.page(mux, "GET /blog/{category}/{slug}", s.handleDetail(models.KindPost))
	s.page(mux, "GET /blog/{slug}", s.handleSlugRedirect(models.KindPost))
	s.page(mux, "GET /work/{$}", s.handleList(models.KindProject))
	s.page(mux, "GET /work/{category}/{slug}", s.handleDetail(models.KindProject))
	s.page(mux, "GET /work/{slug}", s.handleSlugRedirect(models.KindProject))

	// Feed.
	mux.HandleFunc("GET /feed.xml", s.handleFeed)

	// JSON.
	mux.HandleFunc("GET /api/posts", s.handleAPIList(models.KindPost))
	mux.HandleFunc("GET /api/posts/{category}/{slug}", s.handleAPIDetail(models.KindPost))
	mux.HandleFunc("GET /api/projects", s.handleAPIList(models.KindProject))
	mux.HandleFunc("GET /api/projects/{category}/{slug}", s.handleAPIDetail(models.KindProject))

	// Admin.
	s.page(mux, "GET /admin/messages", s.requireAdmin(s.handleInbox))

	// Everything else.
	s.page(mux, "/", s.handleNotFound)

	return mux
}

// page registers an HTML handler that renders with the visitor's theme.
func (s *Server) page(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.Handle(pattern, s.withTheme(h))
}
