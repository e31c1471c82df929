package server

import (
	"fmt"
	"net/http"

	"inkwell/internal/content"
	"inkwell/internal/models"
	"inkwell/internal/search"
	"inkwell/internal/site"
)

const (
	homePostLimit    = 3
	homeProjectLimit = 6
)

var listHeadings = map[models.Kind]struct{ heading, intro string }{
	models.KindPost:    {"Blog", "Notes on design, engineering and running a studio."},
	models.KindProject: {"Work", "Selected projects for clients large and small."},
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	posts, err := s.loadRecords(r.Context(), models.KindPost)
	if err != nil {
		s.renderError(w, r, contentFailure(err))
		return
	}
	projects, err := s.loadRecords(r.Context(), models.KindProject)
	if err != nil {
		s.renderError(w, r, contentFailure(err))
		return
	}

	s.renderPage(w, r, http.StatusOK, site.TemplateHome, site.Page{
		Description: s.cfg.Site.Description,
		Data: site.HomeData{
			Posts:    limitRecords(posts, homePostLimit),
			Projects: featuredProjects(projects, homeProjectLimit),
		},
	})
}

// featuredProjects puts featured projects first, then fills up with the
// newest of the rest.
func featuredProjects(records []models.Record, limit int) []models.Record {
	out := make([]models.Record, 0, limit)
	for _, record := range records {
		if record.Featured && len(out) < limit {
			out = append(out, record)
		}
	}
	for _, record := range records {
		if !record.Featured && len(out) < limit {
			out = append(out, record)
		}
	}
	return out
}

func limitRecords(records []models.Record, limit int) []models.Record {
	if len(records) > limit {
		return records[:limit]
	}
	return records
}

func (s *Server) handleStatic(page site.StaticPage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderPage(w, r, http.StatusOK, page.Slug, site.Page{
			Title:       page.Title,
			Description: page.Description,
		})
	}
}

func (s *Server) handleList(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.loadRecords(r.Context(), kind)
		if err != nil {
			s.renderError(w, r, contentFailure(err))
			return
		}

		filter := search.FromQuery(r.URL.Query())
		matched := search.Apply(records, filter)
		text := listHeadings[kind]
		s.renderPage(w, r, http.StatusOK, site.TemplateList, site.Page{
			Title:       text.heading,
			Description: text.intro,
			Data: site.ListData{
				Kind:       kind,
				Heading:    text.heading,
				Intro:      text.intro,
				BasePath:   kind.PathPrefix(),
				Records:    matched,
				Total:      len(records),
				Filter:     filter,
				Categories: search.Categories(records),
				Tags:       search.Tags(records),
			},
		})
	}
}

func (s *Server) handleDetail(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.loadRecords(r.Context(), kind)
		if err != nil {
			s.renderError(w, r, contentFailure(err))
			return
		}

		category, slug := r.PathValue("category"), r.PathValue("slug")
		record, ok := content.Find(records, category, slug)
		if !ok {
			s.renderError(w, r, notFound(fmt.Errorf("no %s at %s/%s", kind, category, slug)))
			return
		}

		doc, err := s.renderer.Render(record.Body)
		if err != nil {
			s.renderError(w, r, renderFailure(fmt.Errorf("render %s: %w", record.SourcePath, err)))
			return
		}

		name := site.TemplatePost
		if kind == models.KindProject {
			name = site.TemplateProject
		}
		s.renderPage(w, r, http.StatusOK, name, site.Page{
			Title:       record.Title,
			Description: record.Excerpt,
			Data: site.DetailData{
				Record:  record,
				HTML:    doc.HTML,
				TOC:     doc.TOC,
				Related: content.Related(records, record, s.relatedLimit()),
			},
		})
	}
}

// handleSlugRedirect sends /blog/{slug} to the canonical category URL.
func (s *Server) handleSlugRedirect(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.loadRecords(r.Context(), kind)
		if err != nil {
			s.renderError(w, r, contentFailure(err))
			return
		}

		slug := r.PathValue("slug")
		record, ok := content.ResolveSlug(records, slug)
		if !ok {
			s.renderError(w, r, notFound(fmt.Errorf("no %s with slug %s", kind, slug)))
			return
		}
		http.Redirect(w, r, record.Path(), http.StatusFound)
	}
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, makeHTTPError(http.StatusNotFound, "not_found", ErrCodePageNotFound, fmt.Errorf("no page at %s", r.URL.Path)))
}
