package server

import (
	"fmt"
	"net/http"

	"inkwell/internal/api"
	"inkwell/internal/content"
	"inkwell/internal/models"
	"inkwell/internal/search"
)

func (s *Server) handleAPIList(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.loadRecords(r.Context(), kind)
		if err != nil {
			s.writeServiceError(w, r, contentFailure(err))
			return
		}

		matched := search.Apply(records, search.FromQuery(r.URL.Query()))
		s.writeJSON(w, http.StatusOK, api.RecordList{
			Kind:       kind,
			Count:      len(matched),
			Records:    matched,
			Categories: search.Categories(records),
			Tags:       search.Tags(records),
		})
	}
}

func (s *Server) handleAPIDetail(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.loadRecords(r.Context(), kind)
		if err != nil {
			s.writeServiceError(w, r, contentFailure(err))
			return
		}

		category, slug := r.PathValue("category"), r.PathValue("slug")
		record, ok := content.Find(records, category, slug)
		if !ok {
			s.writeServiceError(w, r, notFound(fmt.Errorf("no %s at %s/%s", kind, category, slug)))
			return
		}

		doc, err := s.renderer.Render(record.Body)
		if err != nil {
			s.writeServiceError(w, r, renderFailure(err))
			return
		}

		s.writeJSON(w, http.StatusOK, api.RecordDetail{
			Record:  record,
			HTML:    string(doc.HTML),
			TOC:     doc.TOC,
			Related: content.Related(records, record, s.relatedLimit()),
		})
	}
}
