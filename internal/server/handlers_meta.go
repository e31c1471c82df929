package server

import (
	"net/http"

	"inkwell/internal/api"
	"inkwell/internal/models"
)

// handleHealth reports ok only when both content trees load.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthResponse{Status: "ok", Version: s.version}

	posts, err := s.loadRecords(r.Context(), models.KindPost)
	if err != nil {
		s.log().Warn("health check failed", "kind", models.KindPost, "error", err)
		resp.Status = "unavailable"
	}
	projects, err := s.loadRecords(r.Context(), models.KindProject)
	if err != nil {
		s.log().Warn("health check failed", "kind", models.KindProject, "error", err)
		resp.Status = "unavailable"
	}
	resp.Posts = len(posts)
	resp.Projects = len(projects)

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, resp)
}
