package server

import (
	"context"

	"inkwell/internal/content"
	"inkwell/internal/metrics"
	"inkwell/internal/models"
)

func (s *Server) contentRoot(kind models.Kind) string {
	if kind == models.KindProject {
		return s.cfg.Content.ProjectsDir
	}
	return s.cfg.Content.PostsDir
}

// loadRecords reads one content tree from disk. Nothing is cached, so edits
// show up on the next request.
func (s *Server) loadRecords(ctx context.Context, kind models.Kind) ([]models.Record, error) {
	loader := &content.Loader{
		Root:          s.contentRoot(kind),
		Kind:          kind,
		History:       s.history,
		IncludeDrafts: s.cfg.Content.IncludeDrafts,
		ExcerptLength: s.cfg.Content.ExcerptLength,
		Logger:        s.log(),
		Now:           s.now,
		OnSkip: func(string, error) {
			metrics.RecordContentSkip(string(kind))
		},
	}
	records, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordContentLoad(string(kind), len(records))
	return records, nil
}

// LoadContent loads one content tree the same way the page handlers do.
func (s *Server) LoadContent(ctx context.Context, kind models.Kind) ([]models.Record, error) {
	return s.loadRecords(ctx, kind)
}
