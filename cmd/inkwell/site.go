package main

import (
	"fmt"
	"log/slog"

	"inkwell/internal/config"
	"inkwell/internal/content"
	"inkwell/internal/models"
	"inkwell/internal/server"
	"inkwell/internal/store"
)

// newSiteServer wires a server for cfg. st may be nil when nothing will
// accept contact submissions, as in a static export.
func newSiteServer(cfg *config.Config, addr string, st store.MessageStore, logger *slog.Logger) (*server.Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config not initialized")
	}
	opts := server.Options{
		Config:  *cfg,
		Store:   st,
		Logger:  logger,
		Version: version,
	}
	if cfg.Content.GitHistory {
		opts.History = content.GitHistory{Logger: logger}
	}
	return server.New(addr, opts)
}

func contentRoot(cfg *config.Config, kind models.Kind) string {
	if kind == models.KindProject {
		return cfg.Content.ProjectsDir
	}
	return cfg.Content.PostsDir
}

func newLoader(cfg *config.Config, kind models.Kind, logger *slog.Logger) *content.Loader {
	loader := &content.Loader{
		Root:          contentRoot(cfg, kind),
		Kind:          kind,
		IncludeDrafts: cfg.Content.IncludeDrafts,
		ExcerptLength: cfg.Content.ExcerptLength,
		Logger:        logger,
	}
	if cfg.Content.GitHistory {
		loader.History = content.GitHistory{Logger: logger}
	}
	return loader
}
