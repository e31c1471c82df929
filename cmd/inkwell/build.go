package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"inkwell/internal/build"
	"inkwell/internal/config"
	"inkwell/internal/models"
)

const defaultOutDir = "public"

func newBuildCmd(cfg *config.Config) *cobra.Command {
	var (
		outDir   string
		host     string
		watch    bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export the site as static files",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := componentLogger(componentBuild)
			rebuild := func(ctx context.Context) error {
				result, err := buildSite(ctx, cfg, outDir, host, logger)
				if err != nil {
					return err
				}
				return writePlain("built %d pages, %d redirects and %d assets into %s\n", result.Pages, result.Redirects, result.Assets, outDir)
			}

			if err := rebuild(cmd.Context()); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			dirs := []string{cfg.Content.PostsDir, cfg.Content.ProjectsDir}
			return build.Watch(cmd.Context(), dirs, debounce, rebuild, componentLogger(componentWatch))
		},
	}

	cmd.Flags().StringVar(&outDir, "out", defaultOutDir, "output directory (removed before each build)")
	cmd.Flags().StringVar(&host, "host", "", "host used for absolute links when site.base_url is unset")
	cmd.Flags().BoolVar(&watch, "watch", false, "rebuild when content changes")
	cmd.Flags().DurationVar(&debounce, "debounce", build.DefaultDebounce, "quiet period before a rebuild")
	return cmd
}

func buildSite(ctx context.Context, cfg *config.Config, outDir, host string, logger *slog.Logger) (build.Result, error) {
	srv, err := newSiteServer(cfg, "", nil, logger)
	if err != nil {
		return build.Result{}, err
	}
	posts, err := srv.LoadContent(ctx, models.KindPost)
	if err != nil {
		return build.Result{}, fmt.Errorf("load posts: %w", err)
	}
	projects, err := srv.LoadContent(ctx, models.KindProject)
	if err != nil {
		return build.Result{}, fmt.Errorf("load projects: %w", err)
	}
	return build.Build(ctx, build.Options{
		OutDir:   outDir,
		Handler:  srv.Handler(),
		Posts:    posts,
		Projects: projects,
		Host:     host,
		Logger:   logger,
	})
}
