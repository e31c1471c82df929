package main

import (
	"strings"

	"github.com/spf13/cobra"

	"inkwell/internal/config"
	"inkwell/internal/content"
	"inkwell/internal/models"
	"inkwell/internal/search"
)

func newContentCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect posts and projects on disk",
	}

	cmd.AddCommand(newContentListCmd(cfg, jsonOutput))
	cmd.AddCommand(newContentRoutesCmd(cfg, jsonOutput))
	return cmd
}

func newContentListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		kind     string
		category string
		tags     []string
		query    string
		order    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := models.ParseKind(kind)
			if err != nil {
				return err
			}
			records, err := newLoader(cfg, parsed, componentLogger(componentContent)).Load(cmd.Context())
			if err != nil {
				return err
			}

			filter := search.Filter{
				Category: strings.TrimSpace(category),
				Tags:     tags,
				Query:    strings.TrimSpace(query),
				Sort:     search.ParseSort(order),
			}
			records = search.Apply(records, filter)

			if *jsonOutput {
				return writeJSON(records)
			}
			return writeRecordList(records)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(models.KindPost), "post or project")
	cmd.Flags().StringVar(&category, "category", "", "category filter")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag filter (repeatable, all must match)")
	cmd.Flags().StringVar(&query, "q", "", "search title, excerpt and tags")
	cmd.Flags().StringVar(&order, "sort", "", "newest, oldest or title")
	return cmd
}

func newContentRoutesCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the detail page paths a build would write",
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := []models.Kind{models.KindPost, models.KindProject}
			if strings.TrimSpace(kind) != "" {
				parsed, err := models.ParseKind(kind)
				if err != nil {
					return err
				}
				kinds = []models.Kind{parsed}
			}

			routes := []content.Route{}
			for _, k := range kinds {
				records, err := newLoader(cfg, k, componentLogger(componentContent)).Load(cmd.Context())
				if err != nil {
					return err
				}
				routes = append(routes, content.Routes(records)...)
			}

			if *jsonOutput {
				return writeJSON(routes)
			}
			return writeRouteList(routes)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "post or project (default both)")
	return cmd
}
