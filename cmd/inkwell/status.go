package main

import (
	"strings"

	"github.com/spf13/cobra"

	"inkwell/internal/api"
	"inkwell/internal/config"
)

func newStatusCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check a running site",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(baseURL)
			if target == "" {
				target = cfg.ListenURL
			}

			health, err := api.NewClient(target).Health(cmd.Context())
			if err != nil {
				return err
			}
			if *jsonOutput {
				return writeJSON(health)
			}
			return writePlain("%s: %s (posts=%d projects=%d version=%s)\n", target, health.Status, health.Posts, health.Projects, health.Version)
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "", "site URL (default listen_url)")
	return cmd
}
