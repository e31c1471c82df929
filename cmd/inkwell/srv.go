package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"inkwell/internal/config"
	"inkwell/internal/server"
	"inkwell/internal/store"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Serve the site",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}
			if cfg.DBPath == "" {
				return fmt.Errorf("db path is required")
			}

			logger := componentLogger(componentServer)

			addr, err := server.ListenAddr(cfg.ListenURL)
			if err != nil {
				return err
			}

			componentLogger(componentStore).Info("opening database", "path", cfg.DBPath)
			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			srv, err := newSiteServer(cfg, addr, st, logger)
			if err != nil {
				return err
			}
			return srv.ListenAndServe()
		},
	}
}
