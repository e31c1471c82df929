package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"inkwell/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var (
		jsonOutput bool
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:           "inkwell",
		Short:         "Inkwell serves and exports the studio website",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			warning, err := configureLoggerForCLI(logLevel, cfg.LogLevel, jsonOutput)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), warning)
			}
			return nil
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newSrvCmd(cfg),
		newBuildCmd(cfg),
		newContentCmd(cfg, &jsonOutput),
		newNewCmd(cfg),
		newMessagesCmd(cfg, &jsonOutput),
		newMigrateCmd(cfg, &jsonOutput),
		newAdminCmd(),
		newConfigCmd(cfg),
		newStatusCmd(cfg, &jsonOutput),
	)

	return cmd
}
