package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"inkwell/internal/config"
	"inkwell/internal/store"
)

const defaultMessagesLimit = 20

func newMessagesCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Read contact form submissions",
	}

	cmd.AddCommand(newMessagesListCmd(cfg, jsonOutput))
	cmd.AddCommand(newMessagesShowCmd(cfg, jsonOutput))
	cmd.AddCommand(newMessagesDeleteCmd(cfg))
	return cmd
}

func newMessagesListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List submissions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be > 0")
			}
			if offset < 0 {
				return fmt.Errorf("--offset must be >= 0")
			}
			return withStore(cfg, func(st *store.Store) error {
				messages, err := st.ListMessages(cmd.Context(), limit, offset)
				if err != nil {
					return err
				}
				total, err := st.CountMessages(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(map[string]any{"messages": messages, "total": total})
				}
				return writeMessageList(messages, total)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultMessagesLimit, "max messages")
	cmd.Flags().IntVar(&offset, "offset", 0, "skip this many messages")
	return cmd
}

func newMessagesShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one submission",
		Args:  requireMessageID,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cfg, func(st *store.Store) error {
				msg, err := st.GetMessage(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if msg == nil {
					return fmt.Errorf("message %s not found", args[0])
				}
				if *jsonOutput {
					return writeJSON(msg)
				}
				return writeMessageDetail(*msg)
			})
		},
	}
}

func newMessagesDeleteCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one submission",
		Args:  requireMessageID,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cfg, func(st *store.Store) error {
				deleted, err := st.DeleteMessage(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("message %s not found", args[0])
				}
				return writePlain("deleted %s\n", args[0])
			})
		},
	}
}

func withStore(cfg *config.Config, fn func(*store.Store) error) error {
	if cfg == nil || cfg.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	componentLogger(componentStore).Debug("opening database", "path", cfg.DBPath)
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}
