package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	internalauth "inkwell/internal/auth"
	"inkwell/internal/config"
)

var stdin io.Reader = os.Stdin

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative commands",
	}

	cmd.AddCommand(newAdminHashPasswordCmd())
	return cmd
}

func newAdminHashPasswordCmd() *cobra.Command {
	var (
		passwordStdin bool
		username      string
		save          bool
		global        bool
	)

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Hash the inbox password read from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !passwordStdin {
				return fmt.Errorf("--password-stdin is required")
			}

			passwordBytes, err := io.ReadAll(stdin)
			if err != nil {
				return err
			}
			hash, err := internalauth.HashPassword(strings.TrimSpace(string(passwordBytes)))
			if err != nil {
				return err
			}

			if !save {
				return writePlain("%s\n", hash)
			}

			path, err := configPath(global)
			if err != nil {
				return err
			}
			if strings.TrimSpace(username) != "" {
				normalized, err := internalauth.NormalizeUsername(username)
				if err != nil {
					return err
				}
				if err := config.SetKey(path, "admin.username", normalized); err != nil {
					return err
				}
			}
			if err := config.SetKey(path, "admin.password_hash", hash); err != nil {
				return err
			}
			return writePlain("saved admin.password_hash to %s\n", path)
		},
	}

	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	cmd.Flags().StringVar(&username, "username", "", "also set admin.username (with --save)")
	cmd.Flags().BoolVar(&save, "save", false, "write the hash to the config file instead of printing it")
	cmd.Flags().BoolVar(&global, "global", false, "with --save, write to the global config (~/.inkwell.toml)")
	return cmd
}
