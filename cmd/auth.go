package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/inboxdigest/internal/config"
	"github.com/teemow/inboxdigest/internal/google"
)

func newAuthCmd() *cobra.Command {
	var configPath string
	var force bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize read-only Gmail access and cache the token",
		Long: `Run the one-time OAuth consent flow for read-only Gmail access.

Prints an authorization URL to open in a browser, reads the authorization
code from stdin, and caches the resulting token. Subsequent digest runs
refresh the token automatically and never need the browser again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			auth := &google.Authenticator{
				CredentialsFile: cfg.CredentialsFile,
				TokenFile:       cfg.TokenFile,
			}

			if auth.HasToken() && !force {
				fmt.Fprintf(cmd.OutOrStdout(), "A token already exists at %s; use --force to replace it.\n", cfg.TokenFile)
				return nil
			}

			url, err := auth.AuthURL()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Open the following URL in a browser and authorize access:\n\n%s\n\n", url)
			fmt.Fprint(cmd.OutOrStdout(), "Enter the authorization code: ")

			reader := bufio.NewReader(cmd.InOrStdin())
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("no authorization code provided")
			}

			if err := auth.Exchange(context.Background(), code); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Token saved to %s\n", cfg.TokenFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the YAML config file (optional)")
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing cached token")

	return cmd
}
