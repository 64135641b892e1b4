package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the inboxdigest application
var rootCmd = &cobra.Command{
	Use:   "inboxdigest",
	Short: "Posts a prioritized digest of unread Gmail to Slack",
	Long: `inboxdigest fetches unread messages from your Gmail inbox, rates each
one with the Gemini API, and posts a single prioritized digest message to a
Slack channel via an incoming webhook.

It is designed to run on a schedule (cron, CI, or a Kubernetes CronJob):
one run produces one digest.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "inboxdigest version %s\n" .Version}}`)

	// If no subcommand is provided, run the digest command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "digest")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newDigestCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
