// Package cmd implements the command-line interface for inboxdigest.
//
// This package provides the following commands:
//   - digest: Fetch unread Gmail, rate each email, and post the digest to Slack
//   - auth: Run the one-time OAuth consent flow and cache the Gmail token
//   - version: Display version information
//
// The digest command is the default command when no subcommand is specified.
package cmd
