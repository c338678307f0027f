// Package cmd provides the minbar CLI commands.
//
// Commands:
//   - serve: HTTP webhook server answering WhatsApp messages
//   - ask: one-shot question from the terminal
//   - version: build and configuration information
//
// Signal handling and graceful shutdown are implemented via context
// cancellation.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "minbar",
	Short: "Minbar - WhatsApp FAQ assistant for the masjid",
	Long: `Minbar answers WhatsApp questions about the masjid: prayer and iftar
times from a CSV schedule, and everything else from markdown notes,
optionally rephrased by Gemini.

Running minbar without a subcommand starts the webhook server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
