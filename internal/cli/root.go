// Package cli defines the nudge-api command tree.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nudge-api",
	Short: "Personal productivity tracker with rule-based nudges",
	Long: "nudge-api records life events, predicts follow-up reminders from them, " +
		"and tracks expiring digital assets. Backed by Postgres, Redis, or memory.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
