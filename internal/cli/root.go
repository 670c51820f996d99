// Package cli implements the battalert command-line interface using Cobra.
// Each subcommand maps to one user action (run, dashboard, sounds, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "battalert",
	Short: "battalert: get told when the battery is full",
	Long: `battalert watches the battery and, while the charger is plugged in and
the charge is at or above the alert percentage, shows a notification once and
loops an alert sound until the charger is unplugged.

Run 'battalert run' for the background monitor or 'battalert dashboard'
for the interactive terminal view.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
