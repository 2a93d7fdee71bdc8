// Areacfg generates Home Assistant area configurations.
//
// It collects a description of a room interactively or from flags and emits
// a deterministic template-entity YAML document for that area: occupancy
// scoring, power aggregation, climate comfort sensors, per-device sensors,
// and the input helpers that tune them.
//
// Usage:
//
//	areacfg [command] [flags]
//
// Running without arguments launches the interactive wizard.
// See 'areacfg --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/areacfg/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "areacfg",
	Short: "Home Assistant Area Configuration Generator",
	Long: `A standalone utility for generating Home Assistant area configurations.

Describe a room once (name, type, devices, available sensors) and areacfg
produces the full template-entity YAML for it: occupancy detection with
confidence scoring, power and energy aggregation, climate comfort sensors,
per-device sensors, and input helpers.

If no command is specified, the interactive wizard will launch automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run wizard when no subcommand provided
		return runWizard(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("areacfg %s (commit: %s)\n", version.Version, version.Commit)
	},
}
