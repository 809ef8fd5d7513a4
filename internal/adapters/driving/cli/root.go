// Package cli implements the boexplorer command tree. Commands run against
// the explorer service injected by the composition root; they hold no
// business logic of their own.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/openownership/boexplorer/internal/core/ports/driven"
	"github.com/openownership/boexplorer/internal/core/ports/driving"
	"github.com/openownership/boexplorer/internal/logger"
)

var (
	explorerService driving.Explorer
	configStore     driven.ConfigStore
	version         = "dev"
	verbose         bool
)

var rootCmd = &cobra.Command{
	Use:   "boexplorer",
	Short: "Search beneficial ownership registries",
	Long: `boexplorer searches official company registers and beneficial
ownership registers across jurisdictions and aggregates what they return
into Beneficial Ownership Data Standard (BODS) statements.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Configure injects the services the commands run against. Call it once
// before Execute.
func Configure(explorer driving.Explorer, config driven.ConfigStore, v string) {
	explorerService = explorer
	configStore = config
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
