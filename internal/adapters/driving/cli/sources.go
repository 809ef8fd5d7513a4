package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var sourcesJSON bool

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured registries",
	RunE:  runSources,
}

func init() {
	sourcesCmd.Flags().BoolVar(&sourcesJSON, "json", false, "output sources as JSON")
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	if explorerService == nil {
		return errors.New("explorer service not configured")
	}

	sources := explorerService.Sources()
	if sourcesJSON {
		data, err := json.MarshalIndent(sources, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal sources: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("%-34s %-20s %s\n", "Register", "Country", "Search URL")
	for _, s := range sources {
		cmd.Printf("%-34s %-20s %s\n", s.Name, s.Country, s.SearchURL)
	}
	return nil
}
