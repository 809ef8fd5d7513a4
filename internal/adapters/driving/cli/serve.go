package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openownership/boexplorer/internal/adapters/driving/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API. Endpoints:

  GET /v0/search/companies?q=NAME   search by company name
  GET /v0/search/persons?q=NAME     search by person name
  GET /v0/sources                   list the configured registries`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 8080, "HTTP port")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if explorerService == nil {
		return errors.New("explorer service not configured")
	}
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	addr := fmt.Sprintf(":%d", port)
	fmt.Fprintf(cmd.OutOrStdout(), "API server listening on http://localhost%s\n", addr)
	return httpapi.NewServer(explorerService).Run(cmd.Context(), addr)
}
