package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/openownership/boexplorer/internal/core/domain"
)

var (
	searchLimit    int
	searchPageSize int
	searchJSON     bool
	searchPersons  bool
	searchSources  []string
)

var searchCmd = &cobra.Command{
	Use:   "search [name]",
	Short: "Search the registries by name",
	Long: `Searches every configured registry by company name and aggregates
the results as BODS statements. With --persons the person-searchable
registries are queried by person name instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum records per registry")
	searchCmd.Flags().IntVar(&searchPageSize, "page-size", 0, "requested page size (capped per registry)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output the full result as JSON")
	searchCmd.Flags().BoolVar(&searchPersons, "persons", false, "search by person name")
	searchCmd.Flags().StringSliceVar(&searchSources, "sources", nil, "restrict to these schemes, e.g. GB-COH,DK-CVR")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if explorerService == nil {
		return errors.New("explorer service not configured")
	}

	ctx := cmd.Context()
	opts := domain.SearchOptions{
		MaxResults: searchLimit,
		PageSize:   searchPageSize,
		Sources:    searchSources,
	}

	var (
		result *domain.Result
		err    error
	)
	if searchPersons {
		result, err = explorerService.SearchPersons(ctx, args[0], opts)
	} else {
		result, err = explorerService.SearchCompanies(ctx, args[0], opts)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputResultJSON(cmd, result)
	}
	return outputResultTable(cmd, result)
}

func outputResultJSON(cmd *cobra.Command, result *domain.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true)
	recordIDStyle    = lipgloss.NewStyle().Faint(true)
)

func outputResultTable(cmd *cobra.Command, result *domain.Result) error {
	if len(result.Entities) == 0 && len(result.Persons) == 0 {
		cmd.Println("No records found.")
	}

	if len(result.Entities) > 0 {
		cmd.Println(tableHeaderStyle.Render("Entities"))
		printRecords(cmd, result.Entities)
	}
	if len(result.Persons) > 0 {
		cmd.Println(tableHeaderStyle.Render("Persons"))
		printRecords(cmd, result.Persons)
	}

	cmd.Println(tableHeaderStyle.Render("Sources"))
	cmd.Printf("  %-28s %-20s %8s %8s\n", "Register", "Country", "Entities", "Persons")
	for _, scheme := range sortedKeys(result.Sources) {
		row := result.Sources[scheme]
		cmd.Printf("  %-28s %-20s %8d %8d\n", row.Name, row.Country, row.EntityCount, row.PersonCount)
	}
	return nil
}

// printRecords lists records with one line per contributing registry
// statement.
func printRecords(cmd *cobra.Command, records map[string][]domain.Statement) {
	for _, recordID := range sortedKeys(records) {
		cmd.Printf("  %s\n", recordIDStyle.Render(recordID))
		for _, st := range records[recordID] {
			name := st.RecordDetails.Name
			if name == "" && len(st.RecordDetails.Names) > 0 {
				name = st.RecordDetails.Names[0].FullName
			}
			cmd.Printf("    %s  (%s)\n", name, st.Source.Description)
		}
	}
	cmd.Println()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
