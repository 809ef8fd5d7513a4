package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openownership/boexplorer/internal/core/domain"
)

// SearchInput is the input schema for the search tools.
type SearchInput struct {
	Query   string   `json:"query" jsonschema:"the name to search the registries for"`
	Limit   int      `json:"limit,omitempty" jsonschema:"maximum number of records per registry (default 100)"`
	Sources []string `json:"sources,omitempty" jsonschema:"restrict the search to these registry schemes, e.g. XI-LEI or DK-CVR"`
}

// SearchOutput is the output schema for the search tools. Statements are
// grouped by record so that the same company found in several registries
// appears once, with one statement per registry.
type SearchOutput struct {
	Entities map[string][]domain.Statement   `json:"entities"`
	Persons  map[string][]domain.Statement   `json:"persons"`
	Sources  map[string]domain.SourceSummary `json:"sources"`
	Count    int                             `json:"count"`
}

// SourcesOutput is the output schema for the sources tool.
type SourcesOutput struct {
	Sources []domain.SourceSummary `json:"sources"`
	Count   int                    `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_companies",
		Description: "Search company registers and beneficial ownership registries by company name, returning BODS v0.4 statements",
	}, s.handleSearchCompanies)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_persons",
		Description: "Search the person-searchable registries by person name, returning BODS v0.4 statements",
	}, s.handleSearchPersons)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sources",
		Description: "List the configured registries and their search endpoints",
	}, s.handleSources)
}

// handleSearchCompanies handles the search_companies tool invocation.
func (s *Server) handleSearchCompanies(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	result, err := s.ports.Explorer.SearchCompanies(ctx, input.Query, searchOptions(input))
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, searchOutput(result), nil
}

// handleSearchPersons handles the search_persons tool invocation.
func (s *Server) handleSearchPersons(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	result, err := s.ports.Explorer.SearchPersons(ctx, input.Query, searchOptions(input))
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, searchOutput(result), nil
}

// handleSources handles the sources tool invocation.
func (s *Server) handleSources(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, SourcesOutput, error) {
	sources := s.ports.Explorer.Sources()
	return nil, SourcesOutput{Sources: sources, Count: len(sources)}, nil
}

func searchOptions(input SearchInput) domain.SearchOptions {
	return domain.SearchOptions{
		MaxResults: input.Limit,
		Sources:    input.Sources,
	}
}

func searchOutput(result *domain.Result) SearchOutput {
	return SearchOutput{
		Entities: result.Entities,
		Persons:  result.Persons,
		Sources:  result.Sources,
		Count:    len(result.Entities) + len(result.Persons),
	}
}
