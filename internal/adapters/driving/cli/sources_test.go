package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openownership/boexplorer/internal/core/domain"
)

func TestSourcesCmd_Table(t *testing.T) {
	explorer := &mockExplorer{sources: []domain.SourceSummary{
		{Name: "GLEIF", Country: "International", SearchURL: "https://api.gleif.org/api/v1/fuzzycompletions"},
		{Name: "Danish Central Business Register", Country: "Denmark"},
	}}

	output, err := execute(t, explorer, "sources")

	require.NoError(t, err)
	assert.Contains(t, output, "GLEIF")
	assert.Contains(t, output, "Danish Central Business Register")
	assert.Contains(t, output, "https://api.gleif.org/api/v1/fuzzycompletions")
}

func TestSourcesCmd_JSON(t *testing.T) {
	explorer := &mockExplorer{sources: []domain.SourceSummary{
		{Name: "GLEIF", Country: "International"},
	}}

	output, err := execute(t, explorer, "sources", "--json")

	require.NoError(t, err)
	assert.Contains(t, output, `"name": "GLEIF"`)
}
