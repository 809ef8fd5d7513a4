package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchOptions_Defaults(t *testing.T) {
	var opts SearchOptions

	assert.Equal(t, DefaultMaxResults, opts.Limit())
	assert.Equal(t, DefaultPageSize, opts.EffectivePageSize())
}

func TestSearchOptions_Explicit(t *testing.T) {
	opts := SearchOptions{MaxResults: 5, PageSize: 10}

	assert.Equal(t, 5, opts.Limit())
	assert.Equal(t, 10, opts.EffectivePageSize())
}

func TestResult_Merge(t *testing.T) {
	result := NewResult()
	result.AddEntity("GB-COH-01234567", Statement{StatementID: "a"})
	result.AddEntity("GB-COH-01234567", Statement{StatementID: "b"})
	result.AddPerson("GB-COH-PER-1", Statement{StatementID: "c"})

	require.Len(t, result.Entities["GB-COH-01234567"], 2)
	assert.Equal(t, "a", result.Entities["GB-COH-01234567"][0].StatementID)
	assert.Equal(t, "b", result.Entities["GB-COH-01234567"][1].StatementID)
	assert.Len(t, result.Persons["GB-COH-PER-1"], 1)
}

func TestResult_MarshalShape(t *testing.T) {
	result := NewResult()
	result.AddEntity("XI-LEI-5493001KJTIIGC8Y1R12", Statement{
		RecordID:   "XI-LEI-5493001KJTIIGC8Y1R12",
		RecordType: RecordEntity,
		RecordDetails: RecordDetails{
			Name:         "Example Corp",
			Jurisdiction: &Jurisdiction{Name: "United Kingdom", Code: "GB"},
			Identifiers:  []Identifier{{ID: "5493001KJTIIGC8Y1R12", Scheme: "XI-LEI"}},
			Addresses:    []Address{},
		},
	})

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "entities")
	assert.Contains(t, decoded, "persons")
	assert.Contains(t, decoded, "sources")

	statements := decoded["entities"].(map[string]any)["XI-LEI-5493001KJTIIGC8Y1R12"].([]any)
	statement := statements[0].(map[string]any)
	assert.Equal(t, "entity", statement["recordType"])

	details := statement["recordDetails"].(map[string]any)
	assert.Equal(t, "Example Corp", details["name"])
	// Person-only fields stay out of entity statements.
	assert.NotContains(t, details, "names")
	assert.NotContains(t, details, "personType")
	assert.NotContains(t, details, "taxResidencies")
}

func TestStatement_PersonMarshal(t *testing.T) {
	statement := Statement{
		RecordType: RecordPerson,
		RecordDetails: RecordDetails{
			PersonType:  PersonKnown,
			Names:       []Name{{Type: "legal", FullName: "Jane Smith"}},
			Identifiers: []Identifier{},
			Addresses:   []Address{},
		},
	}

	data, err := json.Marshal(statement)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	details := decoded["recordDetails"].(map[string]any)
	assert.Equal(t, "knownPerson", details["personType"])
	assert.NotContains(t, details, "name")
	assert.NotContains(t, details, "entityType")
	assert.NotContains(t, details, "jurisdiction")
}
