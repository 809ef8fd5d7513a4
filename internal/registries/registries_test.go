package registries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openownership/boexplorer/internal/adapters/driven/config/memory"
)

func schemes(t *testing.T, store *memory.ConfigStore) []string {
	t.Helper()
	var out []string
	for _, a := range Default(store, nil) {
		out = append(out, a.Scheme())
	}
	return out
}

func TestDefault(t *testing.T) {
	got := schemes(t, memory.NewConfigStore(nil))

	require.Len(t, got, 10)
	// GLEIF first, so national records merge into LEI records.
	assert.Equal(t, "XI-LEI", got[0])
	assert.Contains(t, got, "GB-COH")
	assert.Contains(t, got, "DK-CVR")
	assert.Contains(t, got, "EE-RIK")
	assert.NotContains(t, got, "FR-RCS")
}

// The French register needs a login per request, so it only joins the
// lineup when an account is configured.
func TestDefault_FranceNeedsCredentials(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"sources.france_inpi.credentials.user": "someone@example.org",
	})

	got := schemes(t, store)

	require.Len(t, got, 11)
	assert.Equal(t, "FR-RCS", got[len(got)-1])
}

func TestDefault_NilConfig(t *testing.T) {
	adapters := Default(nil, nil)

	assert.Len(t, adapters, 10)
}
