package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"sources.uk_coh.credentials.key": "a1b2c3",
		"sources.france_inpi.page_size":  float64(50),
		"cache.enabled":                  true,
	})

	assert.Equal(t, "a1b2c3", store.GetString("sources.uk_coh.credentials.key"))
	assert.Equal(t, 50, store.GetInt("sources.france_inpi.page_size"))
	assert.True(t, store.GetBool("cache.enabled"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("missing"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_Set(t *testing.T) {
	store := NewConfigStore(nil)

	require.NoError(t, store.Set("sources.estonia_rik.credentials.user", "someone"))
	assert.Equal(t, "someone", store.GetString("sources.estonia_rik.credentials.user"))
	require.NoError(t, store.Save())
	require.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_WrongTypes(t *testing.T) {
	store := NewConfigStore(map[string]any{"key": 42})

	assert.Equal(t, "", store.GetString("key"))
	assert.Equal(t, 42, store.GetInt("key"))
	assert.False(t, store.GetBool("key"))
}
