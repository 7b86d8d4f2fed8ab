package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("gateway.base_url", "http://tax.local"))

	val, ok := store.Get("gateway.base_url")
	assert.True(t, ok)
	assert.Equal(t, "http://tax.local", val)
	assert.Equal(t, "http://tax.local", store.GetString("gateway.base_url"))
}

func TestConfigStore_Get_Missing(t *testing.T) {
	store := NewConfigStore()

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("missing"))
	assert.Zero(t, store.GetFloat("missing"))
}

func TestConfigStore_NumericConversions(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("int", 5)
	_ = store.Set("int64", int64(7))
	_ = store.Set("float", 2.5)
	_ = store.Set("string", "nope")

	assert.Equal(t, 5, store.GetInt("int"))
	assert.Equal(t, 7, store.GetInt("int64"))
	assert.Equal(t, 2, store.GetInt("float"))
	assert.Zero(t, store.GetInt("string"))

	assert.Equal(t, 5.0, store.GetFloat("int"))
	assert.Equal(t, 7.0, store.GetFloat("int64"))
	assert.Equal(t, 2.5, store.GetFloat("float"))
	assert.Zero(t, store.GetFloat("string"))
	assert.Empty(t, store.GetString("int"))
}

func TestConfigStore_Keys_Sorted(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("log.file", "a")
	_ = store.Set("gateway.chat_path", "/c")
	_ = store.Set("gateway.base_url", "http://x")

	assert.Equal(t, []string{"gateway.base_url", "gateway.chat_path", "log.file"}, store.Keys())
}

func TestConfigStore_LoadAndPath(t *testing.T) {
	store := NewConfigStore()

	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}
