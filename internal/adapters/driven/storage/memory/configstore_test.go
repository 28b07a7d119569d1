package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
	assert.NoError(t, store.Load())
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("storage.backend", "sqlite"))
	require.NoError(t, store.Set("storage.backend", "postgres"))

	val, ok := store.Get("storage.backend")
	assert.True(t, ok)
	assert.Equal(t, "postgres", val)
}

func TestConfigStore_Get_Missing(t *testing.T) {
	store := NewConfigStore()

	val, ok := store.Get("nope")
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.Empty(t, store.GetString("nope"))
	assert.Zero(t, store.GetInt("nope"))
	assert.False(t, store.GetBool("nope"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("s", "value"))
	require.NoError(t, store.Set("i", 42))
	require.NoError(t, store.Set("i64", int64(7)))
	require.NoError(t, store.Set("f", 3.0))
	require.NoError(t, store.Set("b", true))

	assert.Equal(t, "value", store.GetString("s"))
	assert.Empty(t, store.GetString("i"), "wrong type yields zero value")
	assert.Equal(t, 42, store.GetInt("i"))
	assert.Equal(t, 7, store.GetInt("i64"))
	assert.Equal(t, 3, store.GetInt("f"))
	assert.Zero(t, store.GetInt("s"))
	assert.True(t, store.GetBool("b"))
	assert.False(t, store.GetBool("s"))
}

func TestConfigStore_Keys_Sorted(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("server.port", 8080))
	require.NoError(t, store.Set("analysis.auto", true))
	require.NoError(t, store.Set("cache.ttl_seconds", 60))

	assert.Equal(t, []string{"analysis.auto", "cache.ttl_seconds", "server.port"}, store.Keys())
}

func TestConfigStore_Concurrent(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("key", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("key")
		}()
	}
	wg.Wait()

	_, ok := store.Get("key")
	assert.True(t, ok)
}
