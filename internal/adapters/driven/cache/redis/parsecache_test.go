package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cvkit/internal/core/domain"
)

func TestNew_UnreachableBypasses(t *testing.T) {
	// Port 1 is reserved and refuses connections.
	cache := New(context.Background(), Config{Addr: "127.0.0.1:1"})

	require.NotNil(t, cache)
	assert.False(t, cache.Available())
	assert.Equal(t, defaultTTL, cache.ttl)

	got, ok, err := cache.Get(context.Background(), "k")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	assert.NoError(t, cache.Set(context.Background(), "k", &domain.ParsedCV{Text: "x"}))
	assert.NoError(t, cache.Close())
}

func TestSet_NilParsed(t *testing.T) {
	cache := &ParseCache{}
	assert.ErrorIs(t, cache.Set(context.Background(), "k", nil), domain.ErrInvalidInput)
}

func TestParseCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("CVKIT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("CVKIT_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	cache := New(ctx, Config{Addr: addr, TTL: time.Minute})
	require.True(t, cache.Available())
	t.Cleanup(func() { _ = cache.Close() })

	key := "test:" + uuid.NewString()
	parsed := &domain.ParsedCV{
		Text:         "Jane Doe\njane@example.com",
		BasicInfo:    domain.BasicInfo{Name: "Jane Doe", Email: "jane@example.com"},
		DocumentType: domain.DocumentTypeText,
		ContentHash:  "abc",
	}

	_, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, key, parsed))

	got, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, *parsed, *got)

	ttl, err := cache.client.TTL(ctx, keyPrefix+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
