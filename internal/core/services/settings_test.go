package services

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cvkit/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cvkit/internal/core/domain"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestSettingsService_Get_Defaults(t *testing.T) {
	service := NewSettingsServiceWithEnv(memory.NewConfigStore(), envMap(nil))

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultSettings()
	assert.Equal(t, defaults.Parser.MaxFileSize, settings.Parser.MaxFileSize)
	assert.Equal(t, domain.StorageBackendSQLite, settings.Storage.Backend)
	assert.Equal(t, 10*time.Minute, settings.Cache.TTL)
	assert.Equal(t, 8080, settings.Server.Port)
	assert.False(t, settings.Analysis.IsConfigured())
}

func TestSettingsService_Get_StoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	require.NoError(t, store.Set("storage.backend", "postgres"))
	require.NoError(t, store.Set("storage.database_url", "postgres://localhost/cvkit"))
	require.NoError(t, store.Set("cache.ttl_seconds", 30))
	require.NoError(t, store.Set("server.port", 9000))
	require.NoError(t, store.Set("analysis.auto", true))
	require.NoError(t, store.Set("parser.max_file_size", 1024))
	service := NewSettingsServiceWithEnv(store, envMap(nil))

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.StorageBackendPostgres, settings.Storage.Backend)
	assert.Equal(t, "postgres://localhost/cvkit", settings.Storage.DatabaseURL)
	assert.Equal(t, 30*time.Second, settings.Cache.TTL)
	assert.Equal(t, 9000, settings.Server.Port)
	assert.True(t, settings.Analysis.Auto)
	assert.Equal(t, int64(1024), settings.Parser.MaxFileSize)
}

func TestSettingsService_Get_EnvOverrides(t *testing.T) {
	store := memory.NewConfigStore()
	require.NoError(t, store.Set("storage.backend", "sqlite"))
	require.NoError(t, store.Set("server.port", 9000))
	service := NewSettingsServiceWithEnv(store, envMap(map[string]string{
		"CVKIT_STORAGE_BACKEND": "memory",
		"CVKIT_SERVER_PORT":     "7000",
		"CVKIT_ANALYSIS_AUTO":   "true",
		"REDIS_ADDR":            "localhost:6379",
		"ANTHROPIC_API_KEY":     "sk-test",
	}))

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.StorageBackendMemory, settings.Storage.Backend)
	assert.Equal(t, 7000, settings.Server.Port)
	assert.True(t, settings.Analysis.Auto)
	assert.Equal(t, "localhost:6379", settings.Cache.RedisAddr)
	assert.Equal(t, "sk-test", settings.Analysis.APIKey)
	assert.Equal(t, domain.AIProviderAnthropic, settings.Analysis.Provider)
	assert.True(t, settings.Analysis.IsConfigured())
}

func TestSettingsService_Get_PrefixedEnvBeatsAlias(t *testing.T) {
	service := NewSettingsServiceWithEnv(memory.NewConfigStore(), envMap(map[string]string{
		"CVKIT_STORAGE_DATABASE_URL": "postgres://prefixed",
		"DATABASE_URL":               "postgres://alias",
	}))

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "postgres://prefixed", settings.Storage.DatabaseURL)
}

func TestSettingsService_Get_InvalidValuesFallBack(t *testing.T) {
	store := memory.NewConfigStore()
	require.NoError(t, store.Set("storage.backend", "mongodb"))
	require.NoError(t, store.Set("analysis.provider", "unknown"))
	service := NewSettingsServiceWithEnv(store, envMap(map[string]string{
		"CVKIT_SERVER_PORT": "not-a-number",
	}))

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.StorageBackendSQLite, settings.Storage.Backend)
	assert.Equal(t, domain.AIProviderNone, settings.Analysis.Provider)
	assert.Equal(t, 8080, settings.Server.Port)
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsServiceWithEnv(store, envMap(nil))

	require.NoError(t, service.Set("storage.backend", "postgres"))
	require.NoError(t, service.Set("server.port", "9090"))
	require.NoError(t, service.Set("analysis.auto", "true"))
	require.NoError(t, service.Set("analysis.provider", "anthropic"))
	require.NoError(t, service.Set("analysis.model", "claude-3-5-haiku-latest"))

	assert.Equal(t, "postgres", store.GetString("storage.backend"))
	assert.Equal(t, 9090, store.GetInt("server.port"))
	assert.True(t, store.GetBool("analysis.auto"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "claude-3-5-haiku-latest", settings.Analysis.Model)
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	service := NewSettingsServiceWithEnv(memory.NewConfigStore(), envMap(nil))

	tests := []struct {
		key   string
		value string
	}{
		{"unknown.key", "x"},
		{"storage.backend", "mongodb"},
		{"analysis.provider", "openai"},
		{"server.port", "abc"},
		{"server.port", "-1"},
		{"analysis.auto", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			assert.ErrorIs(t, service.Set(tt.key, tt.value), domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore()).Keys()

	assert.Len(t, keys, len(settingKeys))
	assert.True(t, sort.StringsAreSorted(keys))
	for _, k := range keys {
		_, ok := settingKeys[k]
		assert.True(t, ok, k)
	}
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "CVKIT_STORAGE_BACKEND", EnvVar("storage.backend"))
	assert.Equal(t, "CVKIT_CACHE_TTL_SECONDS", EnvVar("cache.ttl_seconds"))
}

func TestSettingsService_Set_NoConfigStore(t *testing.T) {
	svc := NewSettingsServiceWithEnv(nil, func(string) string { return "" })

	err := svc.Set("server.port", "9000")

	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}
