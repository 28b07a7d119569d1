package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Short key", input: "abc123", expected: "****"},
		{name: "Exactly 8 chars", input: "12345678", expected: "****"},
		{name: "Long key", input: "sk-ant-1234567890abcdef", expected: "sk-a...cdef"},
		{name: "Empty key", input: "", expected: "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskAPIKey(tt.input))
		})
	}
}

func TestConfigShow(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[Parser]")
	assert.Contains(t, out, "Max file size: 10485760 bytes")
	assert.Contains(t, out, "SQLite (local file)")
	assert.Contains(t, out, "using in-memory cache")
	assert.Contains(t, out, "API Key: (not set)")
	assert.Contains(t, out, "Port: 8080")
}

func TestConfigSet(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "config", "set", "storage.backend", "memory")
	require.NoError(t, err)
	assert.Contains(t, out, "storage.backend = memory")

	out, err = execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Memory (not persisted)")
}

func TestConfigSet_InvalidValue(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "config", "set", "server.port", "not-a-number")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive integer")
}

func TestConfigSet_MissingValue(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "config", "set", "server.port")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "a value is required")
}

func TestConfigSet_PromptsForAPIKey(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	rootCmd.SetIn(strings.NewReader("sk-ant-secret-key-1234\n"))
	out, err := execute(t, "config", "set", "analysis.api_key")

	require.NoError(t, err)
	assert.Contains(t, out, "analysis.api_key = sk-a...1234")
	assert.NotContains(t, out, "secret")

	out, err = execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Provider: anthropic")
	assert.Contains(t, out, "configured")
}

func TestConfigKeys(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "config", "keys")

	require.NoError(t, err)
	assert.Contains(t, out, "storage.backend")
	assert.Contains(t, out, "analysis.api_key")
}

func TestConfig_NoSettingsService(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	SetSettingsService(nil)

	_, err := execute(t, "config", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}
