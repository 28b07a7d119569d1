package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/cvkit/internal/core/domain"
	"github.com/custodia-labs/cvkit/internal/core/ports/driven"
	"github.com/custodia-labs/cvkit/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyMaxFileSize   = "parser.max_file_size"
	keyBackend       = "storage.backend"
	keyDataDir       = "storage.data_dir"
	keyDatabaseURL   = "storage.database_url"
	keyRedisAddr     = "cache.redis_addr"
	keyRedisPassword = "cache.redis_password"
	keyCacheTTL      = "cache.ttl_seconds"
	keyAIProvider    = "analysis.provider"
	keyAIModel       = "analysis.model"
	keyAIAPIKey      = "analysis.api_key"
	keyAIAuto        = "analysis.auto"
	keyServerPort    = "server.port"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindBool
)

// settingKeys lists every recognised key and its value kind.
var settingKeys = map[string]valueKind{
	keyMaxFileSize:   kindInt,
	keyBackend:       kindString,
	keyDataDir:       kindString,
	keyDatabaseURL:   kindString,
	keyRedisAddr:     kindString,
	keyRedisPassword: kindString,
	keyCacheTTL:      kindInt,
	keyAIProvider:    kindString,
	keyAIModel:       kindString,
	keyAIAPIKey:      kindString,
	keyAIAuto:        kindBool,
	keyServerPort:    kindInt,
}

// envAliases are conventional variables honoured when the CVKIT_ form is unset.
var envAliases = map[string]string{
	keyDatabaseURL: "DATABASE_URL",
	keyRedisAddr:   "REDIS_ADDR",
	keyAIAPIKey:    "ANTHROPIC_API_KEY",
}

// SettingsService manages application settings.
// Stored values are overridden by environment variables: CVKIT_ plus the
// key upper-cased with dots as underscores (CVKIT_STORAGE_BACKEND).
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service reading the process environment.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// NewSettingsServiceWithEnv creates a settings service with a custom environment lookup.
// This is primarily used for testing.
func NewSettingsServiceWithEnv(configStore driven.ConfigStore, getenv func(string) string) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      getenv,
	}
}

// Get returns the effective settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Parser: domain.ParserSettings{
			MaxFileSize: int64(s.getInt(keyMaxFileSize, int(defaults.Parser.MaxFileSize))),
		},
		Storage: domain.StorageSettings{
			Backend:     s.getBackend(defaults.Storage.Backend),
			DataDir:     s.getString(keyDataDir, defaults.Storage.DataDir),
			DatabaseURL: s.getString(keyDatabaseURL, ""),
		},
		Cache: domain.CacheSettings{
			RedisAddr:     s.getString(keyRedisAddr, ""),
			RedisPassword: s.getString(keyRedisPassword, ""),
			TTL:           time.Duration(s.getInt(keyCacheTTL, int(defaults.Cache.TTL/time.Second))) * time.Second,
		},
		Analysis: domain.AnalysisSettings{
			Provider: s.getProvider(defaults.Analysis.Provider),
			Model:    s.getString(keyAIModel, defaults.Analysis.Model),
			APIKey:   s.getString(keyAIAPIKey, ""),
			Auto:     s.getBool(keyAIAuto, defaults.Analysis.Auto),
		},
		Server: domain.ServerSettings{
			Port: s.getInt(keyServerPort, defaults.Server.Port),
		},
	}

	// An API key in the environment enables analysis without explicit provider config.
	if settings.Analysis.Provider == domain.AIProviderNone && settings.Analysis.APIKey != "" {
		settings.Analysis.Provider = domain.AIProviderAnthropic
	}

	return settings, nil
}

// Set validates and stores a single setting.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	kind, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, n)
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, b)
	}

	switch key {
	case keyBackend:
		if !domain.StorageBackend(value).IsValid() {
			return fmt.Errorf("%w: invalid storage backend %q", domain.ErrInvalidInput, value)
		}
	case keyAIProvider:
		if value != "" && !domain.AIProvider(value).IsValid() {
			return fmt.Errorf("%w: invalid analysis provider %q", domain.ErrInvalidInput, value)
		}
	}
	return s.configStore.Set(key, value)
}

// Keys returns the recognised setting keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EnvVar returns the CVKIT_ environment variable for a key.
func EnvVar(key string) string {
	return "CVKIT_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Helper methods for reading config with environment overrides and defaults.

func (s *SettingsService) env(key string) (string, bool) {
	if s.getenv == nil {
		return "", false
	}
	if v := s.getenv(EnvVar(key)); v != "" {
		return v, true
	}
	if alias, ok := envAliases[key]; ok {
		if v := s.getenv(alias); v != "" {
			return v, true
		}
	}
	return "", false
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if v, ok := s.env(key); ok {
		return v
	}
	if s.configStore == nil {
		return defaultVal
	}
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if v, ok := s.env(key); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	if s.configStore == nil {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if v, ok := s.env(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	if s.configStore == nil {
		return defaultVal
	}
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	backend := domain.StorageBackend(s.getString(keyBackend, ""))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func (s *SettingsService) getProvider(defaultVal domain.AIProvider) domain.AIProvider {
	provider := domain.AIProvider(s.getString(keyAIProvider, ""))
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
