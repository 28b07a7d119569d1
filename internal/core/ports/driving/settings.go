package driving

import "github.com/custodia-labs/cvkit/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the effective settings: stored values, then environment overrides.
	Get() (*domain.Settings, error)

	// Set validates and stores a single setting by dot-notation key.
	Set(key, value string) error

	// Keys returns the recognised setting keys.
	Keys() []string
}
