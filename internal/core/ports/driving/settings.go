package driving

import "github.com/custodia-labs/boothcache/internal/core/domain"

// PolicyProvider resolves the current retention and refresh policy.
type PolicyProvider interface {
	// Policy returns the effective policy with defaults applied.
	Policy() domain.Policy
}

// SettingsService manages application settings.
type SettingsService interface {
	PolicyProvider

	// Set stores a single setting by key after validating it.
	Set(key, value string) error

	// Keys returns the recognised setting keys.
	Keys() []string

	// GetDefaults returns the built-in policy.
	GetDefaults() domain.Policy
}
