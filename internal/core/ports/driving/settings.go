package driving

import "github.com/custodia-labs/encephalon/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the effective settings: defaults, then the config file.
	Get() (*domain.AppSettings, error)

	// Set stores a single dotted key such as "llm.model".
	Set(key, value string) error

	// Keys lists the settable keys.
	Keys() []string

	// ValidateEmbeddingConfig pings the configured embedding provider.
	ValidateEmbeddingConfig() error

	// ValidateLLMConfig pings the configured LLM provider.
	ValidateLLMConfig() error
}
