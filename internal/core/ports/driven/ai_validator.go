package driven

import "github.com/custodia-labs/encephalon/internal/core/domain"

// AIConfigValidator verifies AI provider configurations by pinging them.
type AIConfigValidator interface {
	// ValidateEmbedding returns nil if the configuration reaches a working service.
	ValidateEmbedding(config *domain.EmbeddingSettings) error

	// ValidateLLM returns nil if the configuration reaches a working service.
	ValidateLLM(config *domain.LLMSettings) error
}
