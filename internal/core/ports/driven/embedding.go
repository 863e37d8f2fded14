package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// It receives the text verbatim; task prefixes are added by the caller.
//
// Implementations:
//   - Ollama (nomic-embed-text)
//   - OpenAI (text-embedding-3-small) or any compatible endpoint
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
