package driven

import "context"

// LLMService produces text from a prompt.
//
// Implementations:
//   - Ollama (llama3.2:1b by default)
//   - OpenAI chat completions
type LLMService interface {
	// Generate produces a complete response.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Stream produces a response fragment by fragment, calling emit for each
	// fragment in emission order. An error returned by emit stops the stream
	// and is returned unchanged.
	Stream(ctx context.Context, prompt string, opts GenerateOptions, emit func(fragment string) error) error

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate. 0 means the model default.
	MaxTokens int

	// Temperature controls randomness. It is always sent, so 0 means deterministic.
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}
