package domain

const unknownDescription = "Unknown"

// Default model and service settings.
const (
	DefaultOllamaURL        = "http://localhost:11434"
	DefaultEmbeddingModel   = "nomic-embed-text"
	DefaultLLMModel         = "llama3.2:1b"
	DefaultChunkSize        = 256
	DefaultChunkOverlap     = 32
	DefaultEncoding         = "cl100k_base"
	DefaultTopK             = 3
	DefaultHeadingMinLength = 3
	DefaultCollection       = "Knowledge"
)

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI API or any compatible endpoint.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	Provider AIProvider `env:"ENCEPHALON_EMBEDDING_PROVIDER"`
	Model    string     `env:"ENCEPHALON_EMBEDDING_MODEL"`
	BaseURL  string     `env:"ENCEPHALON_EMBEDDING_BASE_URL"`
	APIKey   string     `env:"ENCEPHALON_EMBEDDING_API_KEY"`
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	Provider AIProvider `env:"ENCEPHALON_LLM_PROVIDER"`
	Model    string     `env:"ENCEPHALON_LLM_MODEL"`
	BaseURL  string     `env:"ENCEPHALON_LLM_BASE_URL"`
	APIKey   string     `env:"ENCEPHALON_LLM_API_KEY"`
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// ChunkingSettings controls the token window.
type ChunkingSettings struct {
	Size     int    `env:"ENCEPHALON_CHUNK_SIZE"`
	Overlap  int    `env:"ENCEPHALON_CHUNK_OVERLAP"`
	Encoding string `env:"ENCEPHALON_CHUNK_ENCODING"`
}

// Validate checks the window parameters.
func (c ChunkingSettings) Validate() error {
	if c.Size <= 0 || c.Overlap < 0 || c.Overlap >= c.Size {
		return ErrConfiguration
	}
	return nil
}

// RetrievalSettings controls how many chunks feed an answer.
type RetrievalSettings struct {
	TopK int `env:"ENCEPHALON_TOP_K"`
}

// EPUBSettings tunes EPUB structure recovery.
type EPUBSettings struct {
	// HeadingMinLength is the length an all-uppercase line must exceed
	// to be promoted to a heading.
	HeadingMinLength int `env:"ENCEPHALON_EPUB_HEADING_MIN_LENGTH"`
}

// TranscriptSettings selects caption tracks.
type TranscriptSettings struct {
	// Languages are caption language codes in order of preference.
	Languages []string `env:"ENCEPHALON_TRANSCRIPT_LANGUAGES" envSeparator:","`
}

// VectorSettings configures the vector store.
type VectorSettings struct {
	Collection string `env:"ENCEPHALON_COLLECTION"`
}

// AppSettings holds all application settings.
type AppSettings struct {
	// DataHome is the root of the vector store, ledger and cache tree.
	// Empty means the platform data directory.
	DataHome string `env:"ENCEPHALON_DATA_HOME"`

	Embedding  EmbeddingSettings
	LLM        LLMSettings
	Chunking   ChunkingSettings
	Retrieval  RetrievalSettings
	EPUB       EPUBSettings
	Transcript TranscriptSettings
	Vector     VectorSettings
}

// DefaultAppSettings returns settings for a local Ollama setup.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
			Model:    DefaultEmbeddingModel,
			BaseURL:  DefaultOllamaURL,
		},
		LLM: LLMSettings{
			Provider: AIProviderOllama,
			Model:    DefaultLLMModel,
			BaseURL:  DefaultOllamaURL,
		},
		Chunking: ChunkingSettings{
			Size:     DefaultChunkSize,
			Overlap:  DefaultChunkOverlap,
			Encoding: DefaultEncoding,
		},
		Retrieval:  RetrievalSettings{TopK: DefaultTopK},
		EPUB:       EPUBSettings{HeadingMinLength: DefaultHeadingMinLength},
		Transcript: TranscriptSettings{Languages: []string{"en"}},
		Vector:     VectorSettings{Collection: DefaultCollection},
	}
}
