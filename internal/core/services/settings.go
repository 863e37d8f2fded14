package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
	"github.com/custodia-labs/encephalon/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyDataHome         = "data_home"
	keyEmbedProvider    = "embedding.provider"
	keyEmbedModel       = "embedding.model"
	keyEmbedBaseURL     = "embedding.base_url"
	keyEmbedAPIKey      = "embedding.api_key"
	keyLLMProvider      = "llm.provider"
	keyLLMModel         = "llm.model"
	keyLLMBaseURL       = "llm.base_url"
	keyLLMAPIKey        = "llm.api_key"
	keyChunkSize        = "chunking.size"
	keyChunkOverlap     = "chunking.overlap"
	keyChunkEncoding    = "chunking.encoding"
	keyTopK             = "retrieval.top_k"
	keyHeadingMinLength = "epub.heading_min_length"
	keyLanguages        = "transcript.languages"
	keyCollection       = "vector.collection"
)

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindProvider
	kindList
)

var settingKeys = map[string]keyKind{
	keyDataHome:         kindString,
	keyEmbedProvider:    kindProvider,
	keyEmbedModel:       kindString,
	keyEmbedBaseURL:     kindString,
	keyEmbedAPIKey:      kindString,
	keyLLMProvider:      kindProvider,
	keyLLMModel:         kindString,
	keyLLMBaseURL:       kindString,
	keyLLMAPIKey:        kindString,
	keyChunkSize:        kindInt,
	keyChunkOverlap:     kindInt,
	keyChunkEncoding:    kindString,
	keyTopK:             kindInt,
	keyHeadingMinLength: kindInt,
	keyLanguages:        kindList,
	keyCollection:       kindString,
}

// SettingsService resolves settings from defaults, the config file and,
// when set, an override hook such as environment variables.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	overrides   func(*domain.AppSettings) error
}

// NewSettingsService creates a new settings service. aiValidator may be nil.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// SetOverrides installs a hook applied after the config file is read.
func (s *SettingsService) SetOverrides(fn func(*domain.AppSettings) error) {
	s.overrides = fn
}

// Get returns the effective settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	d := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		DataHome: s.getString(keyDataHome, d.DataHome),
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(keyEmbedProvider, d.Embedding.Provider),
			Model:    s.getString(keyEmbedModel, d.Embedding.Model),
			BaseURL:  s.getString(keyEmbedBaseURL, d.Embedding.BaseURL),
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
		},
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, d.LLM.Provider),
			Model:    s.getString(keyLLMModel, d.LLM.Model),
			BaseURL:  s.getString(keyLLMBaseURL, d.LLM.BaseURL),
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		Chunking: domain.ChunkingSettings{
			Size:     s.getInt(keyChunkSize, d.Chunking.Size),
			Overlap:  s.getInt(keyChunkOverlap, d.Chunking.Overlap),
			Encoding: s.getString(keyChunkEncoding, d.Chunking.Encoding),
		},
		Retrieval: domain.RetrievalSettings{
			TopK: s.getInt(keyTopK, d.Retrieval.TopK),
		},
		EPUB: domain.EPUBSettings{
			HeadingMinLength: s.getInt(keyHeadingMinLength, d.EPUB.HeadingMinLength),
		},
		Transcript: domain.TranscriptSettings{
			Languages: s.getStringSlice(keyLanguages, d.Transcript.Languages),
		},
		Vector: domain.VectorSettings{
			Collection: s.getString(keyCollection, d.Vector.Collection),
		},
	}

	if s.overrides != nil {
		if err := s.overrides(settings); err != nil {
			return nil, fmt.Errorf("apply overrides: %w", err)
		}
	}

	if err := settings.Chunking.Validate(); err != nil {
		return nil, fmt.Errorf("chunking size %d overlap %d: %w",
			settings.Chunking.Size, settings.Chunking.Overlap, err)
	}

	return settings, nil
}

// Set parses value for key and stores it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	var parsed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("setting %s wants an integer: %w", key, domain.ErrInvalidInput)
		}
		parsed = n
	case kindProvider:
		p := domain.AIProvider(strings.TrimSpace(value))
		if !p.IsValid() {
			return fmt.Errorf("unknown provider %q: %w", value, domain.ErrInvalidInput)
		}
		parsed = p.String()
	case kindList:
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		parsed = items
	default:
		parsed = value
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists the settable keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidateEmbeddingConfig pings the configured embedding provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ValidateLLMConfig pings the configured LLM provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	if v := s.configStore.GetStringSlice(key); len(v) > 0 {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	p := domain.AIProvider(s.configStore.GetString(key))
	if p.IsValid() {
		return p
	}
	return defaultVal
}
