package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbeddingService returns a vector per prompt and records the prompts.
type mockEmbeddingService struct {
	mu       sync.Mutex
	prompts  []string
	vectors  map[string][]float32
	fallback []float32
	failAt   int // 1-based call number that fails; 0 never fails
	err      error
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, text)
	if m.failAt > 0 && len(m.prompts) == m.failAt {
		return nil, m.err
	}
	if v, ok := m.vectors[text]; ok {
		return v, nil
	}
	if m.fallback != nil {
		return m.fallback, nil
	}
	return []float32{1, 0, 0}, nil
}

func (m *mockEmbeddingService) ModelName() string           { return "mock-embed" }
func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error                 { return nil }

// mockVectorStore records Add calls.
type mockVectorStore struct {
	adds     []mockAdd
	addErr   error
	response *driven.VectorQueryResponse
	queryErr error
	lastN    int
}

type mockAdd struct {
	ids        []string
	embeddings [][]float32
	documents  []string
	metadatas  []map[string]string
}

func (m *mockVectorStore) Add(
	_ context.Context, ids []string, embeddings [][]float32, documents []string, metadatas []map[string]string,
) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.adds = append(m.adds, mockAdd{ids, embeddings, documents, metadatas})
	return nil
}

func (m *mockVectorStore) Query(_ context.Context, _ [][]float32, n int) (*driven.VectorQueryResponse, error) {
	m.lastN = n
	return m.response, m.queryErr
}

func (m *mockVectorStore) Count(_ context.Context) (int, error) { return len(m.adds), nil }
func (m *mockVectorStore) Close() error                         { return nil }

// mockLLMService streams fixed fragments and records the request.
type mockLLMService struct {
	fragments []string
	err       error
	prompt    string
	opts      driven.GenerateOptions
}

func (m *mockLLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	var b strings.Builder
	err := m.Stream(ctx, prompt, opts, func(f string) error {
		b.WriteString(f)
		return nil
	})
	return b.String(), err
}

func (m *mockLLMService) Stream(
	_ context.Context, prompt string, opts driven.GenerateOptions, emit func(string) error,
) error {
	m.prompt = prompt
	m.opts = opts
	for _, f := range m.fragments {
		if err := emit(f); err != nil {
			return err
		}
	}
	return m.err
}

func (m *mockLLMService) ModelName() string           { return "mock-llm" }
func (m *mockLLMService) Ping(_ context.Context) error { return nil }
func (m *mockLLMService) Close() error                 { return nil }

// mockNormaliser returns a fixed document or error.
type mockNormaliser struct {
	kind domain.DocumentKind
	doc  *domain.Document
	err  error
}

func (m *mockNormaliser) Kind() domain.DocumentKind { return m.kind }

func (m *mockNormaliser) Normalise(_ context.Context, _ string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	doc := *m.doc
	return &doc, nil
}

// wordTokenizer treats every whitespace-separated word as one token.
type wordTokenizer struct {
	ids   map[string]int
	words []string
}

func newWordTokenizer() *wordTokenizer {
	return &wordTokenizer{ids: make(map[string]int)}
}

func (w *wordTokenizer) Encode(text string) []int {
	var tokens []int
	for _, f := range strings.Fields(text) {
		id, ok := w.ids[f]
		if !ok {
			id = len(w.words)
			w.ids[f] = id
			w.words = append(w.words, f)
		}
		tokens = append(tokens, id)
	}
	return tokens
}

func (w *wordTokenizer) Decode(tokens []int) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = w.words[t]
	}
	return strings.Join(parts, " ")
}

func (w *wordTokenizer) Name() string { return "words" }

// stubPromptStore serves one template.
type stubPromptStore struct {
	template string
	err      error
}

func (s *stubPromptStore) Load(_ string) (string, error) { return s.template, s.err }
func (s *stubPromptStore) Reload()                       {}

// stubValidator records validation calls.
type stubValidator struct {
	embedding *domain.EmbeddingSettings
	llm       *domain.LLMSettings
	err       error
}

func (v *stubValidator) ValidateEmbedding(cfg *domain.EmbeddingSettings) error {
	v.embedding = cfg
	return v.err
}

func (v *stubValidator) ValidateLLM(cfg *domain.LLMSettings) error {
	v.llm = cfg
	return v.err
}

var errBoom = errors.New("boom")
