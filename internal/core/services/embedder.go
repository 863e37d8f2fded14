package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
)

// Task prefixes for asymmetric embedding models such as nomic-embed-text.
// The document prefix has no trailing space; stored vectors depend on it.
const (
	DocumentPrefix = "search document:"
	QueryPrefix    = "search query: "
)

// Embedder adds the task prefix before calling the embedding service.
type Embedder struct {
	service driven.EmbeddingService
}

// NewEmbedder creates an embedder. A nil service makes every call fail
// with domain.ErrEmbeddingUnavailable.
func NewEmbedder(service driven.EmbeddingService) *Embedder {
	return &Embedder{service: service}
}

// EmbedDocument embeds text that will be stored.
func (e *Embedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, DocumentPrefix+text)
}

// EmbedQuery embeds a question.
func (e *Embedder) EmbedQuery(ctx context.Context, question string) ([]float32, error) {
	return e.embed(ctx, QueryPrefix+question)
}

func (e *Embedder) embed(ctx context.Context, prompt string) ([]float32, error) {
	if e.service == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	vec, err := e.service.Embed(ctx, prompt)
	if err != nil {
		if errors.Is(err, domain.ErrEmbeddingUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("%s returned an empty vector: %w", e.service.ModelName(), domain.ErrEmbeddingUnavailable)
	}
	return vec, nil
}
