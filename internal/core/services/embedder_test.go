package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/encephalon/internal/core/domain"
)

func TestEmbedder_Prefixes(t *testing.T) {
	svc := &mockEmbeddingService{}
	e := NewEmbedder(svc)

	_, err := e.EmbedDocument(context.Background(), "chunk text")
	require.NoError(t, err)
	_, err = e.EmbedQuery(context.Background(), "what is it?")
	require.NoError(t, err)

	assert.Equal(t, []string{"search document:chunk text", "search query: what is it?"}, svc.prompts)
}

func TestEmbedder_NoService(t *testing.T) {
	_, err := NewEmbedder(nil).EmbedQuery(context.Background(), "q")

	assert.True(t, errors.Is(err, domain.ErrEmbeddingUnavailable))
}

func TestEmbedder_ServiceErrorWrapped(t *testing.T) {
	e := NewEmbedder(&mockEmbeddingService{failAt: 1, err: errBoom})

	_, err := e.EmbedDocument(context.Background(), "x")

	assert.True(t, errors.Is(err, domain.ErrEmbeddingUnavailable))
	assert.True(t, errors.Is(err, errBoom))
}

func TestEmbedder_EmptyVector(t *testing.T) {
	svc := &mockEmbeddingService{vectors: map[string][]float32{"search query: q": {}}}

	_, err := NewEmbedder(svc).EmbedQuery(context.Background(), "q")

	assert.True(t, errors.Is(err, domain.ErrEmbeddingUnavailable))
}
