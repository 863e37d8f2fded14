package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/encephalon/internal/core/domain"
)

func TestSearchService_Search(t *testing.T) {
	ctx := context.Background()
	records := NewRecordStore(newMemoryVectorStore(t))
	_, err := records.Store(ctx, "go channels", []float32{1, 0}, "a")
	require.NoError(t, err)
	_, err = records.Store(ctx, "rust traits", []float32{0, 1}, "b")
	require.NoError(t, err)

	embedding := &mockEmbeddingService{vectors: map[string][]float32{
		"search query: channels": {0.9, 0.1},
	}}
	svc := NewSearchService(NewEmbedder(embedding), records)

	results, err := svc.Search(ctx, "channels", domain.SearchOptions{Limit: 1})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "go channels", results[0].Text)
	assert.Equal(t, []string{"search query: channels"}, embedding.prompts)
}

func TestSearchService_QueryEmbeddedVerbatim(t *testing.T) {
	embedding := &mockEmbeddingService{}
	svc := NewSearchService(NewEmbedder(embedding), NewRecordStore(newMemoryVectorStore(t)))

	_, err := svc.Search(context.Background(), " what is\tit? \n", domain.DefaultSearchOptions())

	require.NoError(t, err)
	assert.Equal(t, []string{"search query:  what is\tit? \n"}, embedding.prompts)
}

func TestSearchService_EmptyQuery(t *testing.T) {
	embedding := &mockEmbeddingService{}
	svc := NewSearchService(NewEmbedder(embedding), NewRecordStore(&mockVectorStore{}))

	results, err := svc.Search(context.Background(), "   ", domain.DefaultSearchOptions())

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, embedding.prompts)
}

func TestSearchService_EmbeddingFailure(t *testing.T) {
	svc := NewSearchService(NewEmbedder(&mockEmbeddingService{failAt: 1, err: errBoom}), NewRecordStore(&mockVectorStore{}))

	_, err := svc.Search(context.Background(), "q", domain.DefaultSearchOptions())

	assert.True(t, errors.Is(err, domain.ErrEmbeddingUnavailable))
}
