package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
)

// RecordStore writes and queries embedding records one at a time.
type RecordStore struct {
	store driven.VectorStore
	newID func() string
}

// NewRecordStore creates a record store over a vector store.
func NewRecordStore(store driven.VectorStore) *RecordStore {
	return &RecordStore{
		store: store,
		newID: uuid.NewString,
	}
}

// Store persists one record under a fresh id and returns the id.
func (r *RecordStore) Store(ctx context.Context, text string, vector []float32, source string) (string, error) {
	id := r.newID()

	err := r.store.Add(ctx,
		[]string{id},
		[][]float32{vector},
		[]string{text},
		[]map[string]string{{driven.MetadataSource: source}},
	)
	if err != nil {
		if errors.Is(err, domain.ErrStoreWrite) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", domain.ErrStoreWrite, err)
	}
	return id, nil
}

// Query returns the k records nearest to vector, most similar first.
// k <= 0 means the default of 3. An empty store yields an empty slice.
func (r *RecordStore) Query(ctx context.Context, vector []float32, k int) ([]domain.QueryResult, error) {
	if k <= 0 {
		k = domain.DefaultTopK
	}

	resp, err := r.store.Query(ctx, [][]float32{vector}, k)
	if err != nil {
		return nil, fmt.Errorf("query vector store: %w", err)
	}

	results := []domain.QueryResult{}
	if resp == nil || len(resp.Documents) == 0 {
		return results, nil
	}

	for i, text := range resp.Documents[0] {
		result := domain.QueryResult{Text: text}
		if ids := first(resp.IDs); i < len(ids) {
			result.ID = ids[i]
		}
		if metas := first(resp.Metadatas); i < len(metas) {
			result.Source = metas[i][driven.MetadataSource]
		}
		if sims := first(resp.Similarities); i < len(sims) {
			result.Similarity = sims[i]
		}
		results = append(results, result)
	}
	return results, nil
}

// Count returns the number of stored records.
func (r *RecordStore) Count(ctx context.Context) (int, error) {
	return r.store.Count(ctx)
}

// first returns the result list of the first query, if any.
func first[T any](lists [][]T) []T {
	if len(lists) == 0 {
		return nil
	}
	return lists[0]
}
