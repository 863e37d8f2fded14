package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/encephalon/internal/adapters/driven/vectorstore/chromem"
	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
)

func newMemoryVectorStore(t *testing.T) *chromem.Store {
	t.Helper()
	store, err := chromem.New(chromem.Config{})
	require.NoError(t, err)
	return store
}

func TestRecordStore_StoreOneRecordPerCall(t *testing.T) {
	vs := &mockVectorStore{}
	rs := NewRecordStore(vs)

	id1, err := rs.Store(context.Background(), "first", []float32{1, 2}, "https://youtu.be/abc")
	require.NoError(t, err)
	id2, err := rs.Store(context.Background(), "second", []float32{3, 4}, "https://youtu.be/abc")
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	_, err = uuid.Parse(id1)
	assert.NoError(t, err)

	require.Len(t, vs.adds, 2)
	for _, add := range vs.adds {
		assert.Len(t, add.ids, 1)
		assert.Len(t, add.embeddings, 1)
		assert.Len(t, add.documents, 1)
		assert.Equal(t, "https://youtu.be/abc", add.metadatas[0][driven.MetadataSource])
	}
	assert.Equal(t, []string{id1}, vs.adds[0].ids)
	assert.Equal(t, "first", vs.adds[0].documents[0])
}

func TestRecordStore_StoreFailure(t *testing.T) {
	rs := NewRecordStore(&mockVectorStore{addErr: errBoom})

	_, err := rs.Store(context.Background(), "x", []float32{1}, "s")

	assert.True(t, errors.Is(err, domain.ErrStoreWrite))
	assert.True(t, errors.Is(err, errBoom))
}

func TestRecordStore_QueryRanking(t *testing.T) {
	rs := NewRecordStore(newMemoryVectorStore(t))
	ctx := context.Background()

	_, err := rs.Store(ctx, "far", []float32{0, 0, 1}, "c")
	require.NoError(t, err)
	_, err = rs.Store(ctx, "nearest", []float32{1, 0, 0}, "a")
	require.NoError(t, err)
	_, err = rs.Store(ctx, "close", []float32{0.6, 0.8, 0}, "b")
	require.NoError(t, err)

	results, err := rs.Query(ctx, []float32{1, 0.1, 0}, 2)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "nearest", results[0].Text)
	assert.Equal(t, "a", results[0].Source)
	assert.Equal(t, "close", results[1].Text)
	assert.Equal(t, "b", results[1].Source)
	assert.Greater(t, results[0].Similarity, results[1].Similarity)
}

func TestRecordStore_QueryFewerThanK(t *testing.T) {
	rs := NewRecordStore(newMemoryVectorStore(t))
	_, err := rs.Store(context.Background(), "only", []float32{1, 0}, "s")
	require.NoError(t, err)

	results, err := rs.Query(context.Background(), []float32{1, 0}, 3)

	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestRecordStore_QueryEmptyStore(t *testing.T) {
	rs := NewRecordStore(newMemoryVectorStore(t))

	results, err := rs.Query(context.Background(), []float32{1, 0}, 3)

	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestRecordStore_QueryDefaultK(t *testing.T) {
	vs := &mockVectorStore{response: &driven.VectorQueryResponse{}}

	results, err := NewRecordStore(vs).Query(context.Background(), []float32{1}, 0)

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 3, vs.lastN)
}

func TestRecordStore_QueryError(t *testing.T) {
	_, err := NewRecordStore(&mockVectorStore{queryErr: errBoom}).Query(context.Background(), []float32{1}, 3)

	assert.True(t, errors.Is(err, errBoom))
}
