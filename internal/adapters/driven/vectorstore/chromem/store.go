// Package chromem provides the vector store on top of chromem-go.
//
// Records live in a single collection. With a directory the database is
// persisted there and every Add is written to disk before it returns;
// without one the store is in-memory.
package chromem

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/philippgille/chromem-go"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
	"github.com/custodia-labs/encephalon/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// DefaultCollection is the collection used when none is configured.
const DefaultCollection = domain.DefaultCollection

// errNoEmbedder guards the collection against embedding text itself.
// Embeddings are always supplied by the caller.
var errNoEmbedder = errors.New("chromem: collection does not embed text")

// Config holds configuration for the store.
type Config struct {
	// Path is the persistence directory. Empty means in-memory.
	Path string

	// Collection is the collection name (default: Knowledge).
	Collection string

	// Compress gzips persisted records.
	Compress bool
}

// Store is a chromem-go collection behind driven.VectorStore.
type Store struct {
	mu         sync.Mutex
	db         *chromem.DB
	collection *chromem.Collection
}

// New opens or creates the database and its collection.
func New(cfg Config) (*Store, error) {
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	var db *chromem.DB
	if cfg.Path == "" {
		db = chromem.NewDB()
	} else {
		var err error
		db, err = chromem.NewPersistentDB(cfg.Path, cfg.Compress)
		if err != nil {
			return nil, fmt.Errorf("open vector db %s: %w", cfg.Path, err)
		}
	}

	collection, err := db.GetOrCreateCollection(cfg.Collection, nil, refuseEmbedding)
	if err != nil {
		return nil, fmt.Errorf("open collection %s: %w", cfg.Collection, err)
	}

	logger.Debug("vector store: collection %q holds %d records", cfg.Collection, collection.Count())

	return &Store{db: db, collection: collection}, nil
}

func refuseEmbedding(_ context.Context, _ string) ([]float32, error) {
	return nil, errNoEmbedder
}

// Add persists records. All slices must have the same length.
func (s *Store) Add(
	ctx context.Context,
	ids []string,
	embeddings [][]float32,
	documents []string,
	metadatas []map[string]string,
) error {
	if len(embeddings) != len(ids) || len(documents) != len(ids) || len(metadatas) != len(ids) {
		return fmt.Errorf("add %d ids with %d embeddings, %d documents, %d metadatas: %w",
			len(ids), len(embeddings), len(documents), len(metadatas), domain.ErrInvalidInput)
	}
	if len(ids) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.collection.Add(ctx, ids, embeddings, metadatas, documents); err != nil {
		return fmt.Errorf("add records: %w: %w", domain.ErrStoreWrite, err)
	}
	return nil
}

// Query returns the nearest records for each query embedding, most similar
// first. The result count is capped at the number of stored records.
func (s *Store) Query(ctx context.Context, queryEmbeddings [][]float32, nResults int) (*driven.VectorQueryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := &driven.VectorQueryResponse{
		IDs:          make([][]string, len(queryEmbeddings)),
		Documents:    make([][]string, len(queryEmbeddings)),
		Metadatas:    make([][]map[string]string, len(queryEmbeddings)),
		Similarities: make([][]float32, len(queryEmbeddings)),
	}

	n := min(nResults, s.collection.Count())
	for i, query := range queryEmbeddings {
		resp.IDs[i] = []string{}
		resp.Documents[i] = []string{}
		resp.Metadatas[i] = []map[string]string{}
		resp.Similarities[i] = []float32{}
		if n <= 0 {
			continue
		}

		results, err := s.collection.QueryEmbedding(ctx, normalize(query), n, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("query records: %w", err)
		}
		for _, r := range results {
			resp.IDs[i] = append(resp.IDs[i], r.ID)
			resp.Documents[i] = append(resp.Documents[i], r.Content)
			resp.Metadatas[i] = append(resp.Metadatas[i], r.Metadata)
			resp.Similarities[i] = append(resp.Similarities[i], r.Similarity)
		}
	}

	return resp, nil
}

// normalize returns a unit-length copy of v so similarities are cosines.
func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := float32(math.Sqrt(sum))
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// Count returns the number of stored records.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection.Count(), nil
}

// Close releases resources. Persistent records are already on disk.
func (s *Store) Close() error {
	return nil
}
