package driven

import "context"

// MetadataSource is the metadata key holding a record's source identifier.
const MetadataSource = "source"

// VectorStore persists embedding records and answers nearest-neighbour queries.
// Both calls are batch-shaped; the pipeline uses batches of one.
type VectorStore interface {
	// Add persists records. All slices must have the same length.
	Add(ctx context.Context, ids []string, embeddings [][]float32, documents []string, metadatas []map[string]string) error

	// Query returns up to nResults nearest records per query embedding,
	// most similar first. Asking for more records than are stored returns
	// every record; an empty store returns empty result lists.
	Query(ctx context.Context, queryEmbeddings [][]float32, nResults int) (*VectorQueryResponse, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}

// VectorQueryResponse holds one result list per query embedding.
type VectorQueryResponse struct {
	IDs          [][]string
	Documents    [][]string
	Metadatas    [][]map[string]string
	Similarities [][]float32
}
