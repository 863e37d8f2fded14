package driven

import (
	"context"

	"github.com/custodia-labs/encephalon/internal/core/domain"
)

// Chunker splits a document into retrieval chunks.
type Chunker interface {
	// Name returns the chunker identifier.
	Name() string

	// Process splits the document, choosing plain or Markdown mode from
	// its content type. Every chunk carries the document's source.
	Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error)
}
