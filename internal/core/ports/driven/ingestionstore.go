package driven

import (
	"context"

	"github.com/custodia-labs/encephalon/internal/core/domain"
)

// IngestionStore persists the ingestion ledger.
type IngestionStore interface {
	// Save inserts or replaces an entry.
	Save(ctx context.Context, ingestion *domain.Ingestion) error

	// Get returns an entry by id, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Ingestion, error)

	// List returns entries, most recent first. limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]domain.Ingestion, error)
}
