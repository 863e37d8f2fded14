package driving

import (
	"context"

	"github.com/custodia-labs/encephalon/internal/core/domain"
)

// IngestReport describes a completed ingestion.
type IngestReport struct {
	// Ingestion is the ledger entry for the run.
	Ingestion domain.Ingestion

	// RecordIDs are the ids of the stored records in chunk order.
	RecordIDs []string
}

// IngestService normalises, chunks, embeds and stores documents.
type IngestService interface {
	// Ingest processes one input of the given kind. input is a URL for
	// transcripts and a file path otherwise.
	Ingest(ctx context.Context, kind domain.DocumentKind, input string) (*IngestReport, error)

	// History returns ledger entries, most recent first.
	History(ctx context.Context, limit int) ([]domain.Ingestion, error)
}
