package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
	"github.com/custodia-labs/encephalon/internal/core/ports/driving"
	"github.com/custodia-labs/encephalon/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs normalise, chunk, embed and store for one input.
// Chunks are embedded and stored strictly in order; a failure leaves the
// chunks stored so far in place.
type IngestService struct {
	normalisers map[domain.DocumentKind]driven.Normaliser
	chunker     driven.Chunker
	embedder    *Embedder
	records     *RecordStore
	ledger      driven.IngestionStore
	now         func() time.Time
}

// NewIngestService creates an ingest service. ledger may be nil.
func NewIngestService(
	chunker driven.Chunker,
	embedder *Embedder,
	records *RecordStore,
	ledger driven.IngestionStore,
	normalisers ...driven.Normaliser,
) *IngestService {
	byKind := make(map[domain.DocumentKind]driven.Normaliser, len(normalisers))
	for _, n := range normalisers {
		byKind[n.Kind()] = n
	}

	return &IngestService{
		normalisers: byKind,
		chunker:     chunker,
		embedder:    embedder,
		records:     records,
		ledger:      ledger,
		now:         time.Now,
	}
}

// Ingest processes one input of the given kind.
func (s *IngestService) Ingest(ctx context.Context, kind domain.DocumentKind, input string) (*driving.IngestReport, error) {
	normaliser, ok := s.normalisers[kind]
	if !ok {
		return nil, fmt.Errorf("ingest %s: %w", kind, domain.ErrUnsupportedType)
	}

	logger.Section("Ingest " + kind.String())

	entry := &domain.Ingestion{
		ID:        uuid.NewString(),
		Kind:      kind,
		Input:     input,
		Status:    domain.IngestionRunning,
		StartedAt: s.now(),
	}
	s.record(ctx, entry)

	doc, err := normaliser.Normalise(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, entry, nil, fmt.Errorf("normalise %s: %w", input, err))
	}
	entry.Source = doc.Source
	entry.ProcessedPath = doc.ProcessedPath
	logger.Debug("normalised %s to %s (%s, %d bytes)", input, doc.ProcessedPath, doc.ContentType, len(doc.Content))

	chunks, err := s.chunker.Process(ctx, doc)
	if err != nil {
		return nil, s.fail(ctx, entry, nil, fmt.Errorf("chunk %s: %w", doc.Source, err))
	}
	entry.ChunksTotal = len(chunks)
	s.record(ctx, entry)
	logger.Info("adding %d chunks from %s", len(chunks), doc.Source)

	ids := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		logger.Debug("chunk %d/%d: %d tokens", i+1, len(chunks), chunk.TokenCount)

		vec, err := s.embedder.EmbedDocument(ctx, chunk.Text)
		if err != nil {
			return nil, s.fail(ctx, entry, ids, fmt.Errorf("embed chunk %d: %w", i, err))
		}

		id, err := s.records.Store(ctx, chunk.Text, vec, chunk.Source)
		if err != nil {
			return nil, s.fail(ctx, entry, ids, fmt.Errorf("store chunk %d: %w", i, err))
		}
		ids = append(ids, id)
	}

	entry.Finish(len(ids), nil, s.now())
	s.record(ctx, entry)
	logger.Info("ingested %s: %d records", doc.Source, len(ids))

	return &driving.IngestReport{Ingestion: *entry, RecordIDs: ids}, nil
}

// History returns ledger entries, most recent first.
func (s *IngestService) History(ctx context.Context, limit int) ([]domain.Ingestion, error) {
	if s.ledger == nil {
		return []domain.Ingestion{}, nil
	}
	entries, err := s.ledger.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list ingestions: %w", err)
	}
	return entries, nil
}

// fail records the outcome and reports a partial ingestion when some
// records were already stored.
func (s *IngestService) fail(ctx context.Context, entry *domain.Ingestion, ids []string, err error) error {
	entry.Finish(len(ids), err, s.now())
	s.record(ctx, entry)

	if len(ids) > 0 {
		return &domain.PartialIngestError{
			Source:  entry.Source,
			Written: len(ids),
			Total:   entry.ChunksTotal,
			Err:     err,
		}
	}
	return fmt.Errorf("ingest %s: %w", entry.Kind, err)
}

// record saves the ledger entry. Ledger failures never stop ingestion.
func (s *IngestService) record(ctx context.Context, entry *domain.Ingestion) {
	if s.ledger == nil {
		return
	}
	if err := s.ledger.Save(context.WithoutCancel(ctx), entry); err != nil {
		logger.Warn("ingestion ledger: %v", err)
	}
}
