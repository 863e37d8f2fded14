package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
)

// Ensure IngestionStore implements the interface.
var _ driven.IngestionStore = (*IngestionStore)(nil)

// IngestionStore is an in-memory ingestion ledger.
type IngestionStore struct {
	mu      sync.RWMutex
	entries map[string]domain.Ingestion
}

// NewIngestionStore creates an empty ledger.
func NewIngestionStore() *IngestionStore {
	return &IngestionStore{
		entries: make(map[string]domain.Ingestion),
	}
}

// Save stores or replaces an entry.
func (s *IngestionStore) Save(_ context.Context, ingestion *domain.Ingestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[ingestion.ID] = *ingestion
	return nil
}

// Get returns an entry by id.
func (s *IngestionStore) Get(_ context.Context, id string) (*domain.Ingestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

// List returns entries, most recent first.
func (s *IngestionStore) List(_ context.Context, limit int) ([]domain.Ingestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Ingestion, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
