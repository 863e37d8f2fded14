package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driving"
	"github.com/custodia-labs/encephalon/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService embeds questions and returns the nearest stored chunks.
type SearchService struct {
	embedder *Embedder
	records  *RecordStore
}

// NewSearchService creates a search service.
func NewSearchService(embedder *Embedder, records *RecordStore) *SearchService {
	return &SearchService{
		embedder: embedder,
		records:  records,
	}
}

// Search returns up to opts.Limit chunks nearest to query. The query is
// embedded as given; a blank query matches nothing.
func (s *SearchService) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.QueryResult, error) {
	logger.Section("Retrieval")
	logger.Debug("query: %q", query)

	if strings.TrimSpace(query) == "" {
		return []domain.QueryResult{}, nil
	}

	vec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := s.records.Query(ctx, vec, opts.Limit)
	if err != nil {
		return nil, err
	}

	for i, r := range results {
		logger.Debug("hit %d: %.3f %s", i+1, r.Similarity, r.Source)
	}
	return results, nil
}
