package mcp

import (
	"context"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.QueryResult
	err     error
	query   string
	opts    domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.QueryResult, error) {
	m.query = query
	m.opts = opts
	return m.results, m.err
}

// mockAnswerService emits fragments in order.
type mockAnswerService struct {
	fragments []string
	err       error
	question  string
}

func (m *mockAnswerService) Answer(_ context.Context, question string, emit func(string) error) error {
	m.question = question
	for _, f := range m.fragments {
		if err := emit(f); err != nil {
			return err
		}
	}
	return m.err
}

// mockIngestService serves a fixed ledger.
type mockIngestService struct {
	entries []domain.Ingestion
	err     error
	limit   int
}

func (m *mockIngestService) Ingest(_ context.Context, _ domain.DocumentKind, _ string) (*driving.IngestReport, error) {
	return nil, m.err
}

func (m *mockIngestService) History(_ context.Context, limit int) ([]domain.Ingestion, error) {
	m.limit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.entries, nil
}
