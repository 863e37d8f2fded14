package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/encephalon/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the text to find related passages for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of passages to return (default 3)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput is one retrieved passage.
type SearchResultOutput struct {
	ID         string  `json:"id"`
	Source     string  `json:"source"`
	Similarity float32 `json:"similarity"`
	Text       string  `json:"text"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the knowledge base"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer string `json:"answer"`
}

// IngestionsInput is the input schema for the ingestions tool.
type IngestionsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of runs to return (default 20, most recent first)"`
}

// IngestionsOutput is the output schema for the ingestions tool.
type IngestionsOutput struct {
	Ingestions []IngestionOutput `json:"ingestions"`
	Count      int               `json:"count"`
}

// IngestionOutput is one ledger entry.
type IngestionOutput struct {
	ID            string     `json:"id"`
	Kind          string     `json:"kind"`
	Input         string     `json:"input"`
	Source        string     `json:"source,omitempty"`
	ProcessedPath string     `json:"processed_path,omitempty"`
	Status        string     `json:"status"`
	ChunksTotal   int        `json:"chunks_total"`
	ChunksWritten int        `json:"chunks_written"`
	Error         string     `json:"error,omitempty"`
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
}

const defaultIngestionsLimit = 20

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Find the stored passages most similar to a query",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using the passages retrieved from the knowledge base",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingestions",
		Description: "List recent ingestion runs and whether they completed",
	}, s.handleIngestions)
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = domain.DefaultTopK
	}

	results, err := s.ports.Search.Search(ctx, input.Query, domain.SearchOptions{Limit: limit})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i, r := range results {
		output.Results[i] = SearchResultOutput{
			ID:         r.ID,
			Source:     r.Source,
			Similarity: r.Similarity,
			Text:       r.Text,
		}
	}
	return nil, output, nil
}

// handleAsk collects the streamed answer into one result.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if s.ports.Answer == nil {
		return nil, AskOutput{}, ErrAskUnavailable
	}

	var b strings.Builder
	err := s.ports.Answer.Answer(ctx, input.Question, func(fragment string) error {
		b.WriteString(fragment)
		return nil
	})
	if err != nil {
		return nil, AskOutput{}, err
	}
	return nil, AskOutput{Answer: strings.TrimSpace(b.String())}, nil
}

func (s *Server) handleIngestions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestionsInput,
) (*mcp.CallToolResult, IngestionsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultIngestionsLimit
	}

	entries, err := s.history(ctx, limit)
	if err != nil {
		return nil, IngestionsOutput{}, err
	}
	return nil, IngestionsOutput{Ingestions: entries, Count: len(entries)}, nil
}

func (s *Server) history(ctx context.Context, limit int) ([]IngestionOutput, error) {
	if s.ports.Ingest == nil {
		return nil, ErrHistoryUnavailable
	}

	entries, err := s.ports.Ingest.History(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]IngestionOutput, len(entries))
	for i, e := range entries {
		out[i] = toIngestionOutput(e)
	}
	return out, nil
}

func toIngestionOutput(e domain.Ingestion) IngestionOutput {
	return IngestionOutput{
		ID:            e.ID,
		Kind:          e.Kind.String(),
		Input:         e.Input,
		Source:        e.Source,
		ProcessedPath: e.ProcessedPath,
		Status:        e.Status.String(),
		ChunksTotal:   e.ChunksTotal,
		ChunksWritten: e.ChunksWritten,
		Error:         e.Error,
		StartedAt:     e.StartedAt,
		FinishedAt:    e.FinishedAt,
	}
}
