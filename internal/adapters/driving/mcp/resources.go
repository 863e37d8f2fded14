package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/encephalon/internal/core/domain"
)

const uriScheme = "encephalon://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "ingestions",
		Name:        "ingestions",
		Description: "Ingestion ledger, most recent first",
		MIMEType:    "application/json",
	}, s.handleIngestionsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "ingestions/{status}",
		Name:        "ingestions-by-status",
		Description: "Ingestion runs with one status: running, complete, partial or failed",
		MIMEType:    "application/json",
	}, s.handleIngestionsResource)
}

// handleIngestionsResource serves the whole ledger, or the runs with the
// status named in the URI.
func (s *Server) handleIngestionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	status, ok := extractStatus(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if s.ports.Ingest == nil {
		return jsonResource(req.Params.URI, []IngestionOutput{})
	}

	entries, err := s.history(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("listing ingestions: %w", err)
	}
	if status != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if e.Status == status.String() {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	return jsonResource(req.Params.URI, entries)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractStatus parses encephalon://ingestions[/{status}]. An empty
// status means all runs.
func extractStatus(uri string) (domain.IngestionStatus, bool) {
	const prefix = uriScheme + "ingestions"

	rest, ok := strings.CutPrefix(uri, prefix)
	if !ok {
		return "", false
	}
	if rest == "" {
		return "", true
	}

	status := domain.IngestionStatus(strings.TrimPrefix(rest, "/"))
	if !strings.HasPrefix(rest, "/") || !status.IsValid() {
		return "", false
	}
	return status, true
}
