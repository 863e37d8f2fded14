// Package mcp exposes the knowledge base to MCP clients: search, ask and
// the ingestion ledger.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrAskUnavailable is reported by the ask tool when no answer engine is wired.
var ErrAskUnavailable = errors.New("mcp: ask is unavailable, check the llm settings")

// ErrHistoryUnavailable is reported when no ingestion ledger is wired.
var ErrHistoryUnavailable = errors.New("mcp: ingestion history is unavailable")
