// Package driving defines the interfaces the CLI and the MCP server use to
// drive encephalon: ingestion, retrieval, answering and settings.
//
// Implementations live in internal/core/services.
package driving
