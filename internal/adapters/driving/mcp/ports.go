package mcp

import (
	"github.com/custodia-labs/encephalon/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Search is required.
	Search driving.SearchService

	// Answer backs the ask tool. Optional.
	Answer driving.AnswerService

	// Ingest backs the ingestions tool and resources. Optional.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
