// Package domain defines the core entities of encephalon.
//
// This package is the innermost layer of the hexagon. It has NO external
// dependencies and defines the fundamental types:
//
//   - Document: a normalised unit of ingested content
//   - Chunk: a token-bounded slice of a document, the unit of retrieval
//   - Record: the persisted (id, vector, text, source) tuple
//   - QueryResult: a ranked retrieval hit
//   - Ingestion: a ledger entry describing one ingestion run
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
