package postprocessors

import (
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
	"github.com/custodia-labs/encephalon/internal/postprocessors/chunker"
)

// DefaultChunker is the name of the token window chunker.
const DefaultChunker = "chunker"

// RegisterDefaults registers the built-in chunkers.
func RegisterDefaults(r *Registry) {
	r.Register(DefaultChunker, buildChunker)
}

// buildChunker creates the token chunker. Supported keys:
//   - chunk_size (int): tokens per chunk (default 256)
//   - overlap (int): tokens shared by neighbouring chunks (default 32)
//
// Absent keys keep the defaults; invalid combinations fail.
func buildChunker(cfg map[string]any, tokenizer driven.Tokenizer) (driven.Chunker, error) {
	var opts []chunker.Option

	if size, ok := intFromConfig(cfg, "chunk_size"); ok {
		opts = append(opts, chunker.WithChunkSize(size))
	}
	if overlap, ok := intFromConfig(cfg, "overlap"); ok {
		opts = append(opts, chunker.WithOverlap(overlap))
	}

	return chunker.New(tokenizer, opts...)
}

// intFromConfig extracts an int that may have been decoded as int, int64
// or float64.
func intFromConfig(cfg map[string]any, key string) (int, bool) {
	val, ok := cfg[key]
	if !ok {
		return 0, false
	}

	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
