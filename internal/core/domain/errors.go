package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent pipeline failures.
// Adapters wrap their transport errors with the matching sentinel.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown document kind or provider.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrConfiguration indicates an invalid configuration value,
	// such as a chunk overlap that is not smaller than the chunk size.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnrecognizedURL indicates a video URL matched none of the known shapes.
	ErrUnrecognizedURL = errors.New("unrecognized video URL")

	// ErrTranscriptUnavailable indicates the video has no usable caption track.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")

	// ErrConversion indicates a document could not be converted to text.
	ErrConversion = errors.New("document conversion failed")

	// ErrEmbeddingUnavailable indicates the embedding service failed or is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrStoreWrite indicates the vector store rejected a record.
	ErrStoreWrite = errors.New("vector store write failed")

	// ErrLLMUnavailable indicates the language model failed or is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)

// PartialIngestError reports an ingestion that stopped after some chunks
// had already been stored. Stored records are not rolled back.
type PartialIngestError struct {
	Source  string
	Written int
	Total   int
	Err     error
}

func (e *PartialIngestError) Error() string {
	return fmt.Sprintf("ingest %s: stored %d of %d chunks: %v", e.Source, e.Written, e.Total, e.Err)
}

// Unwrap returns the underlying cause.
func (e *PartialIngestError) Unwrap() error {
	return e.Err
}
