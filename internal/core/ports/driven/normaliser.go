package driven

import (
	"context"

	"github.com/custodia-labs/encephalon/internal/core/domain"
)

// Normaliser converts one kind of input into a Document.
// The input is a URL for transcripts and a file path otherwise.
type Normaliser interface {
	// Kind returns the input kind this normaliser handles.
	Kind() domain.DocumentKind

	// Normalise produces the normalised content, its source identifier and
	// the path of the processed copy.
	Normalise(ctx context.Context, input string) (*domain.Document, error)
}

// DocumentConverter converts a file into Markdown or plain text.
// It only reads the input path.
type DocumentConverter interface {
	Convert(ctx context.Context, path string) (string, error)
}

// TranscriptFetcher retrieves the plain-text transcript of a video.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// Workspace is the per-kind cache tree that keeps original sources apart
// from processed text.
type Workspace interface {
	// PreserveSource copies the file at path into the source tree for kind
	// and returns the copy's path.
	PreserveSource(kind domain.DocumentKind, path string) (string, error)

	// WriteSourceNote writes body as a file in the source tree for kind.
	WriteSourceNote(kind domain.DocumentKind, name, body string) (string, error)

	// WriteProcessed writes body as a file in the processed tree for kind.
	WriteProcessed(kind domain.DocumentKind, name, body string) (string, error)
}
