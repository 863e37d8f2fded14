package domain

// ContentType describes how a document's content is structured.
type ContentType string

// Supported content types.
const (
	// ContentPlain is unstructured text; chunked with a plain sliding window.
	ContentPlain ContentType = "plain"

	// ContentMarkdown carries heading markers; chunked per section.
	ContentMarkdown ContentType = "markdown"
)

// IsValid returns true if the content type is recognised.
func (c ContentType) IsValid() bool {
	return c == ContentPlain || c == ContentMarkdown
}

// String returns the string representation.
func (c ContentType) String() string {
	return string(c)
}

// Document is a normalised unit of ingested content.
// It is produced by a normaliser and is never persisted itself:
// only the records derived from its chunks are stored.
type Document struct {
	// Kind is the input kind the document was produced from.
	Kind DocumentKind

	// Source identifies where the content came from (URL or file path).
	// Every record derived from the document carries it as metadata.
	Source string

	// Content is the full normalised text or Markdown.
	Content string

	// ContentType selects the chunking mode.
	ContentType ContentType

	// ProcessedPath is where the normaliser wrote the processed copy.
	ProcessedPath string
}

// Chunk is a contiguous token-bounded slice of a document.
type Chunk struct {
	// Text is the decoded token span.
	Text string

	// TokenCount is the number of tokens in the span.
	TokenCount int

	// Offset is the token offset of the span within its section.
	Offset int

	// Section is the index of the Markdown section the chunk came from.
	// Always 0 for plain text.
	Section int

	// Source is the owning document's source identifier.
	Source string
}

// Record is the persisted unit of the vector store.
type Record struct {
	// ID is generated at write time and never reused.
	ID string

	// Vector is the embedding of Text.
	Vector []float32

	// Text is the chunk text, stored verbatim.
	Text string

	// Source is the source identifier of the originating document.
	Source string
}

// QueryResult is a single retrieval hit.
type QueryResult struct {
	// ID is the record identifier.
	ID string

	// Text is the stored chunk text.
	Text string

	// Source is the stored source identifier.
	Source string

	// Similarity is the cosine similarity to the query vector.
	Similarity float32
}
