// Package chunker splits documents into overlapping token windows.
package chunker

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.Chunker = (*Processor)(nil)

// DefaultChunkSize is the default number of tokens per chunk.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultChunkOverlap is the default number of tokens shared by neighbouring chunks.
const DefaultChunkOverlap = domain.DefaultChunkOverlap

// Processor splits text into windows of chunkSize tokens starting every
// chunkSize-overlap tokens. Markdown is first split at heading lines and
// each section is windowed on its own.
type Processor struct {
	tokenizer driven.Tokenizer
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in tokens.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		p.chunkSize = size
	}
}

// WithOverlap sets the overlap between chunks in tokens.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		p.overlap = overlap
	}
}

// New creates a chunker. It fails with domain.ErrConfiguration when the
// window cannot advance (overlap >= chunk size) or is otherwise invalid.
func New(tokenizer driven.Tokenizer, opts ...Option) (*Processor, error) {
	p := &Processor{
		tokenizer: tokenizer,
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	if tokenizer == nil {
		return nil, fmt.Errorf("chunker: no tokenizer: %w", domain.ErrConfiguration)
	}
	if p.chunkSize <= 0 {
		return nil, fmt.Errorf("chunker: chunk size %d must be positive: %w", p.chunkSize, domain.ErrConfiguration)
	}
	if p.overlap < 0 || p.overlap >= p.chunkSize {
		return nil, fmt.Errorf("chunker: overlap %d must be in [0, %d): %w",
			p.overlap, p.chunkSize, domain.ErrConfiguration)
	}

	return p, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the window size in tokens.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns the number of tokens shared by neighbouring windows.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Process splits the document content, using Markdown mode for Markdown
// documents. Every chunk carries the document's source.
func (p *Processor) Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var chunks []domain.Chunk
	if doc.ContentType == domain.ContentMarkdown {
		chunks = p.SplitMarkdown(doc.Content)
	} else {
		chunks = p.Split(doc.Content)
	}

	for i := range chunks {
		chunks[i].Source = doc.Source
	}
	return chunks, nil
}

// Split windows the whole text. Blank text produces no chunks.
func (p *Processor) Split(text string) []domain.Chunk {
	return p.split(text, 0)
}

// SplitMarkdown windows each heading section separately and drops sections
// that hold only whitespace. No chunk spans two sections.
func (p *Processor) SplitMarkdown(markdown string) []domain.Chunk {
	var chunks []domain.Chunk
	for i, section := range Sections(markdown) {
		chunks = append(chunks, p.split(section, i)...)
	}
	return chunks
}

func (p *Processor) split(text string, section int) []domain.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	tokens := p.tokenizer.Encode(text)
	spans := Windows(len(tokens), p.chunkSize, p.overlap)
	chunks := make([]domain.Chunk, 0, len(spans))

	for _, s := range spans {
		chunks = append(chunks, domain.Chunk{
			Text:       p.tokenizer.Decode(tokens[s.Start:s.End]),
			TokenCount: s.End - s.Start,
			Offset:     s.Start,
			Section:    section,
		})
	}
	return chunks
}

// Span is a half-open token range.
type Span struct {
	Start int
	End   int
}

// Windows returns the token spans covering n tokens. Windows start at
// multiples of size-overlap and the window that reaches n is the last.
// The caller guarantees 0 <= overlap < size.
func Windows(n, size, overlap int) []Span {
	if n <= 0 {
		return nil
	}

	step := size - overlap
	spans := make([]Span, 0, (n+step-1)/step)
	for start := 0; start < n; start += step {
		end := min(start+size, n)
		spans = append(spans, Span{Start: start, End: end})
		if end == n {
			break
		}
	}
	return spans
}
