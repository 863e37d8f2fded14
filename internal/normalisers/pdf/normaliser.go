package pdf

import (
	"context"
	"fmt"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
	"github.com/custodia-labs/encephalon/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser converts PDF files to Markdown.
type Normaliser struct {
	converter driven.DocumentConverter
	workspace driven.Workspace
}

// New creates a PDF normaliser.
func New(converter driven.DocumentConverter, workspace driven.Workspace) *Normaliser {
	return &Normaliser{
		converter: converter,
		workspace: workspace,
	}
}

// Kind returns domain.KindPDF.
func (n *Normaliser) Kind() domain.DocumentKind {
	return domain.KindPDF
}

// Normalise converts the PDF, copies it into the source tree and writes
// <stem>.md to the processed tree. The source identifier is the copy.
func (n *Normaliser) Normalise(ctx context.Context, path string) (*domain.Document, error) {
	md, err := n.converter.Convert(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}

	source, err := n.workspace.PreserveSource(domain.KindPDF, path)
	if err != nil {
		return nil, fmt.Errorf("preserve %s: %w", path, err)
	}

	processed, err := n.workspace.WriteProcessed(domain.KindPDF, normalisers.Stem(path)+".md", md)
	if err != nil {
		return nil, fmt.Errorf("write markdown: %w", err)
	}

	return &domain.Document{
		Kind:          domain.KindPDF,
		Source:        source,
		Content:       md,
		ContentType:   domain.ContentMarkdown,
		ProcessedPath: processed,
	}, nil
}
