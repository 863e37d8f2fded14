package epub

import (
	"archive/zip"
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
	"github.com/custodia-labs/encephalon/internal/logger"
	"github.com/custodia-labs/encephalon/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser converts EPUB books to Markdown.
type Normaliser struct {
	workspace        driven.Workspace
	headingMinLength int
}

// New creates an EPUB normaliser. headingMinLength <= 0 means
// domain.DefaultHeadingMinLength.
func New(workspace driven.Workspace, headingMinLength int) *Normaliser {
	if headingMinLength <= 0 {
		headingMinLength = domain.DefaultHeadingMinLength
	}
	return &Normaliser{
		workspace:        workspace,
		headingMinLength: headingMinLength,
	}
}

// Kind returns domain.KindEPUB.
func (n *Normaliser) Kind() domain.DocumentKind {
	return domain.KindEPUB
}

// Normalise extracts the book's text, copies the book into the source tree
// and writes <stem>.md to the processed tree.
func (n *Normaliser) Normalise(ctx context.Context, path string) (*domain.Document, error) {
	md, err := n.Convert(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}

	source, err := n.workspace.PreserveSource(domain.KindEPUB, path)
	if err != nil {
		return nil, fmt.Errorf("preserve %s: %w", path, err)
	}

	processed, err := n.workspace.WriteProcessed(domain.KindEPUB, normalisers.Stem(path)+".md", md)
	if err != nil {
		return nil, fmt.Errorf("write markdown: %w", err)
	}

	return &domain.Document{
		Kind:          domain.KindEPUB,
		Source:        source,
		Content:       md,
		ContentType:   domain.ContentMarkdown,
		ProcessedPath: processed,
	}, nil
}

// Convert reads every content document of the book at path and returns the
// cleaned text.
func (n *Normaliser) Convert(ctx context.Context, path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w: %w", path, domain.ErrConversion, err)
	}
	defer zr.Close()

	docs, err := contentDocuments(&zr.Reader)
	if err != nil {
		return "", err
	}
	logger.Debug("epub: %s has %d content documents", path, len(docs))

	var b strings.Builder
	for _, name := range docs {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		rc, err := openEntry(&zr.Reader, name)
		if err != nil {
			return "", err
		}
		text, err := ExtractText(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("parse %s: %w: %w", name, domain.ErrConversion, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	md := Clean(b.String(), n.headingMinLength)
	if md == "" {
		return "", fmt.Errorf("%s has no text: %w", path, domain.ErrConversion)
	}
	return md, nil
}
