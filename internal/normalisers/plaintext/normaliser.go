package plaintext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text and Markdown files.
type Normaliser struct {
	workspace driven.Workspace
}

// New creates a new plain text normaliser.
func New(workspace driven.Workspace) *Normaliser {
	return &Normaliser{workspace: workspace}
}

// Kind returns domain.KindText.
func (n *Normaliser) Kind() domain.DocumentKind {
	return domain.KindText
}

// Normalise copies the file into the source tree and returns its content
// unchanged. The copy is both the source identifier and the processed file.
// Files ending in .md are chunked by section.
func (n *Normaliser) Normalise(ctx context.Context, path string) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty path: %w", domain.ErrInvalidInput)
	}

	copied, err := n.workspace.PreserveSource(domain.KindText, path)
	if err != nil {
		return nil, fmt.Errorf("preserve %s: %w", path, err)
	}

	content, err := os.ReadFile(copied)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", copied, err)
	}

	return &domain.Document{
		Kind:          domain.KindText,
		Source:        copied,
		Content:       string(content),
		ContentType:   contentType(path),
		ProcessedPath: copied,
	}, nil
}

func contentType(path string) domain.ContentType {
	if strings.EqualFold(filepath.Ext(path), ".md") {
		return domain.ContentMarkdown
	}
	return domain.ContentPlain
}
