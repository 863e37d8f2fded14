package transcript

import (
	"context"
	"fmt"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
	"github.com/custodia-labs/encephalon/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser turns a video link into its transcript.
type Normaliser struct {
	fetcher   driven.TranscriptFetcher
	workspace driven.Workspace
}

// New creates a transcript normaliser.
func New(fetcher driven.TranscriptFetcher, workspace driven.Workspace) *Normaliser {
	return &Normaliser{
		fetcher:   fetcher,
		workspace: workspace,
	}
}

// Kind returns domain.KindTranscript.
func (n *Normaliser) Kind() domain.DocumentKind {
	return domain.KindTranscript
}

// Normalise fetches the transcript for link. The link is recorded in the
// source tree and the transcript written as <id>_trans.txt. Unrecognised
// links fail before anything is written.
func (n *Normaliser) Normalise(ctx context.Context, link string) (*domain.Document, error) {
	id, ok := VideoID(link)
	if !ok {
		return nil, fmt.Errorf("%q: %w", link, domain.ErrUnrecognizedURL)
	}
	logger.Debug("transcript: video id %s", id)

	text, err := n.fetcher.Fetch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript %s: %w", id, err)
	}

	if _, err := n.workspace.WriteSourceNote(domain.KindTranscript, id+".txt", link); err != nil {
		return nil, fmt.Errorf("write source note: %w", err)
	}
	processed, err := n.workspace.WriteProcessed(domain.KindTranscript, id+"_trans.txt", text)
	if err != nil {
		return nil, fmt.Errorf("write transcript: %w", err)
	}

	return &domain.Document{
		Kind:          domain.KindTranscript,
		Source:        link,
		Content:       text,
		ContentType:   domain.ContentPlain,
		ProcessedPath: processed,
	}, nil
}
