package cli

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driving"
)

func report(source, processed string, written int) *driving.IngestReport {
	return &driving.IngestReport{Ingestion: domain.Ingestion{
		Source:        source,
		ProcessedPath: processed,
		ChunksTotal:   written,
		ChunksWritten: written,
		Status:        domain.IngestionComplete,
	}}
}

func TestIngestCmd_KindsMapToSubcommands(t *testing.T) {
	tests := []struct {
		sub  string
		kind domain.DocumentKind
	}{
		{"youtube", domain.KindTranscript},
		{"pdf", domain.KindPDF},
		{"epub", domain.KindEPUB},
		{"text", domain.KindText},
	}

	for _, tt := range tests {
		t.Run(tt.sub, func(t *testing.T) {
			ingest := &fakeIngest{reports: map[string]*driving.IngestReport{"in": report("src", "", 1)}}
			useBackend(t, &fakeBackend{ingest: ingest})

			_, _, err := execute(t, "", "ingest", tt.sub, "in")

			require.NoError(t, err)
			assert.Equal(t, []string{tt.kind.String() + ":in"}, ingest.calls)
		})
	}
}

func TestIngestCmd_PrintsSummary(t *testing.T) {
	ingest := &fakeIngest{reports: map[string]*driving.IngestReport{
		"book.epub": report("/cache/source/epub/book.epub", "/cache/proc/epub/book.md", 12),
	}}
	useBackend(t, &fakeBackend{ingest: ingest})

	out, _, err := execute(t, "", "ingest", "epub", "book.epub")

	require.NoError(t, err)
	assert.Contains(t, out, "Ingested /cache/source/epub/book.epub")
	assert.Contains(t, out, "Chunks: 12")
	assert.Contains(t, out, "Processed: /cache/proc/epub/book.md")
}

func TestIngestCmd_RequiresInput(t *testing.T) {
	useBackend(t, &fakeBackend{ingest: &fakeIngest{}})

	_, _, err := execute(t, "", "ingest", "pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestIngestCmd_StopsAtFirstFailure(t *testing.T) {
	partial := &domain.PartialIngestError{Source: "b.txt", Written: 1, Total: 3, Err: domain.ErrEmbeddingUnavailable}
	ingest := &fakeIngest{
		reports: map[string]*driving.IngestReport{"a.txt": report("a.txt", "", 2)},
		errs:    map[string]error{"b.txt": partial},
	}
	useBackend(t, &fakeBackend{ingest: ingest})

	out, errOut, err := execute(t, "", "ingest", "text", "a.txt", "b.txt", "c.txt")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.Contains(t, out, "Ingested a.txt")
	assert.Contains(t, errOut, "encephalon ingestions")
	assert.Equal(t, []string{"text:a.txt", "text:b.txt"}, ingest.calls)
}

func TestIngestCmd_PlainFailure(t *testing.T) {
	ingest := &fakeIngest{errs: map[string]error{
		"https://example.com/x": fmt.Errorf("video id: %w", domain.ErrUnrecognizedURL),
	}}
	useBackend(t, &fakeBackend{ingest: ingest})

	_, errOut, err := execute(t, "", "ingest", "youtube", "https://example.com/x")

	assert.ErrorIs(t, err, domain.ErrUnrecognizedURL)
	assert.NotContains(t, errOut, "encephalon ingestions")
}
