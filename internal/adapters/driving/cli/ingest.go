package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/encephalon/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Add documents to the knowledge base",
	Long: `Normalise a document, split it into overlapping token chunks, embed each
chunk and store it. Chunks are stored one by one; if embedding or storage
fails part way, the chunks already stored stay and the run is recorded as
partial (see 'encephalon ingestions').`,
}

func init() {
	ingestCmd.AddCommand(
		newIngestKindCmd("youtube <url>...", domain.KindTranscript, "Ingest YouTube video transcripts"),
		newIngestKindCmd("pdf <file>...", domain.KindPDF, "Ingest PDF files"),
		newIngestKindCmd("epub <file>...", domain.KindEPUB, "Ingest EPUB books"),
		newIngestKindCmd("text <file>...", domain.KindText, "Ingest text or Markdown files"),
	)
	rootCmd.AddCommand(ingestCmd)
}

func newIngestKindCmd(use string, kind domain.DocumentKind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd, kind, args)
		},
	}
}

// runIngest ingests inputs in order and stops at the first failure.
func runIngest(cmd *cobra.Command, kind domain.DocumentKind, inputs []string) error {
	b, err := getBackend()
	if err != nil {
		return err
	}
	svc, err := b.Ingest(cmd.Context())
	if err != nil {
		return err
	}

	for _, input := range inputs {
		report, err := svc.Ingest(cmd.Context(), kind, input)
		if err != nil {
			var partial *domain.PartialIngestError
			if errors.As(err, &partial) {
				cmd.PrintErrln("Stored chunks were kept; see 'encephalon ingestions'.")
			}
			return fmt.Errorf("ingest %s: %w", input, err)
		}

		in := report.Ingestion
		cmd.Printf("Ingested %s\n", in.Source)
		cmd.Printf("  Chunks: %d\n", in.ChunksWritten)
		if in.ProcessedPath != "" {
			cmd.Printf("  Processed: %s\n", in.ProcessedPath)
		}
	}
	return nil
}
