package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var ingestionsLimit int

var ingestionsCmd = &cobra.Command{
	Use:   "ingestions",
	Short: "List past ingestion runs",
	Long: `Shows the ingestion ledger, most recent first. A run left 'running' was
interrupted; a 'partial' run stored only some of its chunks.`,
	Args: cobra.NoArgs,
	RunE: runIngestions,
}

func init() {
	ingestionsCmd.Flags().IntVarP(&ingestionsLimit, "limit", "n", 20, "number of runs to show (0 = all)")
	rootCmd.AddCommand(ingestionsCmd)
}

func runIngestions(cmd *cobra.Command, _ []string) error {
	b, err := getBackend()
	if err != nil {
		return err
	}
	svc, err := b.Ingest(cmd.Context())
	if err != nil {
		return err
	}

	entries, err := svc.History(cmd.Context(), ingestionsLimit)
	if err != nil {
		return fmt.Errorf("list ingestions: %w", err)
	}
	if len(entries) == 0 {
		cmd.Println("No ingestions yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tKIND\tSTATUS\tCHUNKS\tSOURCE")
	for _, e := range entries {
		source := e.Source
		if source == "" {
			source = e.Input
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%s\n",
			e.StartedAt.Local().Format(time.DateTime), e.Kind, e.Status,
			e.ChunksWritten, e.ChunksTotal, source)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	first := true
	for _, e := range entries {
		if e.Error == "" {
			continue
		}
		if first {
			cmd.Println()
			first = false
		}
		cmd.Printf("%s %s: %s\n", e.ID[:min(8, len(e.ID))], e.Status, e.Error)
	}
	return nil
}
