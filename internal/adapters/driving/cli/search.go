package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/encephalon/internal/core/domain"
)

var (
	searchLimit    int
	searchShowText bool
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Vector search the knowledge base",
	Long: `Embeds the query and lists the stored chunks nearest to it, most similar
first. Use --text to print each chunk as well as its source.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultTopK, "number of chunks to return")
	searchCmd.Flags().BoolVar(&searchShowText, "text", false, "print chunk text")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	b, err := getBackend()
	if err != nil {
		return err
	}
	svc, err := b.Search(cmd.Context())
	if err != nil {
		return err
	}

	results, err := svc.Search(cmd.Context(), query, domain.SearchOptions{Limit: searchLimit})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	outputSearchList(cmd, results)
	return nil
}

type searchResultJSON struct {
	ID         string  `json:"id"`
	Source     string  `json:"source"`
	Similarity float32 `json:"similarity"`
	Text       string  `json:"text"`
}

func outputSearchJSON(cmd *cobra.Command, results []domain.QueryResult) error {
	out := make([]searchResultJSON, len(results))
	for i, r := range results {
		out[i] = searchResultJSON{ID: r.ID, Source: r.Source, Similarity: r.Similarity, Text: r.Text}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchList(cmd *cobra.Command, results []domain.QueryResult) {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return
	}

	for i, r := range results {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, r.Source, r.Similarity)
		if searchShowText {
			for _, line := range strings.Split(strings.TrimSpace(r.Text), "\n") {
				cmd.Printf("      %s\n", line)
			}
			cmd.Println()
		}
	}
}
