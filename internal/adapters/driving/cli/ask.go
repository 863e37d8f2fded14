package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/encephalon/internal/core/ports/driving"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer one question from the knowledge base",
	Long: `Retrieves the chunks nearest to the question and streams the language
model's answer as it is generated.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	b, err := getBackend()
	if err != nil {
		return err
	}
	svc, err := b.Answer(cmd.Context())
	if err != nil {
		return err
	}
	return streamAnswer(cmd, svc, strings.Join(args, " "))
}

// streamAnswer writes fragments as they arrive and ends the answer with a
// newline.
func streamAnswer(cmd *cobra.Command, svc driving.AnswerService, question string) error {
	out := cmd.OutOrStdout()
	wrote := false
	err := svc.Answer(cmd.Context(), question, func(fragment string) error {
		wrote = true
		_, werr := io.WriteString(out, fragment)
		return werr
	})
	if wrote {
		fmt.Fprintln(out)
	}
	return err
}
