package cli

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/encephalon/internal/logger"
)

const (
	chatPrompt   = ">>> "
	chatExitWord = "bye"
	chatFarewell = "Catch you on the flip!\nPeace out."
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions interactively",
	Long: `Starts a question loop. Each answer is streamed before the next question
is read. Type 'bye' or send EOF (Ctrl-D) to leave.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	b, err := getBackend()
	if err != nil {
		return err
	}
	svc, err := b.Answer(cmd.Context())
	if err != nil {
		return err
	}

	styles := stylesFor(cmd.OutOrStdout())
	reader := bufio.NewReader(cmd.InOrStdin())
	defer cmd.Printf("\n%s\n", styles.render(styles.farewell, chatFarewell))

	for {
		if err := cmd.Context().Err(); err != nil {
			return nil
		}

		cmd.Print(styles.render(styles.prompt, chatPrompt))
		line, readErr := reader.ReadString('\n')
		question := strings.TrimRight(line, "\r\n")
		word := strings.TrimSpace(question)

		if strings.EqualFold(word, chatExitWord) {
			return nil
		}
		if word != "" {
			if err := streamAnswer(cmd, svc, question); err != nil {
				if cmd.Context().Err() != nil {
					return nil
				}
				logger.Debug("chat: %v", err)
				cmd.PrintErrln(styles.render(styles.err, "error: "+err.Error()))
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return readErr
		}
	}
}
