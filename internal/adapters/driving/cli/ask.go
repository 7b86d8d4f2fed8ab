package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/taxdesk/internal/core/domain"
)

var askCmd = &cobra.Command{
	Use:   "ask [doc-id] [question]",
	Short: "Ask the tax assistant one question about a document",
	Long: `Generates the report for a document and asks the assistant a single
question about it. The question may span several arguments.

Example:
  taxdesk ask form16-2024 Which regime should I choose?`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if _, err := selectDocument(cmd, args[0]); err != nil {
		return err
	}

	turns, err := deskService.Send(cmd.Context(), strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	printAnswers(cmd, turns)
	return nil
}

// printAnswers writes the assistant turns among turns.
func printAnswers(cmd *cobra.Command, turns []domain.Turn) {
	for _, turn := range turns {
		if turn.Sender == domain.SenderAssistant {
			cmd.Println(turn.Text)
		}
	}
}
