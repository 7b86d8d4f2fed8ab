package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var chatCmd = &cobra.Command{
	Use:   "chat [doc-id]",
	Short: "Chat with the tax assistant about a document",
	Long: `Generates the report for a document, prints it and starts a
conversation with the tax assistant. Questions are read line by line from
standard input, so answers can also be scripted:

  printf 'Which regime?\n' | taxdesk chat form16-2024

Commands:
  /report  print the report again
  exit     end the conversation`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	report, err := selectDocument(cmd, args[0])
	if err != nil {
		return err
	}
	printReport(cmd, report)
	cmd.Println()
	printAnswers(cmd, deskService.Snapshot().Turns)

	in := cmd.InOrStdin()
	interactive := isTerminal(in)
	scanner := bufio.NewScanner(in)

	for {
		if interactive {
			cmd.Print("> ")
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "/report":
			printReport(cmd, deskService.Snapshot().Report)
			continue
		}

		turns, err := deskService.Send(cmd.Context(), line)
		if err != nil {
			return err
		}
		printAnswers(cmd, turns)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
