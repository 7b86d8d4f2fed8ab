package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/taxdesk/internal/adapters/driving/tui"
	"github.com/custodia-labs/taxdesk/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for taxdesk.

Pick a document to generate its AI tax report, then ask the tax assistant
questions about it.

Controls:
  ↑/k, ↓/j - Navigate documents
  Enter    - Generate report / Send message
  Tab      - Switch between input and conversation
  r        - Retry a failed report
  Esc      - Back to documents
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if assistantService == nil {
		return fmt.Errorf("assistant: %w", errNotConfigured)
	}

	// The alt screen owns the terminal, so logs go to a file or nowhere.
	if tuiLogFile != "" {
		logger.SetFile(tuiLogFile)
	} else {
		logger.SetOutput(io.Discard)
	}
	defer logger.SetOutput(os.Stderr)

	startWatch(cmd.Context())

	app, err := tui.NewApp(tui.NewPorts(assistantService, settingsService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
