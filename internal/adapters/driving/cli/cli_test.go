package cli

import (
	"bytes"
	"io"
	"testing"

	"github.com/custodia-labs/taxdesk/internal/adapters/driven/memory"
	"github.com/custodia-labs/taxdesk/internal/core/services"
)

// setupTestServices wires the commands to a fresh in-memory backend
// serving the demo documents.
func setupTestServices(t *testing.T) *memory.Gateway {
	t.Helper()

	gateway := memory.NewGateway(memory.DemoDocuments()...)
	assistant := services.NewAssistantService(gateway)
	SetServices(&Services{
		Assistant: assistant,
		Settings:  services.NewSettingsService(memory.NewConfigStore()),
		Desk:      services.NewDesk(assistant),
	})

	t.Cleanup(func() {
		assistantService = nil
		settingsService = nil
		deskService = nil
		configWatch = nil
		documentsJSON = false
		reportJSON = false
	})
	return gateway
}

// execute runs the root command with args and returns everything written
// to stdout and stderr.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(stdin)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
