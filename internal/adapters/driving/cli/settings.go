package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/taxdesk/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the backend endpoints and logging.

Settings are stored in ~/.taxdesk/config.toml. TAXDESK_* environment
variables (for example TAXDESK_GATEWAY_BASE_URL) override them for one run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set one setting",
	Long: `Set one setting by key. Recognised keys:

  gateway.base_url             backend scheme and host
  gateway.documents_path       document list endpoint
  gateway.report_path          report generation endpoint
  gateway.chat_path            assistant endpoint
  gateway.timeout_seconds      per-request timeout, 0 for none
  gateway.requests_per_second  client-side throttle, 0 for none
  log.file                     log file used by the terminal UI`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Walk through every setting, pressing Enter to keep the current value.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errNotConfigured)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Gateway]")
	cmd.Printf("  Base URL: %s\n", settings.Gateway.BaseURL)
	cmd.Printf("  Documents: %s\n", settings.Gateway.DocumentsPath)
	cmd.Printf("  Report: %s\n", settings.Gateway.ReportPath)
	cmd.Printf("  Chat: %s\n", settings.Gateway.ChatPath)
	cmd.Printf("  Timeout: %s\n", describeTimeout(settings.Gateway))
	cmd.Printf("  Rate limit: %s\n", describeRate(settings.Gateway))
	cmd.Println()

	cmd.Println("[Log]")
	file := settings.Log.File
	if file == "" {
		file = "(default)"
	}
	cmd.Printf("  File: %s\n", file)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errNotConfigured)
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errNotConfigured)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("taxdesk Settings Wizard")
	cmd.Println("=======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())
	current := currentValues(settings)

	for _, key := range settingsService.Keys() {
		cmd.Printf("%s [%s]: ", key, current[key])
		input := readLine(reader)
		if input == "" {
			continue
		}
		if err := settingsService.Set(key, input); err != nil {
			cmd.Printf("  skipped: %v\n", err)
			continue
		}
		cmd.Printf("  saved\n")
	}

	cmd.Println()
	cmd.Println("Configuration Complete!")
	return nil
}

// currentValues maps setting keys to their displayed values.
func currentValues(s *domain.AppSettings) map[string]string {
	return map[string]string{
		"gateway.base_url":            s.Gateway.BaseURL,
		"gateway.documents_path":      s.Gateway.DocumentsPath,
		"gateway.report_path":         s.Gateway.ReportPath,
		"gateway.chat_path":           s.Gateway.ChatPath,
		"gateway.timeout_seconds":     strconv.Itoa(int(s.Gateway.Timeout.Seconds())),
		"gateway.requests_per_second": strconv.FormatFloat(s.Gateway.RequestsPerSecond, 'f', -1, 64),
		"log.file":                    s.Log.File,
	}
}

func describeTimeout(g domain.GatewaySettings) string {
	if g.Timeout <= 0 {
		return "none"
	}
	return g.Timeout.String()
}

func describeRate(g domain.GatewaySettings) string {
	if g.RequestsPerSecond <= 0 {
		return "unlimited"
	}
	return strconv.FormatFloat(g.RequestsPerSecond, 'f', -1, 64) + " requests/s"
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
