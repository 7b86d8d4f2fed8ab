// Package cli provides the taxdesk command line interface built on cobra.
// Commands are registered on a package-level root command in init().
// Services are injected by main through Set* functions or, when flags
// affect wiring, through the Wire hook run before every command.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/taxdesk/internal/core/ports/driving"
	"github.com/custodia-labs/taxdesk/internal/logger"
)

// version is set at build time.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
	demoMode  bool
)

// Injected services.
var (
	assistantService driving.AssistantService
	settingsService  driving.SettingsService
	deskService      driving.DeskService
	tuiLogFile       string
	configWatch      func(ctx context.Context) error
)

// Options are the global flags that affect wiring.
type Options struct {
	// ConfigDir overrides the config directory. Empty uses the default.
	ConfigDir string

	// Demo serves built-in documents instead of calling the backend.
	Demo bool

	// Verbose enables debug logging.
	Verbose bool
}

// Services are the driving ports the commands use.
type Services struct {
	Assistant driving.AssistantService
	Settings  driving.SettingsService
	Desk      driving.DeskService

	// LogFile receives logs while the terminal UI owns the screen.
	LogFile string

	// Watch, when set, applies config file changes until ctx is done.
	// Long-running commands start it in the background.
	Watch func(ctx context.Context) error
}

// WireFunc builds the services for the parsed global flags.
type WireFunc func(opts Options) (*Services, error)

// wire is called before every command when set.
var wire WireFunc

// errNotConfigured is returned when a command runs without its service.
var errNotConfigured = errors.New("service not configured")

var rootCmd = &cobra.Command{
	Use:   "taxdesk",
	Short: "Tax reports and an assistant for your extracted tax documents",
	Long: `taxdesk lists your extracted tax documents, generates an AI tax report
for the one you pick and lets you ask questions about it.

Run without a command to open the interactive terminal UI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if wire == nil {
			return nil
		}
		services, err := wire(Options{ConfigDir: configDir, Demo: demoMode, Verbose: verbose})
		if err != nil {
			return err
		}
		SetServices(services)
		return nil
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.taxdesk)")
	rootCmd.PersistentFlags().BoolVar(&demoMode, "demo", false, "use built-in demo documents instead of the backend")
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetWire sets the hook that builds services from global flags.
func SetWire(fn WireFunc) {
	wire = fn
}

// SetServices injects all services at once. Nil fields are left unchanged.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	if s.Assistant != nil {
		assistantService = s.Assistant
	}
	if s.Settings != nil {
		settingsService = s.Settings
	}
	if s.Desk != nil {
		deskService = s.Desk
	}
	if s.LogFile != "" {
		tuiLogFile = s.LogFile
	}
	if s.Watch != nil {
		configWatch = s.Watch
	}
}

// startWatch runs the config watcher, if any, until ctx is done.
func startWatch(ctx context.Context) {
	if configWatch == nil {
		return
	}
	go func() {
		if err := configWatch(ctx); err != nil {
			logger.Warn("config watch stopped: %v", err)
		}
	}()
}

// SetAssistantService sets the assistant service.
func SetAssistantService(s driving.AssistantService) {
	assistantService = s
}

// SetSettingsService sets the settings service.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetDeskService sets the desk service.
func SetDeskService(s driving.DeskService) {
	deskService = s
}
