// Command taxdesk lists extracted tax documents, generates AI tax reports
// and answers questions about them from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/taxdesk/internal/adapters/driven/backend"
	"github.com/custodia-labs/taxdesk/internal/adapters/driven/config/file"
	"github.com/custodia-labs/taxdesk/internal/adapters/driven/memory"
	"github.com/custodia-labs/taxdesk/internal/adapters/driving/cli"
	"github.com/custodia-labs/taxdesk/internal/core/domain"
	"github.com/custodia-labs/taxdesk/internal/core/ports/driven"
	"github.com/custodia-labs/taxdesk/internal/core/services"
	"github.com/custodia-labs/taxdesk/internal/logger"
)

var version = "dev"

// logFileName is the TUI log file inside the config directory.
const logFileName = "taxdesk.log"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetVersion(version)
	cli.SetWire(wire)

	err := cli.Execute(ctx)
	stop()
	_ = logger.Close()
	if err != nil {
		os.Exit(1)
	}
}

// wire builds the services for one command run.
func wire(opts cli.Options) (*cli.Services, error) {
	store, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	if err := store.ApplyEnv(".env"); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	logger.Debug("Config: %s", store.Path())

	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		// Keep the settings commands usable so the value can be fixed.
		logger.Warn("invalid settings, using defaults: %v", err)
		defaults := domain.DefaultAppSettings()
		settings = &defaults
	}

	var (
		gateway driven.AssistantGateway
		watch   func(ctx context.Context) error
	)
	if opts.Demo {
		logger.Info("Demo mode: serving built-in documents")
		gateway = memory.NewGateway(memory.DemoDocuments()...)
	} else {
		logger.Debug("Backend: %s", settings.Gateway.BaseURL)
		client := backend.NewClient(backend.ConfigFromSettings(settings.Gateway))
		gateway = client
		watch = func(ctx context.Context) error {
			return store.Watch(ctx, func() {
				reloaded, err := settingsService.Get()
				if err != nil {
					logger.Warn("ignoring config change: %v", err)
					return
				}
				logger.Info("Backend: %s", reloaded.Gateway.BaseURL)
				client.Reconfigure(backend.ConfigFromSettings(reloaded.Gateway))
			})
		}
	}

	logFile := settings.Log.File
	if logFile == "" {
		logFile = filepath.Join(filepath.Dir(store.Path()), logFileName)
	}

	assistant := services.NewAssistantService(gateway)
	return &cli.Services{
		Assistant: assistant,
		Settings:  settingsService,
		Desk:      services.NewDesk(assistant),
		LogFile:   logFile,
		Watch:     watch,
	}, nil
}
