package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"ContentCurator/internal/app"
	"ContentCurator/internal/config"
	"ContentCurator/internal/logging"
)

func loadConfig() config.Config {
	var cfg config.Config
	if rootFlags.configPath != "" {
		cfg = config.LoadFile(rootFlags.configPath)
	} else {
		cfg = config.Load()
	}
	if rootFlags.logLevel != "" {
		cfg.Logging.Level = rootFlags.logLevel
	}
	return cfg
}

// newApplication builds the application with logs on the command's stderr.
func newApplication(cmd *cobra.Command) (*app.Application, *slog.Logger, error) {
	cfg := loadConfig()
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	application, err := app.New(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return application, logger, nil
}

func closeApplication(application io.Closer, logger *slog.Logger) {
	if err := application.Close(); err != nil {
		logger.Error("close application", "error", err)
	}
}
