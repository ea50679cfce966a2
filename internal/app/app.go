package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ContentCurator/internal/config"
	"ContentCurator/internal/domain"
	"ContentCurator/internal/infrastructure/llm"
	"ContentCurator/internal/infrastructure/parser"
	"ContentCurator/internal/infrastructure/publisher"
	"ContentCurator/internal/infrastructure/scheduler"
	"ContentCurator/internal/infrastructure/storage"
	"ContentCurator/internal/infrastructure/telegram"
	"ContentCurator/internal/logging"
	"ContentCurator/internal/ports"
	"ContentCurator/internal/scanner"
	"ContentCurator/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg        config.Config
	logger     *slog.Logger
	pipeline   *usecase.Pipeline
	repository *storage.SQLiteRepository
}

// New builds a runnable application instance. Run history is opened only when
// a database path is configured.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	registry := scanner.NewRegistry()
	registry.Register(parser.NewDevtoScanner(nil, baseLogger.With("component", "scanner.devto")))

	source := parser.NewStrategySource(registry, cfg.Sites, baseLogger.With("component", "source"))
	fetcher := parser.NewArticleFetcher(nil, baseLogger.With("component", "fetcher"))
	completer := llm.NewClient(cfg.Completion, baseLogger.With("component", "completion"))
	pub := publisher.NewSimulated(cfg.Publish, baseLogger.With("component", "publisher"))

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	application := &Application{cfg: cfg, logger: baseLogger}

	var repository ports.RunRepository
	if cfg.Database.Path != "" {
		repo, err := storage.OpenSQLite(cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("open run history: %w", err)
		}
		application.repository = repo
		repository = repo
	}

	application.pipeline = usecase.NewPipeline(usecase.PipelineDeps{
		Discoverer: source,
		Completer:  completer,
		Fetcher:    fetcher,
		Publisher:  pub,
		Repository: repository,
		Notifier:   notifier,
		Logger:     baseLogger.With("component", "pipeline"),
	})
	return application, nil
}

// Run performs a single pipeline execution.
func (a *Application) Run(ctx context.Context) (domain.PublishResult, error) {
	return a.pipeline.Run(ctx)
}

// RunBatch performs runs independent executions with bounded parallelism.
func (a *Application) RunBatch(ctx context.Context, runs, parallel int) []usecase.RunOutcome {
	return usecase.RunBatch(ctx, a.pipeline, runs, parallel)
}

// Schedule runs the pipeline on the configured interval until ctx is done.
func (a *Application) Schedule(ctx context.Context) error {
	sched := usecase.NewScheduler(
		scheduler.NewIntervalScheduler(a.cfg.Scheduler.Interval, a.cfg.Scheduler.Location()),
		a.pipeline,
		a.logger.With("component", "scheduler"),
	)
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	<-ctx.Done()
	err := sched.Stop(context.WithoutCancel(ctx))
	stats := sched.Stats()
	a.logger.Info("scheduler stopped", "runs", stats.Runs, "failures", stats.Failures)
	return err
}

// History lists the most recent runs.
func (a *Application) History(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if a.repository == nil {
		return nil, errors.New("run history is disabled: no database path configured")
	}
	return a.repository.RecentRuns(ctx, limit)
}

// Close releases resources held by the application.
func (a *Application) Close() error {
	if a.repository == nil {
		return nil
	}
	return a.repository.Close()
}
