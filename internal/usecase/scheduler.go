package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ContentCurator/internal/ports"
)

// ScheduleStats summarises the runs a Scheduler has triggered.
type ScheduleStats struct {
	Runs        int
	Failures    int
	LastTrigger time.Time
	LastErr     error
}

// Scheduler drives a Runner from a ports.Scheduler tick source.
type Scheduler struct {
	driver ports.Scheduler
	runner Runner
	logger *slog.Logger

	mu    sync.Mutex
	stats ScheduleStats
}

func NewScheduler(driver ports.Scheduler, runner Runner, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{driver: driver, runner: runner, logger: logger}
}

// Start registers the run job with the driver. Ticks that arrive after ctx is
// done are skipped.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.runner == nil {
		return nil
	}
	return s.driver.Start(ctx, func(trigger time.Time) {
		if ctx.Err() != nil {
			return
		}
		s.runOnce(ctx, trigger)
	})
}

func (s *Scheduler) runOnce(ctx context.Context, trigger time.Time) {
	result, err := s.runner.Run(ctx)

	s.mu.Lock()
	s.stats.Runs++
	s.stats.LastTrigger = trigger
	s.stats.LastErr = err
	if err != nil || !result.Success {
		s.stats.Failures++
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("scheduled run failed", "trigger", trigger, "error", err)
		return
	}
	s.logger.Info("scheduled run finished", "trigger", trigger, "success", result.Success, "url", result.MediumPostURL)
}

// Stats returns a snapshot of the runs triggered so far.
func (s *Scheduler) Stats() ScheduleStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Stop halts the driver and waits for an in-flight run.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}
	return s.driver.Stop(ctx)
}
