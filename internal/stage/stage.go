// Package stage implements the typed steps of the curation pipeline. Every
// remote-backed stage runs in two phases: an attempt against the completion
// service and, when that fails recoverably, a deterministic local fallback.
package stage

import (
	"context"
	"log/slog"

	"ContentCurator/internal/domain"
)

// Stage turns a typed input into a typed output.
type Stage[In, Out any] interface {
	Run(ctx context.Context, in In) (Out, error)
}

// Path names which phase produced a stage output. It is logged as the "path"
// attribute.
type Path string

const (
	PathRemote   Path = "remote"
	PathFallback Path = "fallback"
)

// runTwoPhase returns the remote result when attempt succeeds and the fallback
// result when attempt fails with a recoverable error. Any other error is
// returned unchanged. The phase taken is logged.
func runTwoPhase[In, Out any](
	ctx context.Context,
	logger *slog.Logger,
	in In,
	attempt func(context.Context, In) (Out, error),
	fallback func(In) Out,
) (Out, error) {
	out, err := attempt(ctx, in)
	if err == nil {
		logger.Debug("stage completed", "path", PathRemote)
		return out, nil
	}

	if !domain.IsRecoverable(err) {
		var zero Out
		return zero, err
	}

	logger.Warn("remote phase failed, using fallback", "path", PathFallback, "error", err)
	return fallback(in), nil
}

func nopLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
