package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"ContentCurator/internal/domain"
)

// Runner executes one full pipeline run.
type Runner interface {
	Run(ctx context.Context) (domain.PublishResult, error)
}

// RunOutcome is the result of one run inside a batch.
type RunOutcome struct {
	Index  int
	Result domain.PublishResult
	Err    error
}

// RunBatch executes runs independent runs with at most parallel in flight.
// A failed run does not cancel the others; outcomes are returned in run order.
func RunBatch(ctx context.Context, runner Runner, runs, parallel int) []RunOutcome {
	if runs <= 0 {
		return nil
	}
	if parallel <= 0 {
		parallel = 1
	}

	outcomes := make([]RunOutcome, runs)
	var g errgroup.Group
	g.SetLimit(parallel)
	for i := range runs {
		g.Go(func() error {
			result, err := runner.Run(ctx)
			outcomes[i] = RunOutcome{Index: i, Result: result, Err: err}
			return nil
		})
	}
	_ = g.Wait() // errors captured in RunOutcome.Err

	return outcomes
}
