package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var runFlags struct {
	runs     int
	parallel int
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the curation pipeline once (or --runs times)",
	Args:  cobra.NoArgs,
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.IntVar(&runFlags.runs, "runs", 1, "Number of independent runs")
	f.IntVar(&runFlags.parallel, "parallel", 1, "Maximum runs in flight")
}

func runRun(cmd *cobra.Command, _ []string) error {
	application, logger, err := newApplication(cmd)
	if err != nil {
		return err
	}
	defer closeApplication(application, logger)

	ctx := cmd.Context()
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	if runFlags.runs <= 1 {
		result, err := application.Run(ctx)
		if err != nil {
			return fmt.Errorf("workflow failed: %w", err)
		}
		return enc.Encode(result)
	}

	failed := 0
	for _, outcome := range application.RunBatch(ctx, runFlags.runs, runFlags.parallel) {
		if outcome.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "run %d failed: %v\n", outcome.Index+1, outcome.Err)
			continue
		}
		if err := enc.Encode(outcome.Result); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d runs failed", failed, runFlags.runs)
	}
	return nil
}
