package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var historyFlags struct {
	limit int
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent pipeline runs",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "Maximum runs to list")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	application, logger, err := newApplication(cmd)
	if err != nil {
		return err
	}
	defer closeApplication(application, logger)

	runs, err := application.History(cmd.Context(), historyFlags.limit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tSTATUS\tTITLE\tURL")
	for _, run := range runs {
		url := run.PostURL
		if url == "" {
			url = run.Message
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", run.ID, run.StartedAt.Local().Format(time.DateTime), run.Status, run.Title, url)
	}
	return tw.Flush()
}
