package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jassus213/floodgate/internal/simulate"
)

func newSimulateCommand() *cobra.Command {
	var plan simulate.Plan

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay triggers against a jumping window on a synthetic clock",
		Example: `  floodgate simulate --capacity 2 --period 10s --interval 3s --count 8
  floodgate simulate --capacity 1 --period 10s --interval 5s --count 4 --reset-at 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := simulate.Run(plan, time.Now())
			if err != nil {
				return fmt.Errorf("simulate: %w", err)
			}
			return simulate.Render(cmd.OutOrStdout(), steps)
		},
	}

	cmd.Flags().Uint64Var(&plan.Capacity, "capacity", 2, "triggers allowed per window")
	cmd.Flags().DurationVar(&plan.Period, "period", 10*time.Second, "window length")
	cmd.Flags().DurationVar(&plan.Interval, "interval", time.Second, "synthetic time between triggers")
	cmd.Flags().IntVar(&plan.Count, "count", 10, "number of triggers to attempt")
	cmd.Flags().IntSliceVar(&plan.ResetAt, "reset-at", nil, "step indexes to issue an explicit reset before")

	return cmd
}
