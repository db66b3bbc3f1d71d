package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/katalvlaran/tspsearch/tsp"
)

// stepPrinter renders each step as one line and waits pace between lines.
// Waiting happens here, outside the solver, so a cancelled context stops
// the solve through the callback's error.
func stepPrinter(ctx context.Context, w io.Writer, pace time.Duration) tsp.StepFunc {
	return func(s tsp.Step) error {
		if s.Index > 0 && pace > 0 {
			t := time.NewTimer(pace)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}
		_, err := io.WriteString(w, formatStep(s))
		return err
	}
}

func formatStep(s tsp.Step) string {
	next := "-"
	if s.Next != nil {
		next = s.NextName
	}
	return fmt.Sprintf("%4d  %-14s -> %-14s  d=%9.2f  g=%9.2f  h=%9.2f  f=%9.2f  total=%9.2f  frontier=%d\n",
		s.Index, s.CurrentName, next, s.Distance, s.G, s.H, s.F, s.TotalDistance, s.FrontierSize)
}

func joinRoute(names []string) string { return strings.Join(names, " -> ") }
