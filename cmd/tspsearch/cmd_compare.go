package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tspsearch/distance"
	"github.com/katalvlaran/tspsearch/tsp"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		src           citySource
		formulation   string
		start         int
		maxExpansions int
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run Greedy, UCS and A* on the same instance and tabulate them",
		Long: `Compare runs all three strategies concurrently on one distance matrix.
For up to 16 cities the exact optimum is computed as well and each row shows
its relative gap.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := a.searchOptions("", formulation, maxExpansions)
			if err != nil {
				return err
			}
			cities, err := src.cities(a.cfg)
			if err != nil {
				return err
			}
			cache, err := a.openCache()
			if err != nil {
				return err
			}
			defer a.closeCache(cache)

			m, _, err := a.newBuilder(cache, nil).Build(cmd.Context(), cities)
			if err != nil {
				return err
			}
			names := distance.Names(cities)
			cmp, err := tsp.Compare(cmd.Context(), m, names, start, opts)
			if err != nil {
				return err
			}
			printComparison(cmd, cmp, names)

			return nil
		},
	}
	src.bind(cmd)
	f := cmd.Flags()
	f.StringVar(&formulation, "formulation", "", "state-space or constructive (default from config)")
	f.IntVar(&start, "start", 0, "index of the start city")
	f.IntVar(&maxExpansions, "max-expansions", -1, "cap on expanded states per strategy (default from config)")

	return cmd
}

func printComparison(cmd *cobra.Command, cmp tsp.Comparison, names []string) {
	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tDISTANCE\tGAP\tNODES\tOPS\tTIME")
	for _, r := range cmp.Results {
		gap := "-"
		if g := cmp.Gap(r); !math.IsNaN(g) {
			gap = fmt.Sprintf("%.2f%%", g*100)
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%d\t%d\t%s\n",
			r.Strategy.Title(), r.Cost, gap, r.NodesExplored, r.Operations, r.Elapsed)
	}
	_ = tw.Flush()

	if cmp.OptimalKnown {
		fmt.Fprintf(out, "\nOptimal: %.2f km\n", cmp.Optimal)
	}
	for _, r := range cmp.Results {
		fmt.Fprintf(out, "%-26s %s\n", r.Strategy.Title()+":", joinRoute(tsp.RouteNames(r.Route, names)))
	}
}
