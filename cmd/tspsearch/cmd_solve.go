package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tspsearch/distance"
	"github.com/katalvlaran/tspsearch/tsp"
)

type solveFlags struct {
	src           citySource
	strategy      string
	formulation   string
	start         int
	maxExpansions int
	trace         bool
	pace          time.Duration
	asJSON        bool
}

// solveOutput is the --json document.
type solveOutput struct {
	Algorithm     string              `json:"algorithm"`
	Formulation   string              `json:"formulation"`
	Heuristic     string              `json:"heuristic"`
	Route         []string            `json:"route"`
	RouteIndices  []int               `json:"route_idx"`
	TotalDistance float64             `json:"total_distance"`
	NodesExplored int                 `json:"nodes_explored"`
	Operations    int                 `json:"operations"`
	Elapsed       string              `json:"elapsed"`
	Distances     distance.BuildStats `json:"distance_stats"`
	Steps         []tsp.Step          `json:"steps,omitempty"`
}

func newSolveCmd(a *app) *cobra.Command {
	var fl solveFlags
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve one instance and print the route",
		Long: `Solve builds the distance matrix for the selected cities and runs one
search strategy. With --trace every step is printed as it happens; --pace
spaces them out for live demonstrations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("pace") {
				fl.pace = 0
				if fl.trace {
					fl.pace = a.cfg.Search.StepDelay
				}
			}
			return a.runSolve(cmd, fl)
		},
	}
	fl.src.bind(cmd)
	f := cmd.Flags()
	f.StringVarP(&fl.strategy, "strategy", "s", "", "greedy, ucs or astar (default from config)")
	f.StringVar(&fl.formulation, "formulation", "", "state-space or constructive (default from config)")
	f.IntVar(&fl.start, "start", 0, "index of the start city")
	f.IntVar(&fl.maxExpansions, "max-expansions", -1, "cap on expanded states; 0 is unlimited (default from config)")
	f.BoolVar(&fl.trace, "trace", false, "print every search step")
	f.DurationVar(&fl.pace, "pace", 0, "delay between printed steps (default search.step_delay when tracing)")
	f.BoolVar(&fl.asJSON, "json", false, "print the result as JSON")

	return cmd
}

func (a *app) searchOptions(strategy, formulation string, maxExpansions int) (tsp.Options, error) {
	if strategy == "" {
		strategy = a.cfg.Search.Strategy
	}
	if formulation == "" {
		formulation = a.cfg.Search.Formulation
	}
	if maxExpansions < 0 {
		maxExpansions = a.cfg.Search.MaxExpansions
	}
	st, err := tsp.ParseStrategy(strategy)
	if err != nil {
		return tsp.Options{}, err
	}
	form, err := tsp.ParseFormulation(formulation)
	if err != nil {
		return tsp.Options{}, err
	}

	return tsp.Options{Strategy: st, Formulation: form, MaxExpansions: maxExpansions}, nil
}

func (a *app) runSolve(cmd *cobra.Command, fl solveFlags) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	opts, err := a.searchOptions(fl.strategy, fl.formulation, fl.maxExpansions)
	if err != nil {
		return err
	}
	cities, err := fl.src.cities(a.cfg)
	if err != nil {
		return err
	}
	cache, err := a.openCache()
	if err != nil {
		return err
	}
	defer a.closeCache(cache)

	m, stats, err := a.newBuilder(cache, nil).Build(ctx, cities)
	if err != nil {
		return err
	}
	a.log.Debug("distance matrix ready", "pairs", stats.Pairs, "primary", stats.Primary,
		"cache", stats.Cache, "fallback", stats.Fallback, "elapsed", stats.Elapsed)

	names := distance.Names(cities)
	solver, err := tsp.NewSolver(m, names, opts)
	if err != nil {
		return err
	}

	var (
		rec    *tsp.Recorder
		onStep tsp.StepFunc
	)
	switch {
	case fl.asJSON && fl.trace:
		rec = tsp.NewRecorder()
		onStep = rec.Record
	case fl.trace:
		fmt.Fprintf(out, "%s (%s, h=%s) from %s\n",
			opts.Strategy.Title(), opts.Formulation, solver.Heuristic(), names[clampIndex(fl.start, len(names))])
		onStep = stepPrinter(ctx, out, fl.pace)
	}

	res, err := solver.Solve(ctx, fl.start, onStep)
	if err != nil {
		return err
	}
	if res.Exhausted() {
		return fmt.Errorf("%s found no tour", opts.Strategy.Title())
	}
	a.log.Info("solve finished", "strategy", res.Strategy, "formulation", res.Formulation,
		"distance_km", res.Cost, "nodes", res.NodesExplored, "ops", res.Operations, "elapsed", res.Elapsed)

	if fl.asJSON {
		doc := solveOutput{
			Algorithm:     res.Strategy.String(),
			Formulation:   res.Formulation.String(),
			Heuristic:     res.Heuristic.String(),
			Route:         tsp.RouteNames(res.Route, names),
			RouteIndices:  res.Route,
			TotalDistance: res.Cost,
			NodesExplored: res.NodesExplored,
			Operations:    res.Operations,
			Elapsed:       res.Elapsed.String(),
			Distances:     stats,
		}
		if rec != nil {
			doc.Steps = rec.Steps()
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	printResult(out, res, names)

	return nil
}

func printResult(w io.Writer, res tsp.Result, names []string) {
	fmt.Fprintf(w, "Algorithm: %s\n", res.Strategy.Title())
	fmt.Fprintf(w, "Route:     %s\n", joinRoute(tsp.RouteNames(res.Route, names)))
	fmt.Fprintf(w, "Distance:  %.2f km\n", res.Cost)
	fmt.Fprintf(w, "Nodes:     %d\n", res.NodesExplored)
	fmt.Fprintf(w, "Ops:       %d\n", res.Operations)
	fmt.Fprintf(w, "Time:      %s\n", res.Elapsed)
}

// clampIndex keeps the banner printable; the solver reports the real error.
func clampIndex(i, n int) int {
	if i < 0 || i >= n {
		return 0
	}

	return i
}
