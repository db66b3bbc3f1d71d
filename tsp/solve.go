// Package tsp - solver construction and entry points.
//
// This file provides the canonical entry points:
//
//   - NewSolver: validate a matrix and city list once, prefetch the costs,
//     resolve the heuristic; the Solver can then run many solves.
//   - Solve / SolveContext: one-shot convenience wrappers.
//   - Compare: run several strategies concurrently on one shared matrix and
//     report each result next to the exact optimum when it is affordable.
//
// Design principles:
//   - Validation happens before the first frontier push.
//   - A Solver is immutable after construction and safe for concurrent use;
//     every Solve owns its frontier, explored table and trace state.
//   - No logging; callers observe progress through StepFunc.
package tsp

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/tspsearch/matrix"
)

// Solver is a validated, prefetched instance bound to one Options value.
type Solver struct {
	t      *costTable
	cities []string
	opts   Options
	kind   HeuristicKind
	h      HeuristicFunc
}

// NewSolver validates dist, cities and opts and prefetches the costs.
// cities may be nil, in which case the labels are "0".."n-1".
//
// Errors: the input sentinels of types.go, all wrapping ErrInvalidInput.
//
// Complexity: O(n²).
func NewSolver(dist matrix.Matrix, cities []string, opts Options) (*Solver, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	t, err := newCostTable(dist)
	if err != nil {
		return nil, err
	}
	if err = validateCities(cities, t.n); err != nil {
		return nil, err
	}

	return newSolver(t, labelsOrDefault(cities, t.n), opts)
}

// newSolver binds an already validated table.
func newSolver(t *costTable, cities []string, opts Options) (*Solver, error) {
	kind := resolveHeuristic(opts.Strategy, opts.Formulation, opts.Heuristic)
	h, err := t.heuristic(kind)
	if err != nil {
		return nil, err
	}

	return &Solver{t: t, cities: cities, opts: opts, kind: kind, h: h}, nil
}

// N returns the number of cities.
func (s *Solver) N() int { return s.t.n }

// Cities returns a copy of the city labels.
func (s *Solver) Cities() []string { return append([]string(nil), s.cities...) }

// Options returns the options the solver was built with.
func (s *Solver) Options() Options { return s.opts }

// Heuristic returns the resolved heuristic kind (never HeuristicAuto).
func (s *Solver) Heuristic() HeuristicKind { return s.kind }

// Solve runs one search from start. onStep may be nil.
//
// Returns:
//   - Result with Found=true, the closed route and its cost on success.
//   - The exhausted sentinel (nil route, +Inf cost) and a nil error when the
//     frontier empties without a goal.
//   - ErrStartOutOfRange before any work for a bad start.
//   - ctx.Err(), ErrExpansionLimit or an ErrCallback-wrapped error when the
//     search is aborted; counters in the Result reflect the work done.
func (s *Solver) Solve(ctx context.Context, start int, onStep StepFunc) (Result, error) {
	if err := validateStart(s.t.n, start); err != nil {
		return Result{}, err
	}
	e := &searchEngine{
		t:        s.t,
		start:    start,
		strategy: s.opts.Strategy,
		h:        s.h,
		maxExp:   s.opts.MaxExpansions,
		tr:       &tracer{fn: onStep, names: s.cities},
	}

	var (
		began = time.Now()
		res   Result
		err   error
	)
	if s.opts.Formulation == Constructive {
		res, err = e.runConstructive(ctx)
	} else {
		res, err = e.run(ctx)
	}
	res.Elapsed = time.Since(began)
	res.Strategy = s.opts.Strategy
	res.Formulation = s.opts.Formulation
	res.Heuristic = s.kind

	return res, err
}

// Solve is SolveContext with context.Background.
func Solve(dist matrix.Matrix, cities []string, start int, onStep StepFunc, opts Options) (Result, error) {
	return SolveContext(context.Background(), dist, cities, start, onStep, opts)
}

// SolveContext validates the input and runs one search.
func SolveContext(ctx context.Context, dist matrix.Matrix, cities []string, start int, onStep StepFunc, opts Options) (Result, error) {
	s, err := NewSolver(dist, cities, opts)
	if err != nil {
		return Result{}, err
	}

	return s.Solve(ctx, start, onStep)
}

// Comparison is the outcome of Compare.
type Comparison struct {
	// Results are in the order the strategies were requested.
	Results []Result

	// Optimal is the exact optimum from HeldKarp; valid when OptimalKnown.
	Optimal      float64
	OptimalKnown bool
}

// Gap returns the relative excess of r over the optimum, e.g. 0.05 for 5%.
// NaN when the optimum is unknown or r found no tour.
func (c Comparison) Gap(r Result) float64 {
	if !c.OptimalKnown || !r.Found {
		return math.NaN()
	}
	if c.Optimal == 0 {
		return 0
	}

	return (r.Cost - c.Optimal) / c.Optimal
}

// Compare runs each strategy (all of Strategies when none are given) with
// opts' formulation and heuristic override, concurrently on one shared
// prefetched table, without traces. For n ≤ MaxExactCities the exact
// optimum is computed alongside.
//
// The first failing strategy cancels the others and its error is returned.
func Compare(ctx context.Context, dist matrix.Matrix, cities []string, start int, opts Options, strategies ...Strategy) (Comparison, error) {
	if len(strategies) == 0 {
		strategies = Strategies
	}
	if err := validateOptions(opts); err != nil {
		return Comparison{}, err
	}
	t, err := newCostTable(dist)
	if err != nil {
		return Comparison{}, err
	}
	if err = validateCities(cities, t.n); err != nil {
		return Comparison{}, err
	}
	if err = validateStart(t.n, start); err != nil {
		return Comparison{}, err
	}
	labels := labelsOrDefault(cities, t.n)

	solvers := make([]*Solver, len(strategies))
	for i, st := range strategies {
		o := opts
		o.Strategy = st
		if err = validateOptions(o); err != nil {
			return Comparison{}, err
		}
		if solvers[i], err = newSolver(t, labels, o); err != nil {
			return Comparison{}, err
		}
	}

	cmp := Comparison{Results: make([]Result, len(strategies))}
	g, gctx := errgroup.WithContext(ctx)
	for i := range solvers {
		g.Go(func() error {
			res, err := solvers[i].Solve(gctx, start, nil)
			cmp.Results[i] = res

			return err
		})
	}
	if t.n <= MaxExactCities {
		g.Go(func() error {
			_, opt, err := t.heldKarp(start)
			if err != nil {
				return err
			}
			cmp.Optimal, cmp.OptimalKnown = opt, !math.IsInf(opt, 1)

			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return cmp, err
	}

	return cmp, nil
}
