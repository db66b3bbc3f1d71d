// Package tsp - core types, options and sentinel errors.
//
// Errors follow one rule: every malformed-input condition wraps
// ErrInvalidInput, so callers can branch on the category with a single
// errors.Is check and still match the precise sentinel when they care.
package tsp

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// MaxCities is the largest instance the engine accepts. Visited sets are
// uint64 bitsets; the state space is exponential long before this bound.
const MaxCities = 64

// ErrInvalidInput is the category of all input errors reported before a
// solve starts.
var ErrInvalidInput = errors.New("tsp: invalid input")

// Input sentinels; each wraps ErrInvalidInput.
var (
	// ErrTooFewCities is returned when fewer than two cities are supplied.
	ErrTooFewCities = fmt.Errorf("%w: at least two cities are required", ErrInvalidInput)

	// ErrTooManyCities is returned when the instance exceeds MaxCities.
	ErrTooManyCities = fmt.Errorf("%w: too many cities", ErrInvalidInput)

	// ErrStartOutOfRange is returned when the start index is outside [0, n).
	ErrStartOutOfRange = fmt.Errorf("%w: start city out of range", ErrInvalidInput)

	// ErrDimensionMismatch is returned when the matrix order differs from the
	// number of city names, or the matrix is nil.
	ErrDimensionMismatch = fmt.Errorf("%w: matrix dimensions do not match city list", ErrInvalidInput)

	// ErrNonSquare is returned for non-square matrices.
	ErrNonSquare = fmt.Errorf("%w: distance matrix is not square", ErrInvalidInput)

	// ErrNegativeWeight is returned for negative off-diagonal distances.
	ErrNegativeWeight = fmt.Errorf("%w: negative distance", ErrInvalidInput)

	// ErrNonFiniteWeight is returned for NaN or ±Inf distances.
	ErrNonFiniteWeight = fmt.Errorf("%w: non-finite distance", ErrInvalidInput)

	// ErrNonZeroDiagonal is returned when some cost(i,i) is not 0.
	ErrNonZeroDiagonal = fmt.Errorf("%w: non-zero diagonal", ErrInvalidInput)

	// ErrDuplicateCity is returned when two cities share a name.
	ErrDuplicateCity = fmt.Errorf("%w: duplicate or empty city name", ErrInvalidInput)

	// ErrUnsupportedStrategy is returned for unknown strategy values or names.
	ErrUnsupportedStrategy = fmt.Errorf("%w: unsupported strategy", ErrInvalidInput)

	// ErrUnsupportedFormulation is returned for unknown formulation values or names.
	ErrUnsupportedFormulation = fmt.Errorf("%w: unsupported formulation", ErrInvalidInput)

	// ErrUnsupportedHeuristic is returned for unknown heuristic kinds.
	ErrUnsupportedHeuristic = fmt.Errorf("%w: unsupported heuristic", ErrInvalidInput)
)

// Runtime sentinels.
var (
	// ErrExpansionLimit is returned when Options.MaxExpansions is reached
	// before a goal state is popped.
	ErrExpansionLimit = errors.New("tsp: expansion limit reached")

	// ErrCallback wraps an error returned by a StepFunc; the solve is aborted.
	ErrCallback = errors.New("tsp: step callback failed")

	// ErrExactTooLarge is returned by HeldKarp above MaxExactCities.
	ErrExactTooLarge = errors.New("tsp: instance too large for exact dynamic programming")
)

// Strategy selects the node-selection policy of the search.
type Strategy int

const (
	// AStar orders by f = g + h.
	AStar Strategy = iota
	// UniformCost orders by g only.
	UniformCost
	// Greedy orders by h only; g is tracked for reporting.
	Greedy
)

// Strategies lists every strategy in presentation order.
var Strategies = []Strategy{Greedy, UniformCost, AStar}

// String returns the canonical short name.
func (s Strategy) String() string {
	switch s {
	case AStar:
		return "astar"
	case UniformCost:
		return "ucs"
	case Greedy:
		return "greedy"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Title returns the human-readable algorithm name used in reports.
func (s Strategy) Title() string {
	switch s {
	case AStar:
		return "A* Search"
	case UniformCost:
		return "Uniform Cost Search"
	case Greedy:
		return "Greedy Best-First Search"
	default:
		return s.String()
	}
}

// ParseStrategy maps a user-facing name onto a Strategy.
// "best-first" is accepted for UCS because older web clients used that label.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "astar", "a*", "a-star":
		return AStar, nil
	case "ucs", "uniform-cost", "uniform_cost", "best-first":
		return UniformCost, nil
	case "greedy", "gbfs", "greedy-best-first":
		return Greedy, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedStrategy, name)
	}
}

// Formulation selects between the full state-space search and the
// single-pass constructive variant.
type Formulation int

const (
	// StateSpace is best-first search over partial tours with backtracking.
	StateSpace Formulation = iota
	// Constructive commits to the locally best city at each step.
	Constructive
)

// String returns the canonical short name.
func (f Formulation) String() string {
	switch f {
	case StateSpace:
		return "state-space"
	case Constructive:
		return "constructive"
	default:
		return fmt.Sprintf("Formulation(%d)", int(f))
	}
}

// ParseFormulation maps a user-facing name onto a Formulation.
// The empty string selects StateSpace.
func ParseFormulation(name string) (Formulation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "state-space", "statespace", "search":
		return StateSpace, nil
	case "constructive", "step", "one-pass":
		return Constructive, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormulation, name)
	}
}

// HeuristicKind selects the remaining-cost estimator.
type HeuristicKind int

const (
	// HeuristicAuto picks the default for the strategy and formulation.
	HeuristicAuto HeuristicKind = iota
	// HeuristicZero always returns 0.
	HeuristicZero
	// HeuristicMST is the Prim lower bound over current ∪ unvisited ∪ start.
	HeuristicMST
	// HeuristicNearestEdge is min(current→u) + min(u→start) over unvisited u.
	HeuristicNearestEdge
	// HeuristicDistanceToStart is cost(city, start).
	HeuristicDistanceToStart
)

// String returns the canonical short name.
func (k HeuristicKind) String() string {
	switch k {
	case HeuristicAuto:
		return "auto"
	case HeuristicZero:
		return "zero"
	case HeuristicMST:
		return "mst"
	case HeuristicNearestEdge:
		return "nearest-edge"
	case HeuristicDistanceToStart:
		return "distance-to-start"
	default:
		return fmt.Sprintf("HeuristicKind(%d)", int(k))
	}
}

// Options configures a solve. The zero value equals DefaultOptions.
type Options struct {
	// Strategy is the node-selection policy.
	Strategy Strategy

	// Formulation picks the state-space engine or the constructive variant.
	Formulation Formulation

	// Heuristic overrides the estimator; HeuristicAuto keeps the default
	// (see resolveHeuristic).
	Heuristic HeuristicKind

	// MaxExpansions caps the number of expanded states; 0 means unlimited.
	// Reaching the cap returns ErrExpansionLimit.
	MaxExpansions int
}

// DefaultOptions returns A* over the state space with the MST bound.
func DefaultOptions() Options {
	return Options{
		Strategy:    AStar,
		Formulation: StateSpace,
		Heuristic:   HeuristicAuto,
	}
}

// Result is the outcome of one solve.
type Result struct {
	// Route lists city indices, starting and ending at the start city.
	// nil when the search was exhausted without reaching a goal.
	Route []int

	// Cost is the total closed-tour cost; +Inf when exhausted.
	Cost float64

	// Found reports whether a goal state was reached.
	Found bool

	Strategy    Strategy
	Formulation Formulation
	Heuristic   HeuristicKind

	// NodesExplored counts expanded states (dominated pops excluded) or,
	// for the constructive variant, evaluated candidates.
	NodesExplored int

	// Operations counts frontier pops plus successor evaluations.
	Operations int

	// Steps is the number of step records emitted.
	Steps int

	// Elapsed is the wall-clock time spent inside the engine.
	Elapsed time.Duration
}

// Exhausted reports the "no solution" sentinel (nil route, infinite cost).
func (r Result) Exhausted() bool {
	return !r.Found && r.Route == nil && math.IsInf(r.Cost, 1)
}

// exhaustedResult builds the defined failure sentinel.
func exhaustedResult() Result {
	return Result{Cost: math.Inf(1)}
}
