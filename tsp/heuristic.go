// Package tsp - remaining-cost estimators.
//
// Every estimator answers the same question: given a partial tour ending at
// current with the given visited set, how much more will it cost to visit
// the rest and return to start?
//
//   - MST (A*): spanning weight over {current} ∪ unvisited ∪ {start}, Prim
//     on symmetric tables and the minimum arborescence rooted at current on
//     asymmetric ones (see mst.go). Completing the tour needs a path over
//     exactly these nodes, so the bound never overestimates.
//   - Nearest edge (Greedy): cheapest edge out of current into the unvisited
//     set plus cheapest edge from the unvisited set back to start. Not
//     admissible.
//   - Distance to start: cost(current, start), independent of visited.
//   - Zero: UCS.
package tsp

import (
	"math"

	"github.com/katalvlaran/tspsearch/matrix"
)

// HeuristicFunc estimates the cost of completing a tour. It must be
// non-negative and must not retain visited.
type HeuristicFunc func(current int, visited CitySet, start int) float64

// NewHeuristic binds an estimator to dist. The matrix is prefetched once;
// later changes to dist are not observed.
//
// Errors: ErrUnsupportedHeuristic (including HeuristicAuto, which needs a
// strategy to resolve), and the validation sentinels of the matrix prefetch.
func NewHeuristic(kind HeuristicKind, dist matrix.Matrix) (HeuristicFunc, error) {
	t, err := newCostTable(dist)
	if err != nil {
		return nil, err
	}

	return t.heuristic(kind)
}

// heuristic returns the estimator of the given kind.
func (t *costTable) heuristic(kind HeuristicKind) (HeuristicFunc, error) {
	switch kind {
	case HeuristicZero:
		return func(int, CitySet, int) float64 { return 0 }, nil
	case HeuristicMST:
		return t.mstBound, nil
	case HeuristicNearestEdge:
		return t.nearestEdge, nil
	case HeuristicDistanceToStart:
		return t.distanceToStart, nil
	default:
		return nil, ErrUnsupportedHeuristic
	}
}

// resolveHeuristic replaces HeuristicAuto with the per-strategy default.
func resolveHeuristic(s Strategy, f Formulation, kind HeuristicKind) HeuristicKind {
	if kind != HeuristicAuto {
		return kind
	}
	switch {
	case s == UniformCost:
		return HeuristicZero
	case f == Constructive:
		return HeuristicDistanceToStart
	case s == Greedy:
		return HeuristicNearestEdge
	default:
		return HeuristicMST
	}
}

// unvisited returns the complement of visited over the table's cities.
func (t *costTable) unvisited(visited CitySet) CitySet {
	return FullSet(t.n) &^ visited
}

// mstBound is the A* estimator.
func (t *costTable) mstBound(current int, visited CitySet, start int) float64 {
	rest := t.unvisited(visited)
	if rest == 0 {
		return t.at(current, start)
	}

	nodes := make([]int, 0, rest.Len()+2)
	nodes = append(nodes, current)
	nodes = append(nodes, rest.Members()...)
	if start != current {
		nodes = append(nodes, start)
	}

	if t.symmetric {
		return t.mstWeight(nodes)
	}

	return t.arborescenceWeight(nodes)
}

// nearestEdge is the Greedy estimator.
func (t *costTable) nearestEdge(current int, visited CitySet, start int) float64 {
	rest := t.unvisited(visited)
	if rest == 0 {
		return t.at(current, start)
	}
	var (
		out  = math.Inf(1)
		back = math.Inf(1)
		c    float64
	)
	for _, u := range rest.Members() {
		if c = t.at(current, u); c < out {
			out = c
		}
		if c = t.at(u, start); c < back {
			back = c
		}
	}

	return out + back
}

// distanceToStart ignores the visited set.
func (t *costTable) distanceToStart(current int, _ CitySet, start int) float64 {
	return t.at(current, start)
}
