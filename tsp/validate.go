// Package tsp - validation utilities shared by both engines.
//
// This file contains small helpers that:
//  1. Validate the distance matrix (shape, diagonal, negativity, finiteness).
//  2. Validate the city label list against the matrix order.
//  3. Validate the start city and the options.
//
// Design principles:
//   - Deterministic, side-effect free functions.
//   - No logging, no panics on user input; only sentinels from types.go,
//     wrapped with the offending position where that helps.
//   - Everything runs before the first frontier push: a solve either fails
//     here or not at all.
package tsp

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tspsearch/matrix"
)

// diagTol is the structural tolerance for diagonal checks.
const diagTol = 1e-12

// validateMatrix checks dist against the distance-table policy and returns
// its order n. matrix sentinels are mapped onto tsp sentinels so callers
// only need to know this package's error set.
//
// Complexity: O(n²).
func validateMatrix(dist matrix.Matrix) (int, error) {
	if dist == nil {
		return 0, ErrDimensionMismatch
	}
	if err := matrix.ValidateDistances(dist, diagTol); err != nil {
		return 0, mapMatrixError(err)
	}
	n := dist.Rows()
	if n < 2 {
		return 0, ErrTooFewCities
	}
	if n > MaxCities {
		return 0, fmt.Errorf("%w: %d > %d", ErrTooManyCities, n, MaxCities)
	}

	return n, nil
}

// mapMatrixError translates matrix validator sentinels, keeping the
// original message for context.
func mapMatrixError(err error) error {
	switch {
	case errors.Is(err, matrix.ErrNilMatrix):
		return fmt.Errorf("%w (%v)", ErrDimensionMismatch, err)
	case errors.Is(err, matrix.ErrNonSquare):
		return fmt.Errorf("%w (%v)", ErrNonSquare, err)
	case errors.Is(err, matrix.ErrNegative):
		return fmt.Errorf("%w (%v)", ErrNegativeWeight, err)
	case errors.Is(err, matrix.ErrNaNInf):
		return fmt.Errorf("%w (%v)", ErrNonFiniteWeight, err)
	case errors.Is(err, matrix.ErrNonZeroDiagonal):
		return fmt.Errorf("%w (%v)", ErrNonZeroDiagonal, err)
	default:
		return fmt.Errorf("%w (%v)", ErrDimensionMismatch, err)
	}
}

// validateCities enforces len(cities)==n with unique, non-empty names.
// A nil list is accepted; labels are then synthesized by labelsOrDefault.
//
// Complexity: O(n) time and space.
func validateCities(cities []string, n int) error {
	if cities == nil {
		return nil
	}
	if len(cities) < 2 {
		return ErrTooFewCities
	}
	if len(cities) != n {
		return fmt.Errorf("%w: %d names for a %dx%d matrix", ErrDimensionMismatch, len(cities), n, n)
	}
	seen := make(map[string]struct{}, n)
	for i, name := range cities {
		if name == "" {
			return fmt.Errorf("%w: empty name at %d", ErrDuplicateCity, i)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateCity, name)
		}
		seen[name] = struct{}{}
	}

	return nil
}

// labelsOrDefault returns cities, or "0".."n-1" when cities is nil.
func labelsOrDefault(cities []string, n int) []string {
	if cities != nil {
		return append([]string(nil), cities...)
	}
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%d", i)
	}

	return out
}

// validateStart verifies that start∈[0..n-1].
func validateStart(n, start int) error {
	if start < 0 || start >= n {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrStartOutOfRange, start, n)
	}

	return nil
}

// validateOptions checks enum ranges and limits.
func validateOptions(opts Options) error {
	switch opts.Strategy {
	case AStar, UniformCost, Greedy:
	default:
		return ErrUnsupportedStrategy
	}
	switch opts.Formulation {
	case StateSpace, Constructive:
	default:
		return ErrUnsupportedFormulation
	}
	switch opts.Heuristic {
	case HeuristicAuto, HeuristicZero, HeuristicMST, HeuristicNearestEdge, HeuristicDistanceToStart:
	default:
		return ErrUnsupportedHeuristic
	}
	if opts.MaxExpansions < 0 {
		return fmt.Errorf("%w: negative MaxExpansions", ErrInvalidInput)
	}

	return nil
}
