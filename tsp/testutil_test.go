// Package tsp_test provides lightweight helpers shared across *_test.go
// files in this package.
package tsp_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/katalvlaran/tspsearch/matrix"
	"github.com/katalvlaran/tspsearch/tsp"
)

const (
	// eps is the tolerance for cost comparisons across different summation orders.
	eps = 1e-9

	// startV is the canonical start city.
	startV = 0

	// seedDet seeds every random instance.
	seedDet = uint64(42)
)

// fourCity is the classic 4-city instance with optimum 80 (0-1-3-2-0).
var fourCity = [][]float64{
	{0, 10, 15, 20},
	{10, 0, 35, 25},
	{15, 35, 0, 30},
	{20, 25, 30, 0},
}

// mustDense builds a Dense from rows or fails the test.
func mustDense(tb testing.TB, rows [][]float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(tb, err)

	return m
}

// randomMatrix returns an n×n matrix with integer-valued costs in [1, 100].
// Integer costs keep sums exact so equal tours compare equal.
func randomMatrix(tb testing.TB, rng *rand.Rand, n int, symmetric bool) *matrix.Dense {
	tb.Helper()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j || (symmetric && j < i) {
				continue
			}
			rows[i][j] = float64(1 + rng.Intn(100))
			if symmetric {
				rows[j][i] = rows[i][j]
			}
		}
	}

	return mustDense(tb, rows)
}

// newRNG returns a deterministic generator.
func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// bruteForce enumerates every tour from start; usable for n ≤ 8.
func bruteForce(rows [][]float64, start int) float64 {
	n := len(rows)
	rest := make([]int, 0, n-1)
	for v := 0; v < n; v++ {
		if v != start {
			rest = append(rest, v)
		}
	}
	best := -1.0
	var permute func(k int)
	permute = func(k int) {
		if k == len(rest) {
			cost, prev := 0.0, start
			for _, v := range rest {
				cost += rows[prev][v]
				prev = v
			}
			cost += rows[prev][start]
			if best < 0 || cost < best {
				best = cost
			}
			return
		}
		for i := k; i < len(rest); i++ {
			rest[k], rest[i] = rest[i], rest[k]
			permute(k + 1)
			rest[k], rest[i] = rest[i], rest[k]
		}
	}
	permute(0)

	return best
}

// bruteForceFrom returns the cheapest path that leaves first, visits every
// city other than start and first, and ends at start.
func bruteForceFrom(rows [][]float64, first, start int) float64 {
	n := len(rows)
	rest := make([]int, 0, n)
	for v := 0; v < n; v++ {
		if v != start && v != first {
			rest = append(rest, v)
		}
	}
	best := -1.0
	var permute func(k int)
	permute = func(k int) {
		if k == len(rest) {
			cost, prev := 0.0, first
			for _, v := range rest {
				cost += rows[prev][v]
				prev = v
			}
			cost += rows[prev][start]
			if best < 0 || cost < best {
				best = cost
			}
			return
		}
		for i := k; i < len(rest); i++ {
			rest[k], rest[i] = rest[i], rest[k]
			permute(k + 1)
			rest[k], rest[i] = rest[i], rest[k]
		}
	}
	permute(0)

	return best
}

// requireValidTour asserts the closed-tour shape for res.
func requireValidTour(t *testing.T, res tsp.Result, n, start int) {
	t.Helper()
	require.True(t, res.Found)
	require.NoError(t, tsp.ValidateTour(res.Route, n, start))
}

// allOptions enumerates every strategy × formulation pair with defaults.
func allOptions() []tsp.Options {
	out := make([]tsp.Options, 0, 6)
	for _, f := range []tsp.Formulation{tsp.StateSpace, tsp.Constructive} {
		for _, s := range tsp.Strategies {
			out = append(out, tsp.Options{Strategy: s, Formulation: f})
		}
	}

	return out
}
