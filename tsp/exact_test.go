package tsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspsearch/matrix"
	"github.com/katalvlaran/tspsearch/tsp"
)

// TestHeldKarp_FourCity returns a valid optimal tour.
func TestHeldKarp_FourCity(t *testing.T) {
	t.Parallel()
	route, cost, err := tsp.HeldKarp(mustDense(t, fourCity), startV)
	require.NoError(t, err)
	assert.Equal(t, 80.0, cost)
	require.NoError(t, tsp.ValidateTour(route, 4, startV))

	got, err := tsp.TourCost(mustDense(t, fourCity), route)
	require.NoError(t, err)
	assert.Equal(t, cost, got)
}

// TestHeldKarp_BruteForce cross-checks random instances from every start.
func TestHeldKarp_BruteForce(t *testing.T) {
	t.Parallel()
	rng := newRNG(seedDet + 8)

	for trial := 0; trial < 10; trial++ {
		n := 2 + trial%7
		m := randomMatrix(t, rng, n, trial%2 == 1)
		for start := 0; start < n; start++ {
			route, cost, err := tsp.HeldKarp(m, start)
			require.NoError(t, err)
			require.NoError(t, tsp.ValidateTour(route, n, start))
			assert.InDeltaf(t, bruteForce(m.ToRows(), start), cost, eps, "trial %d start %d", trial, start)
		}
	}
}

// TestHeldKarp_Errors covers the size cap and start validation.
func TestHeldKarp_Errors(t *testing.T) {
	t.Parallel()
	big, err := matrix.NewDense(tsp.MaxExactCities+1, tsp.MaxExactCities+1)
	require.NoError(t, err)
	_, _, err = tsp.HeldKarp(big, 0)
	require.ErrorIs(t, err, tsp.ErrExactTooLarge)

	_, _, err = tsp.HeldKarp(mustDense(t, fourCity), 7)
	require.ErrorIs(t, err, tsp.ErrStartOutOfRange)
}
