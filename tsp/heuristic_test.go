package tsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspsearch/tsp"
)

// TestHeuristics_FourCity pins each estimator on hand-checked values.
func TestHeuristics_FourCity(t *testing.T) {
	t.Parallel()
	m := mustDense(t, fourCity)
	all := tsp.FullSet(4)

	mst, err := tsp.NewHeuristic(tsp.HeuristicMST, m)
	require.NoError(t, err)
	nearest, err := tsp.NewHeuristic(tsp.HeuristicNearestEdge, m)
	require.NoError(t, err)
	toStart, err := tsp.NewHeuristic(tsp.HeuristicDistanceToStart, m)
	require.NoError(t, err)
	zero, err := tsp.NewHeuristic(tsp.HeuristicZero, m)
	require.NoError(t, err)

	tests := []struct {
		name    string
		h       tsp.HeuristicFunc
		current int
		visited tsp.CitySet
		want    float64
	}{
		// Star around 0: 10 + 15 + 20.
		{"mst/root", mst, 0, tsp.NewCitySet(0), 45},
		{"mst/after 1", mst, 1, tsp.NewCitySet(0, 1), 45},
		// Nodes {3, 2, 0}: 3→2 costs 30 but 2→0 is 15 and 3→0 is 20.
		{"mst/after 1,3", mst, 3, tsp.NewCitySet(0, 1, 3), 35},
		{"mst/complete", mst, 3, all, 20},
		{"nearest/root", nearest, 0, tsp.NewCitySet(0), 20},
		{"nearest/after 1", nearest, 1, tsp.NewCitySet(0, 1), 25 + 15},
		{"nearest/complete", nearest, 2, all, 15},
		{"to start", toStart, 2, tsp.NewCitySet(0, 2), 15},
		{"to start ignores visited", toStart, 2, all, 15},
		{"zero", zero, 3, tsp.NewCitySet(0), 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.h(tc.current, tc.visited, startV))
		})
	}
}

// TestHeuristicMST_Asymmetric uses the costs as given, not symmetrized.
func TestHeuristicMST_Asymmetric(t *testing.T) {
	t.Parallel()
	m := mustDense(t, [][]float64{
		{0, 1, 9},
		{50, 0, 2},
		{60, 70, 0},
	})
	h, err := tsp.NewHeuristic(tsp.HeuristicMST, m)
	require.NoError(t, err)

	// Rooted at 0 over {0,1,2}: 0→1 (1), then 1→2 (2).
	assert.Equal(t, 3.0, h(0, tsp.NewCitySet(0), 0))
	// Rooted at 2: the cheapest entries 0→1 (1) and 1→0 (50) form a cycle,
	// entered from 2 through 2→0 (60 replaces 50): 1 + 60.
	assert.Equal(t, 61.0, h(2, tsp.NewCitySet(0, 2), 0))
}

// TestHeuristicMST_ArborescenceBeatsGreedyTree pins a table where a tree
// grown greedily from current would cost 12 but the remaining leg
// 0→2→1→3 costs only 11.5.
func TestHeuristicMST_ArborescenceBeatsGreedyTree(t *testing.T) {
	t.Parallel()
	m := mustDense(t, [][]float64{
		{0, 1, 10, 100},
		{100, 0, 10, 1},
		{100, 0.5, 0, 100},
		{100, 100, 100, 0},
	})
	h, err := tsp.NewHeuristic(tsp.HeuristicMST, m)
	require.NoError(t, err)

	const start = 3
	assert.Equal(t, 11.5, h(0, tsp.NewCitySet(start, 0), start))

	ucs, err := tsp.Solve(m, nil, start, nil, tsp.Options{Strategy: tsp.UniformCost})
	require.NoError(t, err)
	astar, err := tsp.Solve(m, nil, start, nil, tsp.Options{Strategy: tsp.AStar})
	require.NoError(t, err)
	assert.Equal(t, ucs.Cost, astar.Cost)
	assert.Equal(t, bruteForce(m.ToRows(), start), astar.Cost)
}

// TestHeuristicMST_Admissible never exceeds the true remaining cost, on
// symmetric and asymmetric input alike.
func TestHeuristicMST_Admissible(t *testing.T) {
	t.Parallel()
	rng := newRNG(seedDet + 7)

	for trial := 0; trial < 40; trial++ {
		n := 3 + trial%6
		symmetric := trial%2 == 0
		m := randomMatrix(t, rng, n, symmetric)
		rows := m.ToRows()
		h, err := tsp.NewHeuristic(tsp.HeuristicMST, m)
		require.NoError(t, err)

		opt := bruteForce(rows, startV)
		assert.LessOrEqualf(t, h(startV, tsp.NewCitySet(startV), startV), opt+eps,
			"trial %d n=%d symmetric=%v", trial, n, symmetric)

		// After the first move 0→1 the rest of the tour costs at least h(1).
		rest := bruteForceFrom(rows, 1, startV)
		assert.LessOrEqualf(t, h(1, tsp.NewCitySet(startV, 1), startV), rest+eps,
			"trial %d n=%d symmetric=%v", trial, n, symmetric)
	}
}

// TestNewHeuristic_Errors rejects Auto and invalid matrices.
func TestNewHeuristic_Errors(t *testing.T) {
	t.Parallel()
	m := mustDense(t, fourCity)

	_, err := tsp.NewHeuristic(tsp.HeuristicAuto, m)
	require.ErrorIs(t, err, tsp.ErrUnsupportedHeuristic)

	_, err = tsp.NewHeuristic(tsp.HeuristicMST, mustDense(t, [][]float64{{0, -2}, {1, 0}}))
	require.ErrorIs(t, err, tsp.ErrNegativeWeight)
}

// TestCitySet covers the bitset helpers.
func TestCitySet(t *testing.T) {
	t.Parallel()
	s := tsp.NewCitySet(5, 0, 3)
	assert.True(t, s.Has(3))
	assert.False(t, s.Has(1))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []int{0, 3, 5}, s.Members())
	assert.Equal(t, 4, s.With(1).Len())
	assert.Equal(t, 3, s.With(0).Len())

	assert.Equal(t, 4, tsp.FullSet(4).Len())
	assert.Equal(t, tsp.MaxCities, tsp.FullSet(tsp.MaxCities).Len())
	assert.True(t, tsp.FullSet(tsp.MaxCities).Has(63))
}
