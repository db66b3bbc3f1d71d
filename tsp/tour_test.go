package tsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspsearch/tsp"
)

// TestValidateTour enumerates accepted and rejected shapes.
func TestValidateTour(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		tour  []int
		n     int
		start int
		want  error
	}{
		{"ok", []int{0, 1, 3, 2, 0}, 4, 0, nil},
		{"ok other start", []int{2, 0, 1, 2}, 3, 2, nil},
		{"too short", []int{0, 1, 0}, 3, 0, tsp.ErrDimensionMismatch},
		{"not closed", []int{0, 1, 2, 1}, 3, 0, tsp.ErrDimensionMismatch},
		{"wrong start", []int{1, 0, 2, 1}, 3, 0, tsp.ErrDimensionMismatch},
		{"repeat", []int{0, 1, 1, 0}, 3, 0, tsp.ErrDimensionMismatch},
		{"out of range", []int{0, 5, 1, 0}, 3, 0, tsp.ErrDimensionMismatch},
		{"bad start", []int{0, 1, 0}, 2, 4, tsp.ErrStartOutOfRange},
		{"empty", nil, 0, 0, tsp.ErrDimensionMismatch},
		{"repeat hides missing city", []int{0, 2, 2, 1, 0}, 4, 0, tsp.ErrDimensionMismatch},
		{"negative index", []int{0, -1, 1, 0}, 3, 0, tsp.ErrDimensionMismatch},
		{"widest instance", widestTour(tsp.MaxCities), tsp.MaxCities, 0, nil},
		{"beyond set width", widestTour(tsp.MaxCities + 1), tsp.MaxCities + 1, 0, tsp.ErrTooManyCities},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tsp.ValidateTour(tc.tour, tc.n, tc.start)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestTourCost sums edges in walk order.
func TestTourCost(t *testing.T) {
	t.Parallel()
	m := mustDense(t, fourCity)

	got, err := tsp.TourCost(m, []int{0, 1, 3, 2, 0})
	require.NoError(t, err)
	assert.Equal(t, 80.0, got)

	got, err = tsp.TourCost(m, []int{0, 1, 2, 3, 0})
	require.NoError(t, err)
	assert.Equal(t, 95.0, got)

	_, err = tsp.TourCost(m, []int{0})
	require.ErrorIs(t, err, tsp.ErrDimensionMismatch)
	_, err = tsp.TourCost(m, []int{0, 9})
	require.ErrorIs(t, err, tsp.ErrDimensionMismatch)
}

// TestRouteNames renders unknown indices as "?".
func TestRouteNames(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"A", "C", "?", "A"}, tsp.RouteNames([]int{0, 2, 7, 0}, []string{"A", "B", "C"}))
}

// widestTour returns 0, 1, …, n-1, 0.
func widestTour(n int) []int {
	tour := make([]int, n+1)
	for i := range n {
		tour[i] = i
	}

	return tour
}
