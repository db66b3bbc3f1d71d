// Package tsp - cost table and tour cost utilities.
//
// Solvers never call matrix.Matrix in their hot loops: the table is
// prefetched once into a flat row-major buffer (costTable) that is only
// read afterwards. This is also what makes a single matrix safe to share
// between concurrent solves.
package tsp

import (
	"github.com/katalvlaran/tspsearch/matrix"
)

// costTable is an immutable dense copy of a validated distance matrix.
type costTable struct {
	n int
	w []float64 // w[u*n+v]

	// symmetric reports w[u*n+v] == w[v*n+u] for every pair.
	symmetric bool
}

// at is a fast accessor into the dense buffer.
func (t *costTable) at(u, v int) float64 { return t.w[u*t.n+v] }

// newCostTable validates dist and prefetches it.
//
// Complexity: O(n²).
func newCostTable(dist matrix.Matrix) (*costTable, error) {
	n, err := validateMatrix(dist)
	if err != nil {
		return nil, err
	}
	t := &costTable{n: n}
	if d, ok := dist.(*matrix.Dense); ok {
		t.w = d.Data()
	} else {
		t.w = make([]float64, n*n)
		var (
			i, j int
			x    float64
		)
		for i = 0; i < n; i++ {
			for j = 0; j < n; j++ {
				// At cannot fail after validateMatrix scanned every cell.
				x, _ = dist.At(i, j)
				t.w[i*n+j] = x
			}
		}
	}
	t.symmetric = t.isSymmetric()

	return t, nil
}

// isSymmetric compares the table against its transpose exactly.
func (t *costTable) isSymmetric() bool {
	for i := 0; i < t.n; i++ {
		for j := i + 1; j < t.n; j++ {
			if t.at(i, j) != t.at(j, i) {
				return false
			}
		}
	}

	return true
}

// tourCost sums consecutive edges of a route.
func (t *costTable) tourCost(route []int) float64 {
	var sum float64
	for i := 0; i+1 < len(route); i++ {
		sum += t.at(route[i], route[i+1])
	}

	return sum
}

// TourCost returns the total cost of walking route over dist, edge by edge.
// route must be closed by the caller if a cycle cost is wanted.
//
// Errors: validation sentinels for dist; ErrDimensionMismatch for a route
// shorter than two entries or with out-of-range indices.
//
// Complexity: O(n²) for validation plus O(len(route)).
func TourCost(dist matrix.Matrix, route []int) (float64, error) {
	t, err := newCostTable(dist)
	if err != nil {
		return 0, err
	}
	if len(route) < 2 {
		return 0, ErrDimensionMismatch
	}
	for _, v := range route {
		if v < 0 || v >= t.n {
			return 0, ErrDimensionMismatch
		}
	}

	return t.tourCost(route), nil
}
