package tsp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/tspsearch/matrix"
)

// MaxExactCities bounds HeldKarp: the table holds n·2ⁿ entries.
const MaxExactCities = 16

// HeldKarp returns an optimal closed tour from start by dynamic programming
// over subsets. It serves as a reference: reports use it for optimality
// gaps, tests use it as an oracle for the search strategies.
//
// dp[mask][j] is the cheapest path that leaves start, visits exactly the
// cities in mask (start always included) and ends at j. The tour is closed
// by the return edge j→start. Ties are broken toward the lowest index, so the
// route is deterministic.
//
// Errors: validation sentinels for dist and start; ErrExactTooLarge when
// n > MaxExactCities.
//
// Time:  O(n² · 2ⁿ).
// Space: O(n · 2ⁿ).
func HeldKarp(dist matrix.Matrix, start int) ([]int, float64, error) {
	t, err := newCostTable(dist)
	if err != nil {
		return nil, 0, err
	}
	if err = validateStart(t.n, start); err != nil {
		return nil, 0, err
	}
	if t.n > MaxExactCities {
		return nil, 0, fmt.Errorf("%w: %d > %d", ErrExactTooLarge, t.n, MaxExactCities)
	}

	return t.heldKarp(start)
}

func (t *costTable) heldKarp(start int) ([]int, float64, error) {
	var (
		n       = t.n
		full    = 1<<uint(n) - 1
		base    = 1 << uint(start)
		dp      = make([]float64, (full+1)*n)
		parent  = make([]int, (full+1)*n)
		mask, j int
		k, prev int
		c       float64
	)
	for i := range dp {
		dp[i] = math.Inf(1)
		parent[i] = -1
	}
	dp[base*n+start] = 0

	// Masks only grow, so ascending order visits every predecessor first.
	for mask = 0; mask <= full; mask++ {
		if mask&base == 0 {
			continue
		}
		for j = 0; j < n; j++ {
			if j == start || mask&(1<<uint(j)) == 0 {
				continue
			}
			prev = mask ^ 1<<uint(j)
			for k = 0; k < n; k++ {
				if prev&(1<<uint(k)) == 0 || math.IsInf(dp[prev*n+k], 1) {
					continue
				}
				c = dp[prev*n+k] + t.at(k, j)
				if c < dp[mask*n+j] {
					dp[mask*n+j] = c
					parent[mask*n+j] = k
				}
			}
		}
	}

	// Close the cycle.
	bestCost, last := math.Inf(1), -1
	for j = 0; j < n; j++ {
		if j == start || math.IsInf(dp[full*n+j], 1) {
			continue
		}
		if c = dp[full*n+j] + t.at(j, start); c < bestCost {
			bestCost, last = c, j
		}
	}
	if last < 0 {
		return nil, math.Inf(1), nil
	}

	// Walk parents back to start.
	route := make([]int, n+1)
	route[0], route[n] = start, start
	mask = full
	for pos := n - 1; pos >= 1; pos-- {
		route[pos] = last
		prev = parent[mask*n+last]
		mask ^= 1 << uint(last)
		last = prev
	}

	return route, bestCost, nil
}
