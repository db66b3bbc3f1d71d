// Package tsp - spanning structures used by the MST bound.
//
// A tour's remaining leg is a path leaving current, covering the unvisited
// cities and ending at start. Read undirected it is a spanning tree of those
// nodes; read directed it is a spanning arborescence rooted at current. The
// bound is therefore Prim's tree weight on symmetric tables and the minimum
// arborescence weight (Chu-Liu/Edmonds) otherwise. Both read costs as given
// and coincide whenever the table is symmetric.
package tsp

import "math"

// mstWeight returns the total weight of a minimum spanning tree over the
// given node subset, grown from nodes[0] with Prim's algorithm.
//
// Costs are read as given: the edge used to attach v is w[u→v] for u already
// in the tree. On an asymmetric table this greedy tree can exceed the
// cheapest arborescence, so mstBound only uses it for symmetric tables.
// Duplicate nodes are the caller's responsibility.
//
// Returns +Inf if some node cannot be attached (only possible with +Inf
// entries, which validation rejects).
//
// Time:  O(k²) for k = len(nodes).
// Space: O(k).
func (t *costTable) mstWeight(nodes []int) float64 {
	k := len(nodes)
	if k <= 1 {
		return 0
	}

	// Track which subset positions are in the tree.
	inTree := make([]bool, k)
	// Best edge weight to connect each position to the growing tree.
	best := make([]float64, k)
	var (
		it, i, u int
		minW     float64
		total    float64
		c        float64
	)
	for i = range best {
		best[i] = math.Inf(1)
	}
	best[0] = 0

	for it = 0; it < k; it++ {
		// (a) Pick the cheapest position not yet in the tree (lowest index on ties).
		u, minW = -1, math.Inf(1)
		for i = 0; i < k; i++ {
			if !inTree[i] && (u < 0 || best[i] < minW) {
				u, minW = i, best[i]
			}
		}
		if math.IsInf(minW, 1) {
			return math.Inf(1)
		}
		// (b) Attach it.
		inTree[u] = true
		total += minW
		// (c) Relax outgoing edges u→v.
		for i = 0; i < k; i++ {
			if inTree[i] {
				continue
			}
			c = t.at(nodes[u], nodes[i])
			if c < best[i] {
				best[i] = c
			}
		}
	}

	return total
}

// arc is a directed edge between positions of a contracted node list.
type arc struct {
	u, v int
	w    float64
}

// arborescenceWeight returns the weight of the minimum spanning
// arborescence rooted at nodes[0], using w[u→v] as given.
//
// Chu-Liu/Edmonds: every non-root picks its cheapest incoming arc; if those
// picks form a cycle, the cycle is contracted into one node, arcs entering
// it are reduced by the pick they would replace, and the step repeats.
//
// Time:  O(k³) for k = len(nodes) (at most k contractions of O(k²) arcs).
// Space: O(k²).
func (t *costTable) arborescenceWeight(nodes []int) float64 {
	k := len(nodes)
	if k <= 1 {
		return 0
	}

	arcs := make([]arc, 0, k*(k-1))
	for i := range nodes {
		for j := 1; j < k; j++ {
			if i != j {
				arcs = append(arcs, arc{u: i, v: j, w: t.at(nodes[i], nodes[j])})
			}
		}
	}

	var (
		in    = make([]float64, k)
		pre   = make([]int, k)
		comp  = make([]int, k)
		mark  = make([]int, k)
		root  = 0
		size  = k
		total float64
		i, v  int
		cnt   int
		a     arc
		next  []arc
	)
	for {
		// (a) Cheapest incoming arc per node.
		for i = 0; i < size; i++ {
			in[i] = math.Inf(1)
		}
		for _, a = range arcs {
			if a.w < in[a.v] {
				in[a.v], pre[a.v] = a.w, a.u
			}
		}
		in[root] = 0
		for i = 0; i < size; i++ {
			if math.IsInf(in[i], 1) {
				return math.Inf(1)
			}
		}

		// (b) Sum the picks and label the cycles they form.
		cnt = 0
		for i = 0; i < size; i++ {
			comp[i], mark[i] = -1, -1
		}
		for i = 0; i < size; i++ {
			total += in[i]
			for v = i; mark[v] != i && comp[v] == -1 && v != root; v = pre[v] {
				mark[v] = i
			}
			if v != root && comp[v] == -1 {
				for u := pre[v]; u != v; u = pre[u] {
					comp[u] = cnt
				}
				comp[v] = cnt
				cnt++
			}
		}
		if cnt == 0 {
			return total
		}

		// (c) Contract: every node outside a cycle becomes its own component.
		for i = 0; i < size; i++ {
			if comp[i] == -1 {
				comp[i] = cnt
				cnt++
			}
		}
		next = arcs[:0]
		for _, a = range arcs {
			if comp[a.u] != comp[a.v] {
				next = append(next, arc{u: comp[a.u], v: comp[a.v], w: a.w - in[a.v]})
			}
		}
		arcs = next
		root = comp[root]
		size = cnt
	}
}
