// Package tsp - frontier priority queue.
//
// The frontier is a container/heap min-heap ordered by (priority, seq).
// seq grows by one on every push, so equal priorities pop in insertion order
// and the whole search is deterministic.
package tsp

import "container/heap"

// frontierItem is one generated-but-not-expanded state.
type frontierItem struct {
	priority float64
	h        float64 // estimate at state, kept for the trace
	seq      uint64
	state    *State
}

// frontierPQ implements heap.Interface.
type frontierPQ []*frontierItem

func (pq frontierPQ) Len() int { return len(pq) }

func (pq frontierPQ) Less(i, j int) bool {
	if pq[i].priority == pq[j].priority {
		return pq[i].seq < pq[j].seq
	}

	return pq[i].priority < pq[j].priority
}

func (pq frontierPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push is called by heap.Push; x must be *frontierItem.
func (pq *frontierPQ) Push(x interface{}) { *pq = append(*pq, x.(*frontierItem)) }

// Pop is called by heap.Pop.
func (pq *frontierPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}

// frontier wraps the heap with the monotonic counter.
type frontier struct {
	pq  frontierPQ
	seq uint64
}

func newFrontier() *frontier {
	f := &frontier{pq: make(frontierPQ, 0, 64)}
	heap.Init(&f.pq)

	return f
}

// push inserts s with the given priority and estimate.
func (f *frontier) push(s *State, priority, h float64) {
	f.seq++
	heap.Push(&f.pq, &frontierItem{priority: priority, h: h, seq: f.seq, state: s})
}

// pop removes the minimum entry. The caller checks len first.
func (f *frontier) pop() *frontierItem {
	return heap.Pop(&f.pq).(*frontierItem)
}

func (f *frontier) len() int { return f.pq.Len() }
