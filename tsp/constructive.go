// Package tsp - constructive single-pass engine.
//
// The constructive formulation commits to one city per step and never
// backtracks. At each of the n-1 steps every unvisited city is evaluated
// once and the minimum under the strategy rule is appended irrevocably:
//
//	Greedy min h,  UCS min g,  A* min g + h.
//
// Ties go to the lowest city index. The tour is closed with the return edge
// after the last commit. The result is always a feasible tour but carries no
// optimality guarantee for any strategy.
//
// Counters:
//
//	NodesExplored  evaluated candidates
//	Operations     evaluations plus commits
package tsp

import (
	"context"
	"fmt"
)

// runConstructive reuses the engine configuration and ordering rule.
func (e *searchEngine) runConstructive(ctx context.Context) (Result, error) {
	var (
		n        = e.t.n
		res      = exhaustedResult()
		cur      = initialState(e.start)
		curH     = e.h(e.start, cur.Visited, e.start)
		next     *State
		chosen   *State
		chosenH  float64
		bestPrio float64
		edge, h  float64
		prio     float64
		cands    []Candidate
		pick     int
		commits  int
		err      error
	)

	if err = e.tr.emit(Step{
		Current:    e.start,
		H:          e.traceH(curH),
		F:          e.fValue(0, curH),
		Visited:    append([]int(nil), cur.Path...),
		Candidates: []Candidate{},
	}); err != nil {
		return e.finish(res), err
	}

	for !cur.isComplete(n) {
		if err = ctx.Err(); err != nil {
			return e.finish(res), err
		}
		if e.maxExp > 0 && commits >= e.maxExp {
			return e.finish(res), fmt.Errorf("%w: %d commits", ErrExpansionLimit, e.maxExp)
		}

		cands = make([]Candidate, 0, n-cur.Visited.Len())
		chosen, pick = nil, -1
		for c := 0; c < n; c++ {
			if cur.Visited.Has(c) {
				continue
			}
			edge = e.t.at(cur.City, c)
			next = cur.extend(c, edge)
			h = e.h(c, next.Visited, e.start)
			prio = e.priority(next.G, h)
			res.NodesExplored++
			res.Operations++
			if chosen == nil || prio < bestPrio {
				chosen, chosenH, bestPrio, pick = next, h, prio, len(cands)
			}
			cands = append(cands, Candidate{
				City: c, Distance: edge, G: next.G,
				H: e.traceH(h), F: e.fValue(next.G, h),
			})
		}
		cands[pick].Pushed = true

		if err = e.tr.emit(Step{
			Current:       cur.City,
			Next:          cityRef(chosen.City),
			Distance:      cands[pick].Distance,
			G:             cur.G,
			H:             e.traceH(curH),
			F:             e.fValue(cur.G, curH),
			TotalDistance: cur.G,
			Visited:       append([]int(nil), cur.Path...),
			Candidates:    cands,
		}); err != nil {
			return e.finish(res), err
		}

		cur, curH = chosen, chosenH
		commits++
		res.Operations++
	}

	ret := e.t.at(cur.City, e.start)
	closed := cur.close(e.start, ret)
	res.Route = append([]int(nil), closed.Path...)
	res.Cost = closed.G
	res.Found = true
	err = e.tr.emit(Step{
		Current:       cur.City,
		Next:          cityRef(e.start),
		Distance:      ret,
		G:             cur.G,
		H:             e.traceH(curH),
		F:             e.fValue(cur.G, curH),
		TotalDistance: closed.G,
		Visited:       append([]int(nil), closed.Path...),
		Candidates:    []Candidate{},
	})

	return e.finish(res), err
}
