// Package tsp - state-space best-first engine.
//
// One engine serves all three strategies; only the priority function
// differs:
//
//	UCS    priority = g
//	Greedy priority = h
//	A*     priority = g + h
//
// Lifecycle: Init → Expanding → (Goal | Exhausted).
//
// The return leg is an explicit transition. Expanding a state that has
// visited every city generates a single "closed" successor whose g includes
// the edge back to the start, and the goal test is "a closed state was
// popped". UCS therefore pops tours in order of full cycle cost.
//
// Dominance: explored maps (city, visited, closed) to the g at which the
// key was expanded. A popped entry whose key is already explored at ≤ g is
// discarded without counting. A successor is pushed only when its key is
// unexplored or explored at a strictly greater g.
//
// Counters:
//
//	NodesExplored  non-dominated pops (the goal pop included)
//	Operations     every pop plus every successor evaluation
package tsp

import (
	"context"
	"fmt"
)

// searchEngine holds the per-solve configuration. Everything mutable
// (frontier, explored, counters, tracer) lives in run, so one engine value
// must not be shared between goroutines but the costTable may.
type searchEngine struct {
	t        *costTable
	start    int
	strategy Strategy
	h        HeuristicFunc
	maxExp   int
	tr       *tracer
}

// priority applies the strategy's ordering rule.
func (e *searchEngine) priority(g, h float64) float64 {
	switch e.strategy {
	case UniformCost:
		return g
	case Greedy:
		return h
	default:
		return g + h
	}
}

// fValue is the F reported in traces: meaningful for A* only.
func (e *searchEngine) fValue(g, h float64) float64 {
	if e.strategy == AStar {
		return g + h
	}

	return 0
}

// traceH hides the estimate from UCS traces.
func (e *searchEngine) traceH(h float64) float64 {
	if e.strategy == UniformCost {
		return 0
	}

	return h
}

// run executes the search. On success Result.Route, Cost and Found are set;
// the caller stamps the descriptive fields.
func (e *searchEngine) run(ctx context.Context) (Result, error) {
	var (
		n        = e.t.n
		fr       = newFrontier()
		explored = make(map[stateKey]float64, 1<<uint(min(n, 16)))
		res      = exhaustedResult()

		item     *frontierItem
		s, next  *State
		key      stateKey
		best     float64
		seen     bool
		edge, h  float64
		prio     float64
		bestPrio float64
		nextCity int
		cands    []Candidate
		pushed   bool
		err      error
	)

	// Init.
	root := initialState(e.start)
	h = e.h(e.start, root.Visited, e.start)
	fr.push(root, e.priority(0, h), h)
	if err = e.tr.emit(Step{
		Current:      e.start,
		H:            e.traceH(h),
		F:            e.fValue(0, h),
		Visited:      append([]int(nil), root.Path...),
		Candidates:   []Candidate{},
		FrontierSize: fr.len(),
	}); err != nil {
		return e.finish(res), err
	}

	for fr.len() > 0 {
		item = fr.pop()
		res.Operations++
		s = item.state
		key = s.key()
		if best, seen = explored[key]; seen && best <= s.G {
			continue
		}

		// Expansion boundary.
		if err = ctx.Err(); err != nil {
			return e.finish(res), err
		}
		if e.maxExp > 0 && res.NodesExplored >= e.maxExp {
			return e.finish(res), fmt.Errorf("%w: %d expansions", ErrExpansionLimit, e.maxExp)
		}

		explored[key] = s.G
		res.NodesExplored++

		// Goal.
		if s.Closed {
			res.Route = append([]int(nil), s.Path...)
			res.Cost = s.G
			res.Found = true
			err = e.emitGoal(s, fr.len())

			return e.finish(res), err
		}

		// Expansion.
		cands = make([]Candidate, 0, n-s.Visited.Len()+1)
		nextCity, bestPrio = -1, 0
		if s.isComplete(n) {
			edge = e.t.at(s.City, e.start)
			next = s.close(e.start, edge)
			h = 0
			prio = e.priority(next.G, h)
			pushed = e.admit(explored, next)
			res.Operations++
			if pushed {
				fr.push(next, prio, h)
				nextCity, bestPrio = e.start, prio
			}
			cands = append(cands, Candidate{
				City: e.start, Distance: edge, G: next.G,
				H: e.traceH(h), F: e.fValue(next.G, h), Pushed: pushed,
			})
		} else {
			for c := 0; c < n; c++ {
				if s.Visited.Has(c) {
					continue
				}
				edge = e.t.at(s.City, c)
				next = s.extend(c, edge)
				h = e.h(c, next.Visited, e.start)
				prio = e.priority(next.G, h)
				pushed = e.admit(explored, next)
				res.Operations++
				if pushed {
					fr.push(next, prio, h)
					if nextCity < 0 || prio < bestPrio {
						nextCity, bestPrio = c, prio
					}
				}
				cands = append(cands, Candidate{
					City: c, Distance: edge, G: next.G,
					H: e.traceH(h), F: e.fValue(next.G, h), Pushed: pushed,
				})
			}
		}

		step := Step{
			Current:       s.City,
			G:             s.G,
			H:             e.traceH(item.h),
			F:             e.fValue(s.G, item.h),
			TotalDistance: s.G,
			Visited:       append([]int(nil), s.Path...),
			Candidates:    cands,
			FrontierSize:  fr.len(),
		}
		if nextCity >= 0 {
			step.Next = cityRef(nextCity)
			step.Distance = e.t.at(s.City, nextCity)
		}
		if err = e.tr.emit(step); err != nil {
			return e.finish(res), err
		}
	}

	// Exhausted: unreachable on a complete finite graph, kept as a sentinel.
	return e.finish(res), nil
}

// admit applies the push rule for successor s.
func (e *searchEngine) admit(explored map[stateKey]float64, s *State) bool {
	best, seen := explored[s.key()]

	return !seen || best > s.G
}

// emitGoal reports the popped closed tour: Current is the last city before
// the return leg and Visited is the full route.
func (e *searchEngine) emitGoal(s *State, frontierSize int) error {
	last := s.last()
	ret := e.t.at(last, e.start)
	g := e.t.tourCost(s.Path[:len(s.Path)-1])
	h := e.h(last, s.Visited, e.start)

	return e.tr.emit(Step{
		Current:       last,
		Next:          cityRef(e.start),
		Distance:      ret,
		G:             g,
		H:             e.traceH(h),
		F:             e.fValue(g, h),
		TotalDistance: s.G,
		Visited:       append([]int(nil), s.Path...),
		Candidates:    []Candidate{},
		FrontierSize:  frontierSize,
	})
}

// finish copies the tracer count into res.
func (e *searchEngine) finish(res Result) Result {
	res.Steps = e.tr.count

	return res
}
