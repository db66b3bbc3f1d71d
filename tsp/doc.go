// Package tsp solves small Travelling Salesman instances with informed
// search, for teaching and side-by-side comparison.
//
// A tour is found by best-first search over partial tours. One engine
// serves three node-selection policies:
//
//   - Greedy Best-First: priority h. Fast, not optimal.
//   - Uniform Cost (UCS): priority g. Optimal.
//   - A*: priority g + h with a spanning-tree lower bound (Prim, or the
//     minimum arborescence on asymmetric tables). Optimal, usually with far
//     fewer expansions than UCS.
//
// A constructive formulation commits to the locally best city at each step
// without backtracking; it shares the same API and trace schema.
//
// Every expansion can be observed through a StepFunc callback receiving
// fixed-shape Step records (current city, candidates with g/h/f, frontier
// size). Records arrive synchronously and in order; a callback may block to
// pace an animation, or return an error to abort.
//
// Inputs are an n×n matrix.Matrix of non-negative finite costs (asymmetric
// allowed, zero diagonal), optional city labels and a start index; 2 ≤ n ≤
// MaxCities. Every input error wraps ErrInvalidInput.
//
// HeldKarp provides an exact reference for n ≤ MaxExactCities, and Compare
// runs several strategies concurrently on one shared matrix.
//
// The package does no I/O and no logging.
package tsp
