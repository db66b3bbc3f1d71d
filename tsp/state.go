// Package tsp - search state model.
//
// A State is a partial tour. States are values that are never mutated after
// construction: extend and close allocate a fresh path, so a successor never
// aliases its parent's slice.
package tsp

import "math/bits"

// CitySet is a bitset over city indices [0, MaxCities).
type CitySet uint64

// NewCitySet builds a set from explicit members.
func NewCitySet(cities ...int) CitySet {
	var s CitySet
	for _, c := range cities {
		s = s.With(c)
	}

	return s
}

// FullSet returns the set {0, …, n-1}.
func FullSet(n int) CitySet {
	if n >= MaxCities {
		return ^CitySet(0)
	}

	return CitySet(1)<<uint(n) - 1
}

// Has reports whether c is a member.
func (s CitySet) Has(c int) bool { return s&(1<<uint(c)) != 0 }

// With returns s ∪ {c}.
func (s CitySet) With(c int) CitySet { return s | 1<<uint(c) }

// Len returns the cardinality.
func (s CitySet) Len() int { return bits.OnesCount64(uint64(s)) }

// Members returns the members in ascending order.
func (s CitySet) Members() []int {
	out := make([]int, 0, s.Len())
	for v := uint64(s); v != 0; v &= v - 1 {
		out = append(out, bits.TrailingZeros64(v))
	}

	return out
}

// State is one node of the search tree.
type State struct {
	// City is the city the partial tour currently ends at.
	City int

	// Visited always contains the start city and City.
	Visited CitySet

	// Path lists the visited cities in order; Path[0] is the start.
	// For a closed state the start is repeated at the end.
	Path []int

	// G is the literal sum of edge costs along Path.
	G float64

	// Closed marks a complete tour that has returned to the start.
	Closed bool
}

// stateKey identifies states for dominance pruning.
type stateKey struct {
	city    int
	visited CitySet
	closed  bool
}

func (s *State) key() stateKey {
	return stateKey{city: s.City, visited: s.Visited, closed: s.Closed}
}

// initialState is (start, {start}, [start], 0).
func initialState(start int) *State {
	return &State{
		City:    start,
		Visited: NewCitySet(start),
		Path:    []int{start},
	}
}

// extend moves to city at the given edge cost.
func (s *State) extend(city int, edge float64) *State {
	path := make([]int, len(s.Path)+1)
	copy(path, s.Path)
	path[len(s.Path)] = city

	return &State{
		City:    city,
		Visited: s.Visited.With(city),
		Path:    path,
		G:       s.G + edge,
	}
}

// close appends the return leg to the start.
func (s *State) close(start int, edge float64) *State {
	path := make([]int, len(s.Path)+1)
	copy(path, s.Path)
	path[len(s.Path)] = start

	return &State{
		City:    start,
		Visited: s.Visited,
		Path:    path,
		G:       s.G + edge,
		Closed:  true,
	}
}

// last returns the city before the return leg of a closed state,
// or City for an open one.
func (s *State) last() int {
	if s.Closed && len(s.Path) >= 2 {
		return s.Path[len(s.Path)-2]
	}

	return s.City
}

// isComplete reports whether every one of n cities has been visited.
func (s *State) isComplete(n int) bool {
	return s.Visited == FullSet(n)
}
