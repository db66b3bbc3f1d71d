// Package tsp - tour utilities.
//
// Helpers that operate purely on tour structure (index sequences), without
// depending on distance matrices:
//   - ValidateTour: check a route is a closed Hamiltonian cycle.
//   - RouteNames: map a route onto city labels for display.
package tsp

// ValidateTour reports whether tour is a closed Hamiltonian cycle over
// [0, n) that leaves from and returns to start. Instances larger than
// MaxCities are rejected with ErrTooManyCities, like the engine does.
func ValidateTour(tour []int, n int, start int) error {
	switch {
	case n <= 0 || len(tour) != n+1:
		return ErrDimensionMismatch
	case n > MaxCities:
		return ErrTooManyCities
	case start < 0 || start >= n:
		return ErrStartOutOfRange
	case tour[0] != start || tour[n] != start:
		return ErrDimensionMismatch
	}

	var seen CitySet
	for _, v := range tour[:n] {
		if v < 0 || v >= n || seen.Has(v) {
			return ErrDimensionMismatch
		}
		seen = seen.With(v)
	}

	return nil
}

// RouteNames maps indices to labels. Indices outside cities are rendered
// as "?" rather than failing, since this is display-only.
func RouteNames(route []int, cities []string) []string {
	out := make([]string, len(route))
	for i, v := range route {
		if v >= 0 && v < len(cities) {
			out[i] = cities[v]
		} else {
			out[i] = "?"
		}
	}

	return out
}
