package distance

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoCities is returned by Build for an empty city list.
	ErrNoCities = errors.New("distance: no cities")

	// ErrDuplicateCity is returned when two cities share a name.
	ErrDuplicateCity = errors.New("distance: duplicate city name")

	// ErrInvalidCoordinate is returned for out-of-range or non-finite coordinates.
	ErrInvalidCoordinate = errors.New("distance: invalid coordinate")

	// ErrNoRoute is returned by a provider that answered without a route.
	ErrNoRoute = errors.New("distance: no route")

	// ErrUpstream is returned when a provider responds with an unexpected status.
	ErrUpstream = errors.New("distance: upstream failure")
)

// City is a named point in decimal degrees.
type City struct {
	Name string  `json:"name" yaml:"name" validate:"required"`
	Lat  float64 `json:"lat" yaml:"lat" validate:"gte=-90,lte=90"`
	Lng  float64 `json:"lng" yaml:"lng" validate:"gte=-180,lte=180"`
}

// Validate checks the name and coordinate ranges.
func (c City) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidCoordinate)
	}
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: %s (%v, %v)", ErrInvalidCoordinate, c.Name, c.Lat, c.Lng)
	}

	return nil
}

// Names returns the city names in order.
func Names(cities []City) []string {
	out := make([]string, len(cities))
	for i, c := range cities {
		out[i] = c.Name
	}

	return out
}

// validateCities rejects empty lists, bad coordinates and duplicate names.
func validateCities(cities []City) error {
	if len(cities) == 0 {
		return ErrNoCities
	}
	seen := make(map[string]struct{}, len(cities))
	for _, c := range cities {
		if err := c.Validate(); err != nil {
			return err
		}
		if _, ok := seen[c.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateCity, c.Name)
		}
		seen[c.Name] = struct{}{}
	}

	return nil
}
