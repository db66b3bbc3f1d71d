package distance

import (
	"context"
	"math"
)

const (
	// EarthRadiusKm is the mean Earth radius.
	EarthRadiusKm = 6371.0

	// DefaultRoadFactor scales great-circle distance to approximate road
	// distance when no routing service is available.
	DefaultRoadFactor = 1.3
)

// Haversine returns the great-circle distance between two points in km.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	// Convert latitude and longitude from degrees to radians
	φ1 := lat1 * math.Pi / 180
	φ2 := lat2 * math.Pi / 180
	dφ := (lat2 - lat1) * math.Pi / 180
	dλ := (lng2 - lng1) * math.Pi / 180

	a := math.Pow(math.Sin(dφ/2), 2) + math.Cos(φ1)*math.Cos(φ2)*math.Pow(math.Sin(dλ/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Geodesic estimates road distance as Multiplier × great-circle distance.
// It never fails and is symmetric.
type Geodesic struct {
	// Multiplier ≤ 0 selects DefaultRoadFactor.
	Multiplier float64
}

// Distance implements Provider.
func (g Geodesic) Distance(_ context.Context, from, to City) (float64, error) {
	m := g.Multiplier
	if m <= 0 {
		m = DefaultRoadFactor
	}

	return Haversine(from.Lat, from.Lng, to.Lat, to.Lng) * m, nil
}
