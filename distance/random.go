package distance

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Bounds of the demo region (roughly mainland and maritime South-East Asia).
const (
	randMinLat, randMaxLat = -8.0, 22.0
	randMinLng, randMaxLng = 95.0, 122.0
)

// RandomCities returns n uniformly placed cities named "C01", "C02", …
// The same seed always yields the same cities.
func RandomCities(n int, seed uint64) []City {
	rng := rand.New(rand.NewSource(seed))
	out := make([]City, n)
	for i := range out {
		out[i] = City{
			Name: fmt.Sprintf("C%02d", i+1),
			Lat:  randMinLat + rng.Float64()*(randMaxLat-randMinLat),
			Lng:  randMinLng + rng.Float64()*(randMaxLng-randMinLng),
		}
	}

	return out
}
