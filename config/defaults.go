package config

import (
	"time"

	"github.com/katalvlaran/tspsearch/distance"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: "localhost", Port: 5000, MaxCities: 12},
		OSRM: OSRMConfig{
			Enabled:     true,
			BaseURL:     distance.DefaultOSRMBaseURL,
			Timeout:     10 * time.Second,
			Interval:    100 * time.Millisecond,
			Concurrency: 1,
		},
		Cache:    CacheConfig{Enabled: true, Path: ".tspsearch/cache"},
		Geodesic: GeodesicConfig{Multiplier: distance.DefaultRoadFactor},
		Search: SearchConfig{
			Strategy:    "greedy",
			Formulation: "state-space",
			StepDelay:   500 * time.Millisecond,
		},
		Log:       LogConfig{Level: "info"},
		Scenarios: DefaultScenarios(),
	}
}

// DefaultScenarioID is the scenario sessions start with.
const DefaultScenarioID = 1

// DefaultScenarios returns the two built-in demos.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{
			ID:   1,
			Name: "South-East Asia",
			Cities: []distance.City{
				{Name: "Hà Nội", Lat: 21.0285, Lng: 105.8542},
				{Name: "Bangkok", Lat: 13.7563, Lng: 100.5018},
				{Name: "TP.HCM", Lat: 10.8231, Lng: 106.6297},
				{Name: "Singapore", Lat: 1.3521, Lng: 103.8198},
				{Name: "Kuala Lumpur", Lat: 3.1390, Lng: 101.6869},
				{Name: "Manila", Lat: 14.5995, Lng: 120.9842},
				{Name: "Phnom Penh", Lat: 11.5564, Lng: 104.9282},
				{Name: "Yangon", Lat: 16.8661, Lng: 96.1951},
				{Name: "Vientiane", Lat: 17.9757, Lng: 102.6331},
				{Name: "Jakarta", Lat: -6.2088, Lng: 106.8456},
			},
		},
		{
			ID:   2,
			Name: "Vietnam",
			Cities: []distance.City{
				{Name: "Hà Nội", Lat: 21.0285, Lng: 105.8542},
				{Name: "Ninh Bình", Lat: 20.2506, Lng: 105.9745},
				{Name: "Huế", Lat: 16.4637, Lng: 107.5909},
				{Name: "Nha Trang", Lat: 12.2388, Lng: 109.1967},
				{Name: "TP.HCM", Lat: 10.8231, Lng: 106.6297},
				{Name: "Đồng Tháp", Lat: 10.4938, Lng: 105.6881},
			},
		},
	}
}
