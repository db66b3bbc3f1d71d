// Package distance turns a list of named coordinates into the distance
// matrix the solver consumes.
//
// Each ordered pair is resolved through a chain of sources:
//
//	in-process memo → persistent cache → primary provider (OSRM) → fallback (geodesic)
//
// The primary provider is a road-routing service and may fail or be
// unavailable; the geodesic fallback never fails, so Build always returns a
// fully populated matrix once its input is valid. Provider failures are
// logged and counted, never surfaced to the solver.
//
// Distances are kilometres. Cache keys use city names, not coordinates, so
// renaming a city invalidates its cached entries.
package distance
