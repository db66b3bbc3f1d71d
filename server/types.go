package server

import (
	"github.com/katalvlaran/tspsearch/distance"
	"github.com/katalvlaran/tspsearch/tsp"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is a stable machine-readable code.
	Code string `json:"code,omitempty"`
}

// CitiesResponse describes the session's city list.
type CitiesResponse struct {
	Success  bool            `json:"success"`
	Session  string          `json:"session_id"`
	Scenario int             `json:"scenario"`
	Cities   []distance.City `json:"cities"`
}

// AddCityRequest is the body of POST /api/cities.
type AddCityRequest struct {
	Name string   `json:"name" binding:"required"`
	Lat  *float64 `json:"lat" binding:"required,gte=-90,lte=90"`
	Lng  *float64 `json:"lng" binding:"required,gte=-180,lte=180"`
}

// SolveRequest is the body of POST /api/solve. Empty fields fall back to
// the configured defaults.
type SolveRequest struct {
	Algorithm   string `json:"algorithm"`
	Formulation string `json:"formulation"`
	Start       int    `json:"start" binding:"min=0"`
	// NoTrace omits the step list for large instances.
	NoTrace bool `json:"no_trace"`
}

// SolveResponse is the result of one solve.
type SolveResponse struct {
	Success       bool                `json:"success"`
	Algorithm     string              `json:"algorithm"`
	Title         string              `json:"title"`
	Formulation   string              `json:"formulation"`
	Heuristic     string              `json:"heuristic"`
	Route         []string            `json:"route"`
	RouteIndices  []int               `json:"route_idx"`
	TotalDistance float64             `json:"total_distance"`
	Steps         []tsp.Step          `json:"steps"`
	Time          float64             `json:"time"`
	TimeDisplay   string              `json:"time_display"`
	NodesExplored int                 `json:"nodes_explored"`
	Operations    int                 `json:"operations"`
	Distances     distance.BuildStats `json:"distance_stats"`
}

// CompareRequest is the body of POST /api/compare.
type CompareRequest struct {
	Formulation string `json:"formulation"`
	Start       int    `json:"start" binding:"min=0"`
}

// CompareEntry is one strategy's row.
type CompareEntry struct {
	Distance    float64  `json:"distance"`
	Time        float64  `json:"time"`
	TimeUnit    string   `json:"time_unit"`
	TimeDisplay string   `json:"time_display"`
	Nodes       int      `json:"nodes"`
	Operations  int      `json:"operations"`
	Route       []string `json:"route"`
	// Gap is the relative excess over the exact optimum; omitted when unknown.
	Gap *float64 `json:"gap,omitempty"`
}

// CompareResponse maps strategy titles to rows.
type CompareResponse struct {
	Success bool                    `json:"success"`
	Order   []string                `json:"order"`
	Results map[string]CompareEntry `json:"results"`
	Optimal *float64                `json:"optimal,omitempty"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}
