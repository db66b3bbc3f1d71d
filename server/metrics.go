package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/tspsearch/distance"
	"github.com/katalvlaran/tspsearch/tsp"
)

// Metrics groups the service's Prometheus collectors on a private registry,
// so several servers (as in tests) never collide.
type Metrics struct {
	reg *prometheus.Registry

	solves          *prometheus.CounterVec
	solveDuration   *prometheus.HistogramVec
	nodesExplored   *prometheus.HistogramVec
	distanceLookups *prometheus.CounterVec
}

// NewMetrics registers the collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		solves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tspsearch",
			Name:      "solves_total",
			Help:      "Solves by strategy, formulation and outcome.",
		}, []string{"strategy", "formulation", "outcome"}),
		solveDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tspsearch",
			Name:      "solve_duration_seconds",
			Help:      "Time spent inside the search engine.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"strategy"}),
		nodesExplored: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tspsearch",
			Name:      "nodes_explored",
			Help:      "Expanded search states per solve.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}, []string{"strategy"}),
		distanceLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tspsearch",
			Name:      "distance_lookups_total",
			Help:      "Resolved matrix entries by source.",
		}, []string{"source"}),
	}
}

// ObserveSolve records one finished or failed solve.
func (m *Metrics) ObserveSolve(res tsp.Result, outcome string) {
	strategy := res.Strategy.String()
	m.solves.WithLabelValues(strategy, res.Formulation.String(), outcome).Inc()
	if outcome == outcomeOK {
		m.solveDuration.WithLabelValues(strategy).Observe(res.Elapsed.Seconds())
		m.nodesExplored.WithLabelValues(strategy).Observe(float64(res.NodesExplored))
	}
}

// ObserveLookup counts one matrix entry; pass it as BuilderConfig.OnLookup.
func (m *Metrics) ObserveLookup(src distance.Source) {
	m.distanceLookups.WithLabelValues(string(src)).Inc()
}

// Handler exposes the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

const (
	outcomeOK        = "ok"
	outcomeInvalid   = "invalid"
	outcomeAborted   = "aborted"
	outcomeExhausted = "exhausted"
)
