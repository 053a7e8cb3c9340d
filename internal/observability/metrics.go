package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for upstream request counters.
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
)

// Metrics holds the Prometheus counters for the weather page.
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec // labels: endpoint={geocode,forecast}, outcome={success,empty,error}
	CacheLookups     *prometheus.CounterVec // labels: cache={place,forecast}, result={hit,miss}
	ReportsServed    *prometheus.CounterVec // labels: outcome={ok,empty_input,not_found,fetch_failed}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weathercheck",
			Name:      "upstream_requests_total",
			Help:      "Outbound API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weathercheck",
			Name:      "cache_lookups_total",
			Help:      "TTL cache lookups by cache and result.",
		}, []string{"cache", "result"}),
		ReportsServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weathercheck",
			Name:      "reports_served_total",
			Help:      "Weather report requests by outcome.",
		}, []string{"outcome"}),
	}

	prometheus.MustRegister(
		m.UpstreamRequests,
		m.CacheLookups,
		m.ReportsServed,
	)

	return m
}

// NewMetricsForTesting creates Metrics without touching the default registry,
// so parallel tests do not trip "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weathercheck", Name: "upstream_requests_total"}, []string{"endpoint", "outcome"}),
		CacheLookups:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weathercheck", Name: "cache_lookups_total"}, []string{"cache", "result"}),
		ReportsServed:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weathercheck", Name: "reports_served_total"}, []string{"outcome"}),
	}
}
