// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Normalization outcomes.
const (
	OutcomeDescribed = "described"
	OutcomeEmpty     = "empty"
	OutcomeCached    = "cached"
)

var (
	// Normalizations counts normalizer invocations by outcome.
	Normalizations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "describer_normalizations_total",
			Help: "Total number of normalization requests by outcome",
		},
		[]string{"outcome"},
	)

	// SessionOperations counts session list operations.
	SessionOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "describer_session_operations_total",
			Help: "Total number of session list operations",
		},
		[]string{"list", "operation", "status"},
	)

	// AttributeEdits counts attribute editor operations.
	AttributeEdits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "describer_attribute_edits_total",
			Help: "Total number of attribute edit operations",
		},
		[]string{"op", "status"},
	)

	// RequestDuration tracks HTTP handler latency.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "describer_http_request_duration_seconds",
			Help:    "Latency of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Status renders an error as a metric label value.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
