package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geoload_requests_total",
			Help: "Total number of HTTP requests per route and status code",
		},
		[]string{"path", "code"},
	)

	RequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "geoload_request_duration_seconds",
			Help:    "Request duration in seconds per route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	InvalidLoadInputTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geoload_invalid_load_input_total",
			Help: "Total number of rejected load arrays per source",
		},
		[]string{"source"},
	)

	ProfileImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geoload_profile_imports_total",
			Help: "Total number of tabular profile imports per result",
		},
		[]string{"result"},
	)

	CombinedLoadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geoload_combined_loads_total",
			Help: "Total number of loads added together",
		},
	)
)

// ObserveImport counts one profile import.
func ObserveImport(err error) {
	if err != nil {
		ProfileImportsTotal.WithLabelValues("error").Inc()
		return
	}
	ProfileImportsTotal.WithLabelValues("ok").Inc()
}
