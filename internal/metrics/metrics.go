// Package metrics holds the Prometheus instruments used across the API.
// All collectors are registered with the global registry, so importing
// this package anywhere is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Cumulative number of HTTP requests by method, route pattern, and status.",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ToursPublishedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tours_published_total",
			Help: "Cumulative number of successful tour publications (slug issuances).",
		})
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		ToursPublishedTotal,
	)
}
