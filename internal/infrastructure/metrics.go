package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors. A single instance is
// created at startup and shared through the application container.
type Metrics struct {
	Registry *prometheus.Registry

	UploadsTotal     *prometheus.CounterVec
	RowsDroppedTotal prometheus.Counter
	ViewRequests     *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		UploadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wealthgap",
			Name:      "uploads_total",
			Help:      "Dataset uploads by outcome (accepted, rejected).",
		}, []string{"outcome"}),
		RowsDroppedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "wealthgap",
			Name:      "rows_dropped_total",
			Help:      "Rows excluded by the cleaning stage across all uploads.",
		}),
		ViewRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wealthgap",
			Name:      "view_requests_total",
			Help:      "View computations by view name.",
		}, []string{"view"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wealthgap",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and status class.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status_class"}),
	}
}
