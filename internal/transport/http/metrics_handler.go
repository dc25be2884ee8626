package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wealthgap/internal/infrastructure"
)

// MetricsHandler serves the Prometheus scrape endpoint from the
// application's own registry.
func MetricsHandler(metrics *infrastructure.Metrics) http.Handler {
	return promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})
}
