package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"wealthgap/internal/infrastructure"
)

// RequestMetrics records request latency into the shared Prometheus
// histogram, labelled by method and status class (2xx, 4xx, ...).
func RequestMetrics(metrics *infrastructure.Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			statusClass := strconv.Itoa(status/100) + "xx"
			metrics.RequestDuration.
				WithLabelValues(r.Method, statusClass).
				Observe(time.Since(start).Seconds())
		})
	}
}
