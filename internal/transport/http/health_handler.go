package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// HealthHandler exposes the health, liveness, readiness and version probes.
type HealthHandler struct {
	service HealthServiceInterface
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service HealthServiceInterface) *HealthHandler {
	return &HealthHandler{service: service}
}

// Routes returns the health routes
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/", h.GetHealth)
	r.Get("/live", h.GetLiveness)
	r.Get("/ready", h.GetReadiness)
	return r
}

// GetHealth handles GET /api/health
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.HealthCheck(r.Context()))
}

// GetLiveness handles GET /api/health/live
func (h *HealthHandler) GetLiveness(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.LivenessCheck(r.Context()))
}

// GetReadiness handles GET /api/health/ready. Not-ready responds 503 so
// orchestrators hold traffic back.
func (h *HealthHandler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	status := h.service.ReadinessCheck(r.Context())
	if status.Status != "ready" {
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, status)
}

// GetVersion handles GET /api/version
func (h *HealthHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Version())
}
