package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"wealthgap/internal/dataprocessing"
	apierrors "wealthgap/internal/errors"
	"wealthgap/internal/exporter"
	"wealthgap/internal/middleware"
	"wealthgap/internal/services"
	"wealthgap/internal/validation"
	"wealthgap/pkg/contracts/domain"
)

// uploadFieldName is the multipart form field carrying the dataset file.
const uploadFieldName = "file"

// DashboardHandler handles dataset upload, mapping and view requests with
// RFC 7807 compliance
type DashboardHandler struct {
	service      DashboardServiceInterface
	uploads      *validation.UploadValidator
	validator    *validator.Validate
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler with RFC 7807 error handling
func NewDashboardHandler(service DashboardServiceInterface, uploads *validation.UploadValidator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		uploads:      uploads,
		validator:    validator.New(),
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dataset routes with proper Chi patterns
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.CreateDataset)

	r.Route("/{id}", func(r chi.Router) {
		r.Use(h.DatasetCtx)
		r.Get("/", h.GetDataset)
		r.Put("/mapping", h.SetMapping)
		r.Get("/views/comparison", h.GetComparisonView)
		r.Get("/views/choropleth", h.GetChoroplethView)
		r.Get("/views/poverty-rate", h.GetPovertyRateView)
		r.Get("/export/{view}", h.ExportView)
	})

	return r
}

// DatasetCtx middleware validates the dataset id parameter
func (h *DashboardHandler) DatasetCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("id", "Dataset id is required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CreateDataset handles POST /api/datasets
func (h *DashboardHandler) CreateDataset(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	// Cap the whole multipart body at the configured upload limit.
	if max := h.uploads.MaxSize(); max > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, max)
	}

	file, header, err := r.FormFile(uploadFieldName)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			h.errorHandler.HandleError(w, r, apierrors.ErrUploadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(uploadFieldName, "Multipart upload with a 'file' field is required"))
		return
	}
	defer file.Close()

	if err := h.uploads.Validate(header.Filename, header.Size); err != nil {
		if errors.Is(err, validation.ErrTooLarge) {
			h.errorHandler.HandleError(w, r, apierrors.ErrUploadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(uploadFieldName, err.Error()))
		return
	}

	h.logger.InfoContext(r.Context(), "uploading dataset",
		slog.String("request_id", reqID),
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size),
	)

	summary, err := h.service.CreateDataset(r.Context(), file, header.Filename)
	if err != nil {
		var formatErr *dataprocessing.FormatError
		if errors.As(err, &formatErr) {
			h.errorHandler.HandleError(w, r, apierrors.UnsupportedFormatError(err))
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// GetDataset handles GET /api/datasets/{id}
func (h *DashboardHandler) GetDataset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	summary, err := h.service.Dataset(r.Context(), id)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(id, err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// SetMapping handles PUT /api/datasets/{id}/mapping
func (h *DashboardHandler) SetMapping(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var mapping domain.FieldMapping
	if err := json.NewDecoder(r.Body).Decode(&mapping); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validator.Struct(&mapping); err != nil {
		h.errorHandler.HandleError(w, r, validationErrors(err))
		return
	}

	h.logger.InfoContext(r.Context(), "updating mapping",
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.String("dataset_id", id),
	)

	summary, err := h.service.SetMapping(r.Context(), id, mapping)
	if err != nil {
		if errors.Is(err, dataprocessing.ErrColumnNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("mapping", err.Error()))
			return
		}
		h.errorHandler.HandleError(w, r, h.mapServiceError(id, err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// GetComparisonView handles GET /api/datasets/{id}/views/comparison
func (h *DashboardHandler) GetComparisonView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, err := h.service.ComparisonView(r.Context(), id, selectedStates(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(id, err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
	})
}

// GetChoroplethView handles GET /api/datasets/{id}/views/choropleth
func (h *DashboardHandler) GetChoroplethView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, err := h.service.ChoroplethView(r.Context(), id)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(id, err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
	})
}

// GetPovertyRateView handles GET /api/datasets/{id}/views/poverty-rate
func (h *DashboardHandler) GetPovertyRateView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, err := h.service.PovertyRateView(r.Context(), id)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(id, err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
	})
}

// ExportView handles GET /api/datasets/{id}/export/{view} and streams the
// view as a CSV attachment.
func (h *DashboardHandler) ExportView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view := chi.URLParam(r, "view")

	data, err := h.service.ExportView(r.Context(), id, view, selectedStates(r))
	if err != nil {
		if errors.Is(err, services.ErrUnknownView) {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("view", err.Error()))
			return
		}
		h.errorHandler.HandleError(w, r, h.mapServiceError(id, err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", data.Filename))

	if err := exporter.WriteCSV(w, exporter.WriteOptions{
		Headers:   data.Headers,
		Records:   data.Records,
		BOMPrefix: true,
	}); err != nil {
		// Headers are already sent; all we can do is log.
		h.logger.ErrorContext(r.Context(), "csv export failed",
			slog.String("dataset_id", id),
			slog.String("view", view),
			slog.String("error", err.Error()),
		)
	}
}

// mapServiceError translates service sentinels into API errors.
func (h *DashboardHandler) mapServiceError(id string, err error) error {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return apierrors.DatasetNotFoundError(id)
	case errors.Is(err, services.ErrNoData):
		return apierrors.ErrEmptyDataset
	default:
		return err
	}
}

// selectedStates reads the states query parameter. Both repeated parameters
// and a single comma-separated value are accepted.
func selectedStates(r *http.Request) []string {
	var selected []string
	for _, raw := range r.URL.Query()["states"] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				selected = append(selected, s)
			}
		}
	}
	return selected
}

// validationErrors flattens validator output into one API error.
func validationErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apierrors.InvalidRequestWithError(err)
	}
	fields := make([]apierrors.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apierrors.ValidationError{
			Field:   strings.ToLower(fe.Field()),
			Message: fmt.Sprintf("failed %q validation", fe.Tag()),
		})
	}
	return apierrors.NewValidationErrors(fields)
}
