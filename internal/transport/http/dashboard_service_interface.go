package http

import (
	"context"
	"io"

	"wealthgap/internal/services"
	"wealthgap/pkg/contracts/domain"
)

// DashboardServiceInterface defines the interface for dataset operations
type DashboardServiceInterface interface {
	CreateDataset(ctx context.Context, r io.Reader, filename string) (*domain.DatasetSummary, error)
	Dataset(ctx context.Context, id string) (*domain.DatasetSummary, error)
	SetMapping(ctx context.Context, id string, m domain.FieldMapping) (*domain.DatasetSummary, error)
	ComparisonView(ctx context.Context, id string, selected []string) (*domain.ComparisonView, error)
	ChoroplethView(ctx context.Context, id string) (*domain.ChoroplethView, error)
	PovertyRateView(ctx context.Context, id string) (*domain.RateView, error)
	ExportView(ctx context.Context, id, view string, selected []string) (*services.ExportData, error)
}

// HealthServiceInterface defines the interface for health probes
type HealthServiceInterface interface {
	HealthCheck(ctx context.Context) services.HealthStatus
	LivenessCheck(ctx context.Context) services.HealthStatus
	ReadinessCheck(ctx context.Context) services.HealthStatus
	Version() map[string]interface{}
}
