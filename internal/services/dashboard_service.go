package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"wealthgap/internal/config"
	"wealthgap/internal/dataprocessing"
	"wealthgap/internal/geo"
	"wealthgap/internal/infrastructure"
	"wealthgap/pkg/contracts/domain"
)

// View names accepted by the view and export endpoints.
const (
	ViewComparison  = "comparison"
	ViewChoropleth  = "choropleth"
	ViewPovertyRate = "poverty-rate"
)

// session is one uploaded dataset with its current mapping. Only the raw
// table and the mapping are stored; cleaned rows and views are recomputed
// from scratch on every request so a remap can never leave stale results
// behind.
type session struct {
	filename string
	table    *domain.RawTable
	mapping  domain.FieldMapping
}

// ExportData is a view rendered as a plain table, ready for the CSV
// exporter.
type ExportData struct {
	Filename string
	Headers  []string
	Records  [][]string
}

// DashboardService owns the upload sessions and computes the derived views.
// All methods are safe for concurrent use.
type DashboardService struct {
	cfg     config.UploadConfig
	metrics *infrastructure.Metrics
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewDashboardService creates the service with injected dependencies.
func NewDashboardService(cfg config.UploadConfig, metrics *infrastructure.Metrics, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger,
		sessions: make(map[string]*session),
	}
}

// CreateDataset parses an upload, assigns it a session id and pre-selects
// the default column mapping. Parse failures surface as
// *dataprocessing.FormatError.
func (s *DashboardService) CreateDataset(ctx context.Context, r io.Reader, filename string) (*domain.DatasetSummary, error) {
	table, err := dataprocessing.LoadTable(r, filename)
	if err != nil {
		s.countUpload("rejected")
		s.logger.WarnContext(ctx, "upload rejected",
			slog.String("filename", filename),
			slog.String("error", err.Error()))
		return nil, err
	}

	mapping := dataprocessing.DefaultMapping(table.Columns)
	sess := &session{
		filename: filename,
		table:    table,
		mapping:  mapping,
	}
	id := uuid.New().String()

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	rows, stats := dataprocessing.Clean(table, mapping)
	s.countUpload("accepted")
	s.countDropped(stats)

	s.logger.InfoContext(ctx, "dataset uploaded",
		slog.String("dataset_id", id),
		slog.String("filename", filename),
		slog.Int("columns", len(table.Columns)),
		slog.Int("rows", len(table.Rows)),
		slog.Int("kept_rows", stats.KeptRows),
		slog.Int("dropped_rows", stats.Dropped()))

	return s.summary(id, sess, mapping, rows), nil
}

// Dataset returns the summary of an existing session.
func (s *DashboardService) Dataset(ctx context.Context, id string) (*domain.DatasetSummary, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	mapping := sess.mapping
	s.mu.RUnlock()

	rows, _ := dataprocessing.Clean(sess.table, mapping)
	return s.summary(id, sess, mapping, rows), nil
}

// SetMapping replaces the session's column mapping wholesale and returns the
// summary recomputed under the new mapping. The only check is that every
// mapped column exists in the header; semantic correctness is the user's
// responsibility.
func (s *DashboardService) SetMapping(ctx context.Context, id string, m domain.FieldMapping) (*domain.DatasetSummary, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	if err := dataprocessing.ValidateMapping(m, sess.table); err != nil {
		return nil, err
	}

	s.mu.Lock()
	sess.mapping = m
	s.mu.Unlock()

	rows, stats := dataprocessing.Clean(sess.table, m)
	s.countDropped(stats)

	s.logger.InfoContext(ctx, "mapping updated",
		slog.String("dataset_id", id),
		slog.Int("kept_rows", stats.KeptRows),
		slog.Int("dropped_rows", stats.Dropped()))

	return s.summary(id, sess, m, rows), nil
}

// ComparisonView aggregates poverty and millionaire counts for the selected
// states. An empty or unmatched selection is not an error; the payload
// carries a warning instead so the client can render an empty chart.
func (s *DashboardService) ComparisonView(ctx context.Context, id string, selected []string) (*domain.ComparisonView, error) {
	rows, err := s.cleanedRows(id)
	if err != nil {
		return nil, err
	}
	s.countView(ViewComparison)

	view := &domain.ComparisonView{}
	if len(selected) == 0 {
		view.States = []domain.StateComparison{}
		view.Warning = "no states selected; pick at least one state to compare"
		return view, nil
	}

	view.States = dataprocessing.CompareStates(rows, selected)
	switch {
	case len(view.States) == 0:
		view.Warning = "none of the selected states appear in the dataset"
	case len(selected) < s.cfg.MinCompareStates:
		view.Warning = fmt.Sprintf("select at least %d states for a meaningful comparison", s.cfg.MinCompareStates)
		view.Narrative = dataprocessing.ComparisonNarrative()
	default:
		view.Narrative = dataprocessing.ComparisonNarrative()
	}
	return view, nil
}

// ChoroplethView joins the cleaned rows to USPS postal codes for the
// millionaire-density map. Rows whose state name does not resolve are
// silently excluded; a payload with zero resolved rows carries a warning.
func (s *DashboardService) ChoroplethView(ctx context.Context, id string) (*domain.ChoroplethView, error) {
	rows, err := s.cleanedRows(id)
	if err != nil {
		return nil, err
	}
	s.countView(ViewChoropleth)

	view := &domain.ChoroplethView{Entries: geo.ResolveRows(rows)}
	if len(view.Entries) == 0 {
		view.Warning = ErrNoValidStates.Error()
		return view, nil
	}

	// The narrative ranks the resolved subset only; names that never made
	// it onto the map must not headline its interpretation.
	mapped := make([]domain.StateRow, len(view.Entries))
	for i, entry := range view.Entries {
		mapped[i] = entry.StateRow
	}
	ranked := dataprocessing.RankByMetric(mapped, dataprocessing.MetricMillionaireDensity)
	view.Narrative = dataprocessing.DensityNarrative(ranked)
	return view, nil
}

// PovertyRateView ranks the states by poverty rate, highest first.
func (s *DashboardService) PovertyRateView(ctx context.Context, id string) (*domain.RateView, error) {
	rows, err := s.cleanedRows(id)
	if err != nil {
		return nil, err
	}
	s.countView(ViewPovertyRate)

	view := &domain.RateView{
		Entries: dataprocessing.RankByMetric(rows, dataprocessing.MetricPovertyRate),
	}
	view.Narrative = dataprocessing.PovertyNarrative(view.Entries)
	return view, nil
}

// ExportView renders a view as a plain table for CSV download. The states
// parameter only applies to the comparison view.
func (s *DashboardService) ExportView(ctx context.Context, id, view string, selected []string) (*ExportData, error) {
	switch view {
	case ViewComparison:
		v, err := s.ComparisonView(ctx, id, selected)
		if err != nil {
			return nil, err
		}
		records := make([][]string, len(v.States))
		for i, st := range v.States {
			records[i] = []string{
				st.StateName,
				formatCount(st.PovertyCount),
				formatCount(st.MillionaireCount),
			}
		}
		return &ExportData{
			Filename: "comparison.csv",
			Headers:  []string{"State", "Number in Poverty", "Number of Millionaires"},
			Records:  records,
		}, nil

	case ViewChoropleth:
		v, err := s.ChoroplethView(ctx, id)
		if err != nil {
			return nil, err
		}
		records := make([][]string, len(v.Entries))
		for i, e := range v.Entries {
			records[i] = []string{
				e.StateName,
				e.StateCode,
				formatCount(e.Population),
				fmt.Sprintf("%.6f", e.MillionaireDensity),
			}
		}
		return &ExportData{
			Filename: "millionaire_density.csv",
			Headers:  []string{"State", "Code", "Population", "Millionaire Density"},
			Records:  records,
		}, nil

	case ViewPovertyRate:
		v, err := s.PovertyRateView(ctx, id)
		if err != nil {
			return nil, err
		}
		records := make([][]string, len(v.Entries))
		for i, e := range v.Entries {
			records[i] = []string{
				e.StateName,
				fmt.Sprintf("%.1f", e.Rate*100),
			}
		}
		return &ExportData{
			Filename: "poverty_rate.csv",
			Headers:  []string{"State", "Poverty Rate (%)"},
			Records:  records,
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownView, view)
}

// SessionCount reports how many upload sessions are held in memory.
func (s *DashboardService) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *DashboardService) session(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// cleanedRows recomputes the clean table for a session. A dataset that
// cleans down to nothing is the only hard failure at view time.
func (s *DashboardService) cleanedRows(id string) ([]domain.StateRow, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	mapping := sess.mapping
	s.mu.RUnlock()

	rows, _ := dataprocessing.Clean(sess.table, mapping)
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	return rows, nil
}

// summary takes the mapping as an argument rather than reading it off the
// session so callers can pass the snapshot they took under s.mu.
func (s *DashboardService) summary(id string, sess *session, mapping domain.FieldMapping, rows []domain.StateRow) *domain.DatasetSummary {
	preview := sess.table.Rows
	if len(preview) > s.cfg.PreviewRows {
		preview = preview[:s.cfg.PreviewRows]
	}
	return &domain.DatasetSummary{
		ID:       id,
		Filename: sess.filename,
		Columns:  sess.table.Columns,
		RowCount: len(sess.table.Rows),
		Preview:  preview,
		Mapping:  mapping,
		States:   dataprocessing.States(rows),
	}
}

func (s *DashboardService) countUpload(outcome string) {
	if s.metrics != nil {
		s.metrics.UploadsTotal.WithLabelValues(outcome).Inc()
	}
}

func (s *DashboardService) countDropped(stats dataprocessing.CleanStats) {
	if s.metrics != nil {
		s.metrics.RowsDroppedTotal.Add(float64(stats.Dropped()))
	}
}

func (s *DashboardService) countView(view string) {
	if s.metrics != nil {
		s.metrics.ViewRequests.WithLabelValues(view).Inc()
	}
}

// formatCount renders a summed count without a decimal point when it is
// integral, matching how counts appear in the source data.
func formatCount(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
