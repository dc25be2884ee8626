package dataprocessing

import (
	"math"
	"strconv"
	"strings"

	"wealthgap/pkg/contracts/domain"
)

// CleanStats counts what the cleaning stage kept and dropped, for logging
// and the upload metrics.
type CleanStats struct {
	TotalRows      int
	KeptRows       int
	MissingValues  int
	ZeroPopulation int
}

// Dropped returns the number of rows excluded by cleaning.
func (s CleanStats) Dropped() int {
	return s.TotalRows - s.KeptRows
}

// Clean applies the mapping to the raw table and produces the cleaned rows:
// the three numeric roles are coerced per cell, rows missing the state name
// or any numeric value are dropped, and the two ratios are derived for every
// surviving row.
//
// Rows with population <= 0 are dropped as well, so derived ratios are
// always finite. Clean is a pure function: the same table and mapping always
// yield the same output.
func Clean(table *domain.RawTable, m domain.FieldMapping) ([]domain.StateRow, CleanStats) {
	stats := CleanStats{TotalRows: len(table.Rows)}

	stateIdx := table.ColumnIndex(m.State)
	popIdx := table.ColumnIndex(m.Population)
	povIdx := table.ColumnIndex(m.Poverty)
	milIdx := table.ColumnIndex(m.Millionaires)

	cleaned := make([]domain.StateRow, 0, len(table.Rows))
	for i := range table.Rows {
		state := strings.TrimSpace(table.Cell(i, stateIdx))
		if state == "" {
			stats.MissingValues++
			continue
		}

		population, okPop := parseNumber(table.Cell(i, popIdx))
		poverty, okPov := parseNumber(table.Cell(i, povIdx))
		millionaires, okMil := parseNumber(table.Cell(i, milIdx))
		if !okPop || !okPov || !okMil {
			stats.MissingValues++
			continue
		}
		if population <= 0 {
			stats.ZeroPopulation++
			continue
		}

		cleaned = append(cleaned, domain.StateRow{
			StateName:          state,
			Population:         population,
			PovertyCount:       poverty,
			MillionaireCount:   millionaires,
			MillionaireDensity: millionaires / population,
			PovertyRate:        poverty / population,
		})
	}

	stats.KeptRows = len(cleaned)
	return cleaned, stats
}

// parseNumber coerces a cell to a float. Thousands separators are stripped
// the way spreadsheet exports tend to write them. Failure is not an error;
// the cell is simply missing.
func parseNumber(cell string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
