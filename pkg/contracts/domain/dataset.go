package domain

// RawTable holds an uploaded dataset exactly as parsed: a header row and the
// data rows beneath it. No coercion or validation happens at this level.
type RawTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ColumnIndex returns the position of the named column, or -1 when absent.
// Matching is exact and case-sensitive, like the rest of the pipeline.
func (t *RawTable) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists in the header.
func (t *RawTable) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the value at the given row and column index. Short rows are
// treated as padded with empty cells.
func (t *RawTable) Cell(row int, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// StateRow is one cleaned record: the four mapped source values plus the two
// derived ratios. A StateRow only exists when all source numerics coerced
// successfully and population is positive, so the ratios are always finite.
type StateRow struct {
	StateName          string  `json:"state_name"`
	Population         float64 `json:"population"`
	PovertyCount       float64 `json:"poverty_count"`
	MillionaireCount   float64 `json:"millionaire_count"`
	MillionaireDensity float64 `json:"millionaire_density"`
	PovertyRate        float64 `json:"poverty_rate"`
}

// GeoRow is a StateRow whose state name resolved to a USPS postal code.
// Only the choropleth view consumes GeoRows.
type GeoRow struct {
	StateRow
	StateCode string `json:"state_code"`
}
