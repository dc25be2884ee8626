package domain

// StateComparison is one aggregated row of the poverty-vs-millionaires view:
// counts summed over every cleaned row of the selected state.
type StateComparison struct {
	StateName        string  `json:"state_name"`
	PovertyCount     float64 `json:"poverty_count"`
	MillionaireCount float64 `json:"millionaire_count"`
}

// RateEntry is one row of a ratio ranking, ordered by ratio descending with
// ties broken by state name ascending.
type RateEntry struct {
	StateName string  `json:"state_name"`
	Rate      float64 `json:"rate"`
}

// ComparisonView is the payload of the poverty-vs-millionaires comparison.
// Warning is set instead of an error when the selection produced no rows.
type ComparisonView struct {
	States    []StateComparison `json:"states"`
	Narrative string            `json:"narrative,omitempty"`
	Warning   string            `json:"warning,omitempty"`
}

// ChoroplethView is the payload of the millionaire-density map. Entries only
// contains rows whose state name resolved to a postal code.
type ChoroplethView struct {
	Entries   []GeoRow `json:"entries"`
	Narrative string   `json:"narrative,omitempty"`
	Warning   string   `json:"warning,omitempty"`
}

// RateView is the payload of the poverty-rate ranking.
type RateView struct {
	Entries   []RateEntry `json:"entries"`
	Narrative string      `json:"narrative,omitempty"`
	Warning   string      `json:"warning,omitempty"`
}

// DatasetSummary describes an upload session back to the client: the header,
// a short preview, and the mapping currently in effect.
type DatasetSummary struct {
	ID       string       `json:"id"`
	Filename string       `json:"filename"`
	Columns  []string     `json:"columns"`
	RowCount int          `json:"row_count"`
	Preview  [][]string   `json:"preview"`
	Mapping  FieldMapping `json:"mapping"`
	States   []string     `json:"states"`
}
