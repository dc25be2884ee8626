// Package geo resolves full U.S. state names to USPS postal codes for the
// choropleth view. The lookup table is a process-wide constant covering the
// 50 states plus the District of Columbia (with a "D.C." alias); it is never
// mutated at runtime.
package geo

import "wealthgap/pkg/contracts/domain"

var stateCodes = map[string]string{
	"Alabama": "AL", "Alaska": "AK", "Arizona": "AZ", "Arkansas": "AR",
	"California": "CA", "Colorado": "CO", "Connecticut": "CT", "Delaware": "DE",
	"Florida": "FL", "Georgia": "GA", "Hawaii": "HI", "Idaho": "ID",
	"Illinois": "IL", "Indiana": "IN", "Iowa": "IA", "Kansas": "KS",
	"Kentucky": "KY", "Louisiana": "LA", "Maine": "ME", "Maryland": "MD",
	"Massachusetts": "MA", "Michigan": "MI", "Minnesota": "MN", "Mississippi": "MS",
	"Missouri": "MO", "Montana": "MT", "Nebraska": "NE", "Nevada": "NV",
	"New Hampshire": "NH", "New Jersey": "NJ", "New Mexico": "NM", "New York": "NY",
	"North Carolina": "NC", "North Dakota": "ND", "Ohio": "OH", "Oklahoma": "OK",
	"Oregon": "OR", "Pennsylvania": "PA", "Rhode Island": "RI",
	"South Carolina": "SC", "South Dakota": "SD", "Tennessee": "TN", "Texas": "TX",
	"Utah": "UT", "Vermont": "VT", "Virginia": "VA", "Washington": "WA",
	"West Virginia": "WV", "Wisconsin": "WI", "Wyoming": "WY",
	"District of Columbia": "DC", "D.C.": "DC",
}

// Resolve returns the postal code for a full state name. Matching is exact
// and case-sensitive; there is no fuzzy or partial matching.
func Resolve(name string) (string, bool) {
	code, ok := stateCodes[name]
	return code, ok
}

// ResolveRows joins cleaned rows against the lookup table and returns the
// subset that resolved, each annotated with its postal code. Rows that do
// not resolve are dropped here but remain available to the non-map views.
func ResolveRows(rows []domain.StateRow) []domain.GeoRow {
	mapped := make([]domain.GeoRow, 0, len(rows))
	for _, row := range rows {
		code, ok := stateCodes[row.StateName]
		if !ok {
			continue
		}
		mapped = append(mapped, domain.GeoRow{StateRow: row, StateCode: code})
	}
	return mapped
}
