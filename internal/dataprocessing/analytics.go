package dataprocessing

import (
	"sort"

	"wealthgap/pkg/contracts/domain"
)

// Metric selects which derived ratio a ranking operates on.
type Metric string

const (
	MetricPovertyRate        Metric = "poverty_rate"
	MetricMillionaireDensity Metric = "millionaire_density"
)

// Value returns the metric's ratio from a cleaned row.
func (m Metric) Value(row domain.StateRow) float64 {
	if m == MetricMillionaireDensity {
		return row.MillionaireDensity
	}
	return row.PovertyRate
}

// CompareStates groups the cleaned rows of the selected states and sums
// their poverty and millionaire counts. The output holds one row per
// distinct selected state that appears in the data, sorted by state name
// ascending so identical input always yields identical output. An empty
// selection yields an empty result, never an error.
func CompareStates(rows []domain.StateRow, selected []string) []domain.StateComparison {
	wanted := make(map[string]bool, len(selected))
	for _, s := range selected {
		wanted[s] = true
	}

	totals := make(map[string]*domain.StateComparison)
	for _, row := range rows {
		if !wanted[row.StateName] {
			continue
		}
		agg, ok := totals[row.StateName]
		if !ok {
			agg = &domain.StateComparison{StateName: row.StateName}
			totals[row.StateName] = agg
		}
		agg.PovertyCount += row.PovertyCount
		agg.MillionaireCount += row.MillionaireCount
	}

	result := make([]domain.StateComparison, 0, len(totals))
	for _, agg := range totals {
		result = append(result, *agg)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StateName < result[j].StateName
	})
	return result
}

// RankByMetric deduplicates rows by (state, ratio) pair and sorts them by
// ratio descending, breaking ties by state name ascending. An empty input
// yields an empty ranking.
func RankByMetric(rows []domain.StateRow, metric Metric) []domain.RateEntry {
	type key struct {
		state string
		rate  float64
	}

	seen := make(map[key]bool, len(rows))
	entries := make([]domain.RateEntry, 0, len(rows))
	for _, row := range rows {
		k := key{state: row.StateName, rate: metric.Value(row)}
		if seen[k] {
			continue
		}
		seen[k] = true
		entries = append(entries, domain.RateEntry{StateName: k.state, Rate: k.rate})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Rate != entries[j].Rate {
			return entries[i].Rate > entries[j].Rate
		}
		return entries[i].StateName < entries[j].StateName
	})
	return entries
}

// TopN returns the first n entries of a ranking.
func TopN(entries []domain.RateEntry, n int) []domain.RateEntry {
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}

// BottomN returns the last n entries of a ranking, best-to-worst order
// preserved.
func BottomN(entries []domain.RateEntry, n int) []domain.RateEntry {
	if n > len(entries) {
		n = len(entries)
	}
	return entries[len(entries)-n:]
}

// States lists the distinct state names of the cleaned rows in ascending
// order, for the selection UI.
func States(rows []domain.StateRow) []string {
	seen := make(map[string]bool, len(rows))
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if seen[row.StateName] {
			continue
		}
		seen[row.StateName] = true
		names = append(names, row.StateName)
	}
	sort.Strings(names)
	return names
}
