package dataprocessing

import (
	"fmt"
	"strings"

	"wealthgap/pkg/contracts/domain"
)

// NarrativeStates is how many states each end of a ranking contributes to
// the generated interpretation text.
const NarrativeStates = 3

// ComparisonNarrative explains the poverty-vs-millionaires chart. The text
// is fixed; the chart itself carries the numbers.
func ComparisonNarrative() string {
	return "This comparison shows how many people are in poverty versus how many are " +
		"millionaires in each selected state. States with a large poverty population and " +
		"relatively few millionaires illustrate how uneven wealth distribution can be " +
		"across different states."
}

// DensityNarrative names the states at both ends of a millionaire-density
// ranking.
func DensityNarrative(ranked []domain.RateEntry) string {
	if len(ranked) == 0 {
		return ""
	}
	top := formatEntries(TopN(ranked, NarrativeStates), "%.6f")
	bottom := formatEntries(BottomN(ranked, NarrativeStates), "%.6f")
	return fmt.Sprintf("Some of the highest millionaire densities appear in: %s. "+
		"On the other hand, states such as %s sit at the lower end of the distribution. "+
		"Millionaire concentration does not always line up with overall population size.",
		top, bottom)
}

// PovertyNarrative names the states carrying the heaviest and lightest
// poverty burden in a poverty-rate ranking.
func PovertyNarrative(ranked []domain.RateEntry) string {
	if len(ranked) == 0 {
		return ""
	}
	top := formatPercentEntries(TopN(ranked, NarrativeStates))
	bottom := formatPercentEntries(BottomN(ranked, NarrativeStates))
	return fmt.Sprintf("States at the top of the ranking (e.g., %s) carry the heaviest "+
		"poverty burden, while states such as %s have much lower poverty rates.",
		top, bottom)
}

func formatEntries(entries []domain.RateEntry, valueFormat string) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s ("+valueFormat+")", e.StateName, e.Rate)
	}
	return strings.Join(parts, ", ")
}

func formatPercentEntries(entries []domain.RateEntry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s (%.1f%%)", e.StateName, e.Rate*100)
	}
	return strings.Join(parts, ", ")
}
