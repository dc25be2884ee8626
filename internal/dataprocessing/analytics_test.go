package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wealthgap/pkg/contracts/domain"
)

func TestCompareStates(t *testing.T) {
	rows := []domain.StateRow{
		{StateName: "Texas", PovertyCount: 150, MillionaireCount: 20},
		{StateName: "Ohio", PovertyCount: 100, MillionaireCount: 5},
		{StateName: "Texas", PovertyCount: 50, MillionaireCount: 10},
		{StateName: "Iowa", PovertyCount: 30, MillionaireCount: 2},
	}

	result := CompareStates(rows, []string{"Texas", "Ohio"})

	require.Len(t, result, 2)
	// Fixed ordering: state name ascending.
	assert.Equal(t, "Ohio", result[0].StateName)
	assert.Equal(t, 100.0, result[0].PovertyCount)
	assert.Equal(t, "Texas", result[1].StateName)
	// Duplicate Texas rows are summed.
	assert.Equal(t, 200.0, result[1].PovertyCount)
	assert.Equal(t, 30.0, result[1].MillionaireCount)
}

func TestCompareStatesDeterministic(t *testing.T) {
	rows := []domain.StateRow{
		{StateName: "Nevada", PovertyCount: 10, MillionaireCount: 1},
		{StateName: "Utah", PovertyCount: 20, MillionaireCount: 2},
		{StateName: "Maine", PovertyCount: 30, MillionaireCount: 3},
	}
	selected := []string{"Utah", "Maine", "Nevada"}

	first := CompareStates(rows, selected)
	second := CompareStates(rows, selected)

	assert.Equal(t, first, second)
}

func TestCompareStatesEdgeCases(t *testing.T) {
	rows := []domain.StateRow{{StateName: "Texas", PovertyCount: 1}}

	assert.Empty(t, CompareStates(rows, nil), "empty selection")
	assert.Empty(t, CompareStates(nil, []string{"Texas"}), "empty table")
	assert.Empty(t, CompareStates(rows, []string{"Atlantis"}), "selection not in data")

	single := CompareStates(rows, []string{"Texas"})
	require.Len(t, single, 1, "a single selected state must work")
}

func TestRankByMetricOrderAndTieBreak(t *testing.T) {
	// Rates [0.30, 0.10, 0.30, 0.05] for states [A, B, C, D]: ties at 0.30
	// break by name ascending, so A before C.
	rows := []domain.StateRow{
		{StateName: "C", PovertyRate: 0.30},
		{StateName: "B", PovertyRate: 0.10},
		{StateName: "A", PovertyRate: 0.30},
		{StateName: "D", PovertyRate: 0.05},
	}

	ranked := RankByMetric(rows, MetricPovertyRate)

	require.Len(t, ranked, 4)
	assert.Equal(t, "A", ranked[0].StateName)
	assert.Equal(t, "C", ranked[1].StateName)
	assert.Equal(t, "B", ranked[2].StateName)
	assert.Equal(t, "D", ranked[3].StateName)
}

func TestRankByMetricDeduplicates(t *testing.T) {
	rows := []domain.StateRow{
		{StateName: "Texas", PovertyRate: 0.15},
		{StateName: "Texas", PovertyRate: 0.15},
		{StateName: "Texas", PovertyRate: 0.20},
	}

	ranked := RankByMetric(rows, MetricPovertyRate)

	// Same (state, rate) pair collapses; a different rate for the same
	// state survives.
	require.Len(t, ranked, 2)
	assert.Equal(t, 0.20, ranked[0].Rate)
	assert.Equal(t, 0.15, ranked[1].Rate)
}

func TestRankByMetricMillionaireDensity(t *testing.T) {
	rows := []domain.StateRow{
		{StateName: "Ohio", MillionaireDensity: 0.01, PovertyRate: 0.20},
		{StateName: "Texas", MillionaireDensity: 0.02, PovertyRate: 0.15},
	}

	ranked := RankByMetric(rows, MetricMillionaireDensity)

	require.Len(t, ranked, 2)
	assert.Equal(t, "Texas", ranked[0].StateName)
	assert.Equal(t, 0.02, ranked[0].Rate)
}

func TestRankByMetricEmpty(t *testing.T) {
	assert.Empty(t, RankByMetric(nil, MetricPovertyRate))
}

func TestTopNBottomN(t *testing.T) {
	entries := []domain.RateEntry{
		{StateName: "A", Rate: 0.4},
		{StateName: "B", Rate: 0.3},
		{StateName: "C", Rate: 0.2},
		{StateName: "D", Rate: 0.1},
	}

	assert.Equal(t, entries[:3], TopN(entries, 3))
	assert.Equal(t, entries[1:], BottomN(entries, 3))

	// N larger than the ranking degrades to the whole ranking.
	assert.Equal(t, entries, TopN(entries, 10))
	assert.Equal(t, entries, BottomN(entries, 10))
	assert.Empty(t, TopN(nil, 3))
}

func TestStates(t *testing.T) {
	rows := []domain.StateRow{
		{StateName: "Texas"},
		{StateName: "Ohio"},
		{StateName: "Texas"},
	}

	assert.Equal(t, []string{"Ohio", "Texas"}, States(rows))
	assert.Empty(t, States(nil))
}
