package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wealthgap/pkg/contracts/domain"
)

func TestComparisonNarrative(t *testing.T) {
	text := ComparisonNarrative()
	assert.Contains(t, text, "poverty")
	assert.Contains(t, text, "millionaires")
}

func TestDensityNarrative(t *testing.T) {
	ranked := []domain.RateEntry{
		{StateName: "New York", Rate: 0.021},
		{StateName: "California", Rate: 0.018},
		{StateName: "Texas", Rate: 0.012},
		{StateName: "Ohio", Rate: 0.008},
		{StateName: "Mississippi", Rate: 0.004},
	}

	text := DensityNarrative(ranked)

	assert.Contains(t, text, "New York (0.021000)")
	assert.Contains(t, text, "California (0.018000)")
	assert.Contains(t, text, "Mississippi (0.004000)")
}

func TestPovertyNarrative(t *testing.T) {
	ranked := []domain.RateEntry{
		{StateName: "Mississippi", Rate: 0.195},
		{StateName: "Louisiana", Rate: 0.187},
		{StateName: "New Hampshire", Rate: 0.074},
	}

	text := PovertyNarrative(ranked)

	assert.Contains(t, text, "Mississippi (19.5%)")
	assert.Contains(t, text, "New Hampshire (7.4%)")
}

func TestNarrativesShortRanking(t *testing.T) {
	// Fewer entries than NarrativeStates still produces text.
	one := []domain.RateEntry{{StateName: "Texas", Rate: 0.15}}
	assert.Contains(t, PovertyNarrative(one), "Texas (15.0%)")
	assert.Contains(t, DensityNarrative(one), "Texas")
}

func TestNarrativesEmptyRanking(t *testing.T) {
	assert.Empty(t, DensityNarrative(nil))
	assert.Empty(t, PovertyNarrative(nil))
}
