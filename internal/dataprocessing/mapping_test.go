package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wealthgap/pkg/contracts/domain"
)

func TestDefaultMapping(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    domain.FieldMapping
	}{
		{
			name: "all guesses present",
			columns: []string{
				"State", "State Population", "Number in Poverty", "Number of Millionaires",
			},
			want: domain.FieldMapping{
				State:        "State",
				Population:   "State Population",
				Poverty:      "Number in Poverty",
				Millionaires: "Number of Millionaires",
			},
		},
		{
			name:    "missing guesses fall back to first column",
			columns: []string{"region", "people", "poor", "rich"},
			want: domain.FieldMapping{
				State:        "region",
				Population:   "region",
				Poverty:      "region",
				Millionaires: "region",
			},
		},
		{
			name:    "partial match",
			columns: []string{"name", "State Population", "poor"},
			want: domain.FieldMapping{
				State:        "name",
				Population:   "State Population",
				Poverty:      "name",
				Millionaires: "name",
			},
		},
		{
			name:    "no columns",
			columns: nil,
			want:    domain.FieldMapping{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultMapping(tt.columns))
		})
	}
}

func TestValidateMapping(t *testing.T) {
	table := &domain.RawTable{Columns: []string{"State", "Pop", "Poor", "Rich"}}

	valid := domain.FieldMapping{State: "State", Population: "Pop", Poverty: "Poor", Millionaires: "Rich"}
	assert.NoError(t, ValidateMapping(valid, table))

	// Mapping a numeric role to the state column is allowed; coercion is the
	// only downstream safety net.
	trusting := domain.FieldMapping{State: "State", Population: "State", Poverty: "State", Millionaires: "State"}
	assert.NoError(t, ValidateMapping(trusting, table))

	missing := domain.FieldMapping{State: "State", Population: "Pop", Poverty: "Nope", Millionaires: "Rich"}
	err := ValidateMapping(missing, table)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrColumnNotFound)

	empty := domain.FieldMapping{State: "", Population: "Pop", Poverty: "Poor", Millionaires: "Rich"}
	assert.ErrorIs(t, ValidateMapping(empty, table), ErrColumnNotFound)
}
