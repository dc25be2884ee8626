package dataprocessing

import (
	"fmt"

	"wealthgap/pkg/contracts/domain"
)

// Default-guess header names for the four roles. When a guess is present in
// the uploaded header it is pre-selected; otherwise the first column stands
// in and the user is expected to correct it.
const (
	DefaultStateColumn        = "State"
	DefaultPopulationColumn   = "State Population"
	DefaultPovertyColumn      = "Number in Poverty"
	DefaultMillionairesColumn = "Number of Millionaires"
)

// DefaultMapping builds the pre-selected mapping for a freshly loaded table.
// The first-column fallback never fails on its own; it is a usability
// shortcut, not a correctness guarantee.
func DefaultMapping(columns []string) domain.FieldMapping {
	return domain.FieldMapping{
		State:        guessColumn(DefaultStateColumn, columns),
		Population:   guessColumn(DefaultPopulationColumn, columns),
		Poverty:      guessColumn(DefaultPovertyColumn, columns),
		Millionaires: guessColumn(DefaultMillionairesColumn, columns),
	}
}

func guessColumn(want string, columns []string) string {
	for _, col := range columns {
		if col == want {
			return col
		}
	}
	if len(columns) > 0 {
		return columns[0]
	}
	return ""
}

// ValidateMapping checks that every mapped column exists in the table
// header. That is the entire contract: nothing prevents mapping the poverty
// role to a column of names, and the numeric coercion in Clean is the only
// safety net for such a choice.
func ValidateMapping(m domain.FieldMapping, table *domain.RawTable) error {
	for role, col := range m.Columns() {
		if col == "" {
			return fmt.Errorf("%w: no column mapped for role %q", ErrColumnNotFound, role)
		}
		if !table.HasColumn(col) {
			return fmt.Errorf("%w: column %q mapped for role %q", ErrColumnNotFound, col, role)
		}
	}
	return nil
}
