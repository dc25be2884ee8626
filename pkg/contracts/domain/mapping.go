package domain

// FieldRole identifies one of the four semantic roles a dataset column can
// be mapped to. The mapping is chosen once per upload session and only
// replaced wholesale, never edited in place.
type FieldRole string

const (
	RoleState        FieldRole = "state"
	RolePopulation   FieldRole = "population"
	RolePoverty      FieldRole = "poverty"
	RoleMillionaires FieldRole = "millionaires"
)

// FieldMapping binds the four canonical roles to actual column headers of
// the uploaded table. Semantic correctness is deliberately not validated;
// numeric coercion downstream is the only safety net.
type FieldMapping struct {
	State        string `json:"state" validate:"required"`
	Population   string `json:"population" validate:"required"`
	Poverty      string `json:"poverty" validate:"required"`
	Millionaires string `json:"millionaires" validate:"required"`
}

// Columns returns the mapped column names keyed by role.
func (m FieldMapping) Columns() map[FieldRole]string {
	return map[FieldRole]string{
		RoleState:        m.State,
		RolePopulation:   m.Population,
		RolePoverty:      m.Poverty,
		RoleMillionaires: m.Millionaires,
	}
}
