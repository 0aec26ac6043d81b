package domain

// OperatorRole grants access to mutating ticket routes.
type OperatorRole string

const (
	OperatorRoleTechnician OperatorRole = "technician"
	OperatorRoleSupervisor OperatorRole = "supervisor"
)

// Valid reports whether r is a known role.
func (r OperatorRole) Valid() bool {
	return r == OperatorRoleTechnician || r == OperatorRoleSupervisor
}

// Operator is the authenticated caller carried by a bearer token.
type Operator struct {
	Name string
	Role OperatorRole
}
