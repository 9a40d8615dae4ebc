package domain

// Role represents a user role in the system
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the role is one the system knows
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}
