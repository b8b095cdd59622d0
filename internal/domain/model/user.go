package model

import "time"

// Role grants access to a slice of the backoffice.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
	RolePacker   Role = "packer"
)

// Valid reports whether the role is known.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleOperator || r == RolePacker
}

// User is a backoffice account. Email is the case-insensitive match key
// against the identity provider; DisplayName doubles as the operator
// identifier recorded on claimed and resolved orders.
type User struct {
	ID           int64
	Email        string
	DisplayName  string
	Role         Role
	PasswordHash string
	LastLogin    time.Time
}
