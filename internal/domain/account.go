package domain

import "time"

// Role enumerates account roles. The set is closed: anything outside it is
// rejected at the edge rather than carried around as a free-form string.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is a known member of the enumeration.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// Account is the domain model for anyone who can authenticate: customers who
// book services and administrators who manage the catalog.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
