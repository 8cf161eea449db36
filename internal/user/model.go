package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound             = errors.New("user not found")
	ErrEmailAlreadyUsed     = errors.New("email already registered")
	ErrIdentificationInUse  = errors.New("identification number already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInactiveUser         = errors.New("user is inactive")
	ErrMissingRequiredField = errors.New("name, last name, identification number, email and password are required")
)

// Role controls what a user may do. Staff and admins manage courts and
// handle walk-in check-ins; customers only book for themselves.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	return r == RoleCustomer || r == RoleStaff || r == RoleAdmin
}

// User represents an account in the system.
type User struct {
	ID                string // UUID
	Name              string
	LastName          string
	IdentificationNum string
	Email             string
	PasswordHash      string
	Role              Role
	IsActive          bool
	CreatedAt         time.Time
	LastLoginAt       *time.Time
}

// FullName is the display name used when a reservation carries no explicit
// "reserved for" value.
func (u *User) FullName() string {
	return u.Name + " " + u.LastName
}
