package domain

import "time"

// User roles as stored in the user_roles column.
const (
	RoleAdmin  = "admin"
	RoleUser   = "user"
	RoleVendor = "vendor"
)

// ValidRole reports whether r is one of the known user roles.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser || r == RoleVendor
}

// User models a panel account. PasswordHash is write-only: set at creation,
// compared at login, never rendered and never serialized.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"user_roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
