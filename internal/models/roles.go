package models

import "strings"

// Role gates what a signed-in user may do.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleStaff Role = "Staff"
)

// NormalizeRole maps free-form role strings onto a known role, defaulting to Staff.
func NormalizeRole(role string) Role {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "admin":
		return RoleAdmin
	default:
		return RoleStaff
	}
}

// HasRole reports whether role is one of allowed.
func HasRole(role string, allowed ...Role) bool {
	current := NormalizeRole(role)
	for _, candidate := range allowed {
		if current == candidate {
			return true
		}
	}
	return false
}
