package model

import "strings"

// Role is the closed set of account roles. Handlers and middleware never
// compare raw strings; they parse once at the boundary and switch on the
// typed value so a new role is a compile-visible change.
type Role string

const (
	RoleCouple Role = "COUPLE"
	RoleVendor Role = "VENDOR"
	RoleAdmin  Role = "ADMIN"
)

// ParseRole normalizes and validates a role string coming from a request
// body or a token claim. The second return value is false for anything
// outside the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleCouple:
		return RoleCouple, true
	case RoleVendor:
		return RoleVendor, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}
