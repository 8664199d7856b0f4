package core

import "strings"

// Roles
const (
	// Admin
	RoleAdmin          = "admin:"
	RoleAdminOwner     = "admin:owner"
	RoleAdminPrincipal = "admin:principal"

	// Teacher
	RoleTeacher = "teacher:"

	// Student
	RoleStudent = "student:"
)

var AllRoles = []string{RoleAdmin, RoleAdminOwner, RoleAdminPrincipal, RoleTeacher, RoleStudent}

// Actor identifies the caller of an operation: an opaque user id and a role string.
// Roles are hierarchical by prefix, "admin:owner" is an admin.
type Actor struct {
	ID   int    `json:"id"`
	Role string `json:"role"`
}

func (a Actor) roleStartsWith(prefix string) bool {
	return strings.HasPrefix(a.Role, prefix)
}

func (a Actor) IsAdmin() bool   { return a.roleStartsWith(RoleAdmin) }
func (a Actor) IsTeacher() bool { return a.roleStartsWith(RoleTeacher) }
func (a Actor) IsStudent() bool { return a.roleStartsWith(RoleStudent) }

// IsKnownRole reports whether role is one of AllRoles.
func IsKnownRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
