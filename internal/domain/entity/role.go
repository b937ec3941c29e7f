// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleMember is the default role for registered congregation members.
	RoleMember Role = "member"
	// RoleVolunteer marks members serving in a ministry area.
	RoleVolunteer Role = "volunteer"
	// RolePastor grants content management rights.
	RolePastor Role = "pastor"
	// RoleAdmin grants full management rights.
	RoleAdmin Role = "admin"
	// RoleGuest is a limited account without membership.
	RoleGuest Role = "guest"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleVolunteer, RolePastor, RoleAdmin, RoleGuest:
		return true
	default:
		return false
	}
}

// IsSelfAssignable reports whether a user may pick this role at registration.
func (r Role) IsSelfAssignable() bool {
	switch r {
	case RoleMember, RoleVolunteer, RoleGuest:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ManagementRoles may create and edit ministry content.
//
//nolint:gochecknoglobals
var ManagementRoles = Roles{RoleAdmin, RolePastor}
