package identity

import (
	"strings"

	"github.com/faithconnect/backend/internal/domain/shared"
)

// Role represents a portal role assigned to a profile
type Role string

const (
	RoleSuperAdmin    Role = "super_admin"    // Platform-wide administration
	RoleAdmin         Role = "admin"          // Branch administration
	RoleDistrictAdmin Role = "district_admin" // District oversight
	RolePastor        Role = "pastor"
	RoleLeader        Role = "leader"
	RoleWorker        Role = "worker"
	RoleMember        Role = "member" // Default role for every new profile
)

// AllRoles lists every valid role
var AllRoles = []Role{
	RoleSuperAdmin,
	RoleAdmin,
	RoleDistrictAdmin,
	RolePastor,
	RoleLeader,
	RoleWorker,
	RoleMember,
}

// ParseRole parses a role string, rejecting anything outside the closed set
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, r := range AllRoles {
		if role == r {
			return r, nil
		}
	}
	return "", shared.NewDomainError("INVALID_ROLE", "Unknown role: "+s)
}

// IsValid returns true if the role belongs to the closed set
func (r Role) IsValid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// IsAdmin returns true for roles granted branch administration access.
// Only admin and super_admin qualify; district_admin, pastor, leader and
// worker deliberately do not.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// IsSuperAdmin returns true only for the platform super administrator
func (r Role) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}

// String returns the wire representation of the role
func (r Role) String() string {
	return string(r)
}
