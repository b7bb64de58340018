package models

// Role tags are a closed set defined by the backend.
// RoleNone is the explicit "no role stored" value and never matches a real tag.
type Role string

const (
	RoleNone        Role = ""
	RoleDistributor Role = "DISTRIBUTOR"
	RoleAdmin       Role = "ADMIN"
	RoleSuperAdmin  Role = "SUPER_ADMIN"
)

// Known reports whether the role is one of the backend-defined tags
func (r Role) Known() bool {
	switch r {
	case RoleDistributor, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}
