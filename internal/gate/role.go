package gate

import "strings"

// Role is the access level granted by a key match. Roles are derived solely
// from key comparison and are never elevated any other way.
type Role string

const (
	RoleNone   Role = "none"
	RoleViewer Role = "viewer"
	RoleAdmin  Role = "admin"
)

// ParseRole maps a stored value onto a known role, defaulting to RoleNone for
// anything unrecognized.
func ParseRole(value string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleViewer:
		return RoleViewer
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleNone
	}
}

// CanView reports whether the role may browse the collections.
func (r Role) CanView() bool {
	return r == RoleViewer || r == RoleAdmin
}

// CanManage reports whether the role may create or delete content.
func (r Role) CanManage() bool {
	return r == RoleAdmin
}
