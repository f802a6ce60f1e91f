package identity

// Role represents a user's role within an agency
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleClient Role = "CLIENT" // Bound to a single client, portal access only
)

// MutatorRoles are the roles allowed to create and update records
var MutatorRoles = []Role{RoleOwner, RoleAdmin, RoleEditor}

// DeleterRoles are the roles allowed to delete records
var DeleterRoles = []Role{RoleOwner, RoleAdmin}

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleEditor, RoleClient:
		return true
	default:
		return false
	}
}

// IsStaff reports whether the role belongs to agency staff
func (r Role) IsStaff() bool {
	return r == RoleOwner || r == RoleAdmin || r == RoleEditor
}
