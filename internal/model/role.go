package model

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEditor   Role = "editor"
	RoleReporter Role = "reporter"
	RoleUser     Role = "user"
)

// publishRoles lists the roles allowed to set an article's status directly.
var publishRoles = map[Role]bool{
	RoleAdmin:  true,
	RoleEditor: true,
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleReporter, RoleUser:
		return true
	}
	return false
}

// IsAdmin reports whether r holds admin rights.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// CanPublish reports whether r is publish-capable.
func (r Role) CanPublish() bool {
	return publishRoles[r]
}
