package domain

// Role is a user's privilege level.
type Role string

const (
	RoleRegular       Role = "regular"
	RoleAdministrator Role = "administrator"
)

// AllRoles contains all valid roles
var AllRoles = []Role{RoleRegular, RoleAdministrator}

// IsValid checks if a role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleRegular, RoleAdministrator:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}
