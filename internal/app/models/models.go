package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleTeacher RoleType = "TEACHER"
	RoleAdmin   RoleType = "ADMIN"
)

// Valid reports whether the role is one of the known roles.
func (r RoleType) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// Tenant classifies an account as belonging to the demo or the production
// data partition. The value is derived from the account email at creation
// time and stored, so list queries can filter on it directly.
type Tenant string

const (
	TenantDemo       Tenant = "DEMO"
	TenantProduction Tenant = "PRODUCTION"
)
