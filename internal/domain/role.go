package domain

import "fmt"

// Role is the closed set of caller roles. Keeping it a typed enum (and
// dispatching with exhaustive switches) means a new role fails to
// compile everywhere it is not handled, instead of silently falling
// through a string comparison.
type Role int

const (
	RoleEmployee Role = iota
	RoleManager
	RoleAdmin
)

const (
	roleEmployeeName = "EMPLOYEE"
	roleManagerName  = "MANAGER"
	roleAdminName    = "ADMIN"
)

func (r Role) String() string {
	switch r {
	case RoleEmployee:
		return roleEmployeeName
	case RoleManager:
		return roleManagerName
	case RoleAdmin:
		return roleAdminName
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// ParseRole maps the role claim carried in the JWT to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case roleEmployeeName:
		return RoleEmployee, nil
	case roleManagerName:
		return RoleManager, nil
	case roleAdminName:
		return RoleAdmin, nil
	}
	return RoleEmployee, fmt.Errorf("unknown role %q", s)
}

// CanActionRequests reports whether the role may sit on the approver
// side of an approval gate at all. Managers are additionally scoped to
// their direct reports by the gate itself.
func (r Role) CanActionRequests() bool {
	switch r {
	case RoleManager, RoleAdmin:
		return true
	case RoleEmployee:
		return false
	}
	return false
}
