package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"plugohris/internal/domain"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// policies maps each role to the route-level permissions it holds.
// Approval-gate scoping (a manager may only action their own reports)
// is domain logic in the services, not expressed here.
var policies = [][]string{
	{domain.RoleEmployee.String(), "leave", "create"},
	{domain.RoleEmployee.String(), "leave", "read"},
	{domain.RoleEmployee.String(), "leave_type", "read"},
	{domain.RoleEmployee.String(), "balance", "read"},
	{domain.RoleEmployee.String(), "expense", "create"},
	{domain.RoleEmployee.String(), "expense", "read"},
	{domain.RoleEmployee.String(), "trip", "create"},
	{domain.RoleEmployee.String(), "trip", "read"},
	{domain.RoleEmployee.String(), "survey", "read"},
	{domain.RoleEmployee.String(), "survey", "respond"},
	{domain.RoleEmployee.String(), "employee", "read"},

	{domain.RoleManager.String(), "leave", "approve"},
	{domain.RoleManager.String(), "expense", "approve"},
	{domain.RoleManager.String(), "trip", "approve"},

	{domain.RoleAdmin.String(), "leave", "read_all"},
	{domain.RoleAdmin.String(), "expense", "read_all"},
	{domain.RoleAdmin.String(), "trip", "read_all"},
	{domain.RoleAdmin.String(), "survey", "read_all"},
	{domain.RoleAdmin.String(), "leave_type", "write"},
	{domain.RoleAdmin.String(), "accrual", "run"},
	{domain.RoleAdmin.String(), "employee", "write"},
	{domain.RoleAdmin.String(), "department", "write"},
	{domain.RoleAdmin.String(), "survey", "write"},
}

// groupings gives each role everything the weaker role may do.
var groupings = [][]string{
	{domain.RoleManager.String(), domain.RoleEmployee.String()},
	{domain.RoleAdmin.String(), domain.RoleManager.String()},
}

// NewEnforcer builds the casbin enforcer from the embedded model and
// the static role policy. The role set is closed, so the policy ships
// with the binary rather than living in a table.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return e, nil
}
