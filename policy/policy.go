package policy

import (
	"errors"

	"restaurant-api/models"

	"gorm.io/gorm"
)

// Role is the authorization role of a caller. Customer applies only when
// the caller holds neither staff role.
type Role string

const (
	RoleCustomer     Role = "customer"
	RoleManager      Role = "manager"
	RoleDeliveryCrew Role = "delivery crew"
)

type Resource string

const (
	ResourceCategory Resource = "category"
	ResourceMenuItem Resource = "menu item"
	ResourceGroup    Resource = "group membership"
	ResourceOrder    Resource = "order"
)

type Action string

const (
	ActionCreate  Action = "create"
	ActionReplace Action = "replace"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionManage  Action = "manage"
)

// grant defines one allowed (role, resource, action) combination
type grant struct {
	Role     Role
	Resource Resource
	Action   Action
}

// grants is the authoritative permission table. Anything not listed here
// is denied; unauthenticated catalog reads and per-user cart access never
// consult the table.
var grants = []grant{
	// Catalog writes are a manager concern
	{RoleManager, ResourceCategory, ActionCreate},
	{RoleManager, ResourceMenuItem, ActionCreate},
	{RoleManager, ResourceMenuItem, ActionReplace},
	{RoleManager, ResourceMenuItem, ActionUpdate},
	{RoleManager, ResourceMenuItem, ActionDelete},
	// Role administration is a manager concern
	{RoleManager, ResourceGroup, ActionManage},
	// Only customers check out; staff mutate orders per their role
	{RoleCustomer, ResourceOrder, ActionCreate},
	{RoleManager, ResourceOrder, ActionReplace},
	{RoleManager, ResourceOrder, ActionUpdate},
	{RoleDeliveryCrew, ResourceOrder, ActionUpdate},
	{RoleManager, ResourceOrder, ActionDelete},
}

// Lookup map for O(1) checks
var grantSet = func() map[grant]bool {
	m := make(map[grant]bool)
	for _, g := range grants {
		m[g] = true
	}
	return m
}()

// Roles holds the caller's group memberships, derived per request.
type Roles struct {
	Manager      bool
	DeliveryCrew bool
}

// IsCustomer reports whether the caller holds no staff role.
func (r Roles) IsCustomer() bool {
	return !r.Manager && !r.DeliveryCrew
}

// list expands memberships into the roles the caller acts as.
func (r Roles) list() []Role {
	if r.IsCustomer() {
		return []Role{RoleCustomer}
	}
	var roles []Role
	if r.Manager {
		roles = append(roles, RoleManager)
	}
	if r.DeliveryCrew {
		roles = append(roles, RoleDeliveryCrew)
	}
	return roles
}

// RolesFor derives the caller's roles from stored group membership. Roles
// are read from the database on every request rather than trusted from
// the token, so membership changes take effect immediately.
func RolesFor(db *gorm.DB, userID uint) (Roles, error) {
	var names []string
	err := db.Model(&models.Group{}).
		Joins("JOIN user_groups ON user_groups.group_id = groups.id").
		Where("user_groups.user_id = ?", userID).
		Pluck("groups.name", &names).Error
	if err != nil {
		return Roles{}, err
	}

	var roles Roles
	for _, name := range names {
		switch name {
		case models.GroupManager:
			roles.Manager = true
		case models.GroupDeliveryCrew:
			roles.DeliveryCrew = true
		}
	}
	return roles, nil
}

// Allow checks whether any of the caller's roles is granted the action on
// the resource. Instance-level conditions (own order, assigned order) are
// the handler's responsibility.
func Allow(roles Roles, resource Resource, action Action) error {
	for _, role := range roles.list() {
		if grantSet[grant{role, resource, action}] {
			return nil
		}
	}
	return errors.New("Permission denied. Only " + allowedRoles(resource, action) +
		" allowed to " + string(action) + " " + string(resource) + " records")
}

// allowedRoles describes which roles hold a grant, for error messages.
func allowedRoles(resource Resource, action Action) string {
	var names []string
	seen := map[Role]bool{}
	for _, g := range grants {
		if g.Resource == resource && g.Action == action && !seen[g.Role] {
			names = append(names, string(g.Role)+"s")
			seen[g.Role] = true
		}
	}
	if len(names) == 0 {
		return "nobody is"
	}
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " and "
		}
		out += n
	}
	return out + " are"
}
