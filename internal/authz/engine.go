package authz

import (
	"gearguard/internal/entities"
)

type Context struct {
	Actor       *entities.User
	Permissions map[string]bool
}

// NewContext строит контекст по роли пользователя. Неизвестная роль не получает прав.
func NewContext(actor *entities.User) Context {
	if actor == nil {
		return Context{Permissions: map[string]bool{}}
	}
	return Context{Actor: actor, Permissions: PermissionsFor(actor.Role)}
}

func (c *Context) HasPermission(permission string) bool {
	if c.Permissions == nil {
		return false
	}
	return c.Permissions[permission]
}

// PermissionsFor возвращает копию набора разрешений роли.
func PermissionsFor(role entities.Role) map[string]bool {
	perms := make(map[string]bool, len(rolePermissions[role]))
	for _, p := range rolePermissions[role] {
		perms[p] = true
	}
	return perms
}

// Navigation - пункты меню, доступные роли.
func Navigation(role entities.Role) []NavItem {
	perms := PermissionsFor(role)
	items := make([]NavItem, 0, len(navigation))
	for _, item := range navigation {
		if perms[item.Permission] {
			items = append(items, item)
		}
	}
	return items
}

// RoleLabel - человекочитаемое имя роли для шапки.
func RoleLabel(role entities.Role) string {
	switch role {
	case entities.RoleSuperAdmin:
		return "Super Admin"
	case entities.RoleMaintenanceStaff:
		return "Maintenance Staff"
	}
	return "End User"
}
