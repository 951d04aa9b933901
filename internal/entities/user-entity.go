package entities

import "strings"

type Role string

const (
	RoleSuperAdmin       Role = "super_admin"
	RoleMaintenanceStaff Role = "maintenance_staff"
	RoleEndUser          Role = "end_user"
)

// legacyRoles - роли, которые хранит база удалённого API и старые сессии.
var legacyRoles = map[string]Role{
	"admin":      RoleSuperAdmin,
	"technician": RoleMaintenanceStaff,
	"employee":   RoleEndUser,
}

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleMaintenanceStaff, RoleEndUser:
		return true
	}
	return false
}

// IsLegacyRole сообщает, что значение нужно перевести в актуальное имя роли.
func IsLegacyRole(raw string) bool {
	_, ok := legacyRoles[raw]
	return ok
}

// RoleFromBackend переводит роль из ответа API. Неизвестные значения -> end_user.
func RoleFromBackend(raw string) Role {
	if r, ok := legacyRoles[raw]; ok {
		return r
	}
	if r := Role(raw); r.Valid() {
		return r
	}
	return RoleEndUser
}

// DetectRoleFromEmail угадывает роль по имени ящика при регистрации без явной роли.
func DetectRoleFromEmail(email string) Role {
	username := strings.ToLower(strings.SplitN(email, "@", 2)[0])
	switch {
	case strings.Contains(username, "admin"):
		return RoleSuperAdmin
	case strings.Contains(username, "tech"), strings.Contains(username, "maintenance"):
		return RoleMaintenanceStaff
	}
	return RoleEndUser
}

type User struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      Role    `json:"role"`
	CompanyID *uint64 `json:"companyId,omitempty"`
}

// Session - запись, которую хранилище сессий сериализует под одним ключом.
type Session struct {
	User
	Token string `json:"token,omitempty"`
}
