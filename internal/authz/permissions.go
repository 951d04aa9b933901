// internal/authz/permissions.go
package authz

import "gearguard/internal/entities"

// --- СПИСОК ВСЕХ ПЕРМИШЕНОВ В СИСТЕМЕ ---

const (
	// Разделы (Views)
	ViewDashboard   = "view:dashboard"
	ViewEquipment   = "view:equipment"
	ViewMaintenance = "view:maintenance"
	ViewCalendar    = "view:calendar"
	ViewTeams       = "view:teams"
	ViewReporting   = "view:reporting"

	// Заявки (Requests)
	RequestCreate = "request:create"
	RequestMove   = "request:move"
	RequestAccept = "request:accept"
	RequestDelete = "request:delete"

	// Справочники
	EquipmentManage = "equipment:manage"
	TeamManage      = "team:manage"

	// Сервисные
	ReportExport = "report:export"
	SyncRun      = "sync:run"
)

// rolePermissions - декларативная таблица "роль -> разрешения".
// Любая проверка доступа в системе читает только её.
var rolePermissions = map[entities.Role][]string{
	entities.RoleSuperAdmin: {
		ViewDashboard, ViewEquipment, ViewMaintenance, ViewCalendar, ViewTeams, ViewReporting,
		RequestCreate, RequestMove, RequestAccept, RequestDelete,
		EquipmentManage, TeamManage, ReportExport, SyncRun,
	},
	entities.RoleMaintenanceStaff: {
		ViewDashboard, ViewMaintenance, ViewCalendar,
		RequestCreate, RequestMove, RequestAccept,
	},
	entities.RoleEndUser: {
		ViewDashboard,
		RequestCreate,
	},
}

// NavItem - пункт меню. Порядок пунктов фиксирован.
type NavItem struct {
	Name       string `json:"name"`
	Href       string `json:"href"`
	Permission string `json:"-"`
}

var navigation = []NavItem{
	{Name: "Dashboard", Href: "/dashboard", Permission: ViewDashboard},
	{Name: "Equipment", Href: "/equipment", Permission: ViewEquipment},
	{Name: "Maintenance", Href: "/maintenance", Permission: ViewMaintenance},
	{Name: "Calendar", Href: "/calendar", Permission: ViewCalendar},
	{Name: "Teams", Href: "/teams", Permission: ViewTeams},
	{Name: "Reporting", Href: "/reporting", Permission: ViewReporting},
}
