package mock

import (
	"github.com/aarondl/null/v8"

	"gearguard/internal/integrations/dto"
)

// DemoToken - токен демо-сессии, API_PROVIDER=demo.
const DemoToken = "demo-token"

// NewDemoProvider - провайдер в памяти с небольшим набором данных. Любой вход
// возвращает демо-администратора, созданные записи сохраняются до перезапуска.
func NewDemoProvider() *MockProvider {
	m := NewMockProvider()
	m.Persist = true
	m.SkipCallLog = true
	m.Auth = &dto.AuthResponse{
		Message: "Login successful",
		Token:   DemoToken,
		User: dto.RemoteUserDTO{
			ID:        1,
			Name:      "Demo Admin",
			Email:     null.StringFrom("admin@gearguard.demo"),
			Role:      "admin",
			CompanyID: null.Uint64From(1),
		},
	}
	m.Stages = []dto.StageDTO{
		{ID: 1, Name: "New Request", Sequence: null.IntFrom(10)},
		{ID: 2, Name: "In Progress", Sequence: null.IntFrom(20)},
		{ID: 3, Name: "Repaired", Sequence: null.IntFrom(30), IsClosed: null.BoolFrom(true)},
		{ID: 4, Name: "Scrap", Sequence: null.IntFrom(40), IsClosed: null.BoolFrom(true), IsScrap: null.BoolFrom(true)},
	}
	m.Teams = []dto.TeamDTO{
		{ID: 1, Name: "Internal Maintenance", CompanyID: null.Uint64From(1)},
		{ID: 2, Name: "Metrology", CompanyID: null.Uint64From(1)},
	}
	m.Equipment = append([]dto.EquipmentDTO(nil), demoEquipment...)
	m.Requests = append([]dto.MaintenanceRequestDTO(nil), demoRequests...)
	return m
}

var demoEquipment = []dto.EquipmentDTO{
	{ID: 1, Name: "Samsung Monitor 15\"", SerialNumber: null.StringFrom("MT/125/22778837"), CategoryID: null.Uint64From(2),
		MaintenanceTeamID: null.Uint64From(1), Health: null.IntFrom(92), Location: null.StringFrom("Office 2")},
	{ID: 2, Name: "Acer Laptop", SerialNumber: null.StringFrom("LP/203/19281928"), CategoryID: null.Uint64From(1),
		MaintenanceTeamID: null.Uint64From(1), Health: null.IntFrom(64), Location: null.StringFrom("Office 1")},
	{ID: 3, Name: "CNC Machine", SerialNumber: null.StringFrom("CNC/88/0001"), CategoryID: null.Uint64From(3),
		MaintenanceTeamID: null.Uint64From(2), Health: null.IntFrom(18), Location: null.StringFrom("Workshop")},
	{ID: 4, Name: "Hydraulic Press", SerialNumber: null.StringFrom("HP/12/7781"), CategoryID: null.Uint64From(3),
		MaintenanceTeamID: null.Uint64From(2), Health: null.IntFrom(41), Location: null.StringFrom("Workshop")},
}

var demoRequests = []dto.MaintenanceRequestDTO{
	{ID: 1, Subject: "Screen flickering", Type: null.StringFrom("corrective"), Priority: null.StringFrom("high"),
		StageID: null.Uint64From(1), EquipmentID: null.Uint64From(1), CreatedBy: null.Uint64From(1),
		KanbanState: null.StringFrom("normal"), CreatedAt: null.StringFrom("2024-04-01T09:00:00")},
	{ID: 2, Subject: "Spindle calibration", Type: null.StringFrom("preventive"), Priority: null.StringFrom("critical"),
		StageID: null.Uint64From(2), EquipmentID: null.Uint64From(3), TechnicianID: null.Uint64From(1),
		CreatedBy: null.Uint64From(1), KanbanState: null.StringFrom("blocked"), ScheduledDate: null.StringFrom("2024-04-15"),
		CreatedAt: null.StringFrom("2024-04-02T10:30:00")},
	{ID: 3, Subject: "Oil leak", Type: null.StringFrom("corrective"), Priority: null.StringFrom("medium"),
		StageID: null.Uint64From(3), EquipmentID: null.Uint64From(4), TechnicianID: null.Uint64From(1),
		CreatedBy: null.Uint64From(1), KanbanState: null.StringFrom("done"), CreatedAt: null.StringFrom("2024-03-20T08:15:00")},
}
