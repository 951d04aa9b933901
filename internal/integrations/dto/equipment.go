package dto

import "github.com/aarondl/null/v8"

// EquipmentDTO - оборудование в формате удалённого API.
// Список отдаёт health, карточка и запись принимают health_percentage.
type EquipmentDTO struct {
	ID                  uint64      `json:"id"`
	Name                string      `json:"name"`
	SerialNumber        null.String `json:"serial_number"`
	CategoryID          null.Uint64 `json:"category_id"`
	MaintenanceTeamID   null.Uint64 `json:"maintenance_team_id"`
	TechnicianID        null.Uint64 `json:"technician_id"`
	TechnicianUserID    null.Uint64 `json:"technician_user_id"`
	CompanyID           null.Uint64 `json:"company_id"`
	Health              null.Int    `json:"health"`
	HealthPercentage    null.Int    `json:"health_percentage"`
	Location            null.String `json:"location"`
	ActiveRequestsCount null.Int    `json:"active_requests_count"`
}

func (e EquipmentDTO) GetID() uint64 { return e.ID }

// EquipmentPayload - тело POST/PUT /equipment. nil-поля не отправляются,
// иначе сервер затрёт их значением null.
type EquipmentPayload struct {
	Name              *string `json:"name,omitempty"`
	SerialNumber      *string `json:"serial_number,omitempty"`
	CategoryID        *uint64 `json:"category_id,omitempty"`
	MaintenanceTeamID *uint64 `json:"maintenance_team_id,omitempty"`
	TechnicianUserID  *uint64 `json:"technician_user_id,omitempty"`
	CompanyID         *uint64 `json:"company_id,omitempty"`
	Location          *string `json:"location,omitempty"`
	HealthPercentage  *int    `json:"health_percentage,omitempty"`
}
