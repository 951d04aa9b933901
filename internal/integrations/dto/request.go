package dto

import "github.com/aarondl/null/v8"

type MaintenanceRequestDTO struct {
	ID                uint64       `json:"id"`
	Subject           string       `json:"subject"`
	Description       null.String  `json:"description"`
	Type              null.String  `json:"type"`
	Priority          null.String  `json:"priority"`
	StageID           null.Uint64  `json:"stage_id"`
	StageName         null.String  `json:"stage_name"`
	EquipmentID       null.Uint64  `json:"equipment_id"`
	EquipmentName     null.String  `json:"equipment_name"`
	TechnicianName    null.String  `json:"technician_name"`
	TechnicianID      null.Uint64  `json:"technician_id"`
	CreatedBy         null.Uint64  `json:"created_by"`
	KanbanState       null.String  `json:"kanban_state"`
	ScheduledDate     null.String  `json:"scheduled_date"`
	DurationHours     null.Float64 `json:"duration_hours"`
	MaintenanceTeamID null.Uint64  `json:"maintenance_team_id"`
	CompanyID         null.Uint64  `json:"company_id"`
	CreatedAt         null.String  `json:"created_at"`
}

func (r MaintenanceRequestDTO) GetID() uint64 { return r.ID }

type CreateRequestPayload struct {
	Subject       string  `json:"subject"`
	Description   *string `json:"description,omitempty"`
	RequestType   string  `json:"request_type"`
	EquipmentID   *uint64 `json:"equipment_id,omitempty"`
	Priority      string  `json:"priority,omitempty"`
	ScheduledDate *string `json:"scheduled_date,omitempty"`
	StageID       *uint64 `json:"stage_id,omitempty"`
}

// UpdateRequestPayload - PUT /maintenance/requests/:id принимает только эти поля.
type UpdateRequestPayload struct {
	StageID          *uint64 `json:"stage_id,omitempty"`
	TechnicianUserID *uint64 `json:"technician_user_id,omitempty"`
	Priority         *string `json:"priority,omitempty"`
	KanbanState      *string `json:"kanban_state,omitempty"`
}
