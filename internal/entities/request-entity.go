package entities

import "time"

type MaintenanceType string

const (
	MaintenanceCorrective MaintenanceType = "corrective"
	MaintenancePreventive MaintenanceType = "preventive"
)

type KanbanState string

const (
	KanbanNormal  KanbanState = "normal"
	KanbanBlocked KanbanState = "blocked"
	KanbanDone    KanbanState = "done"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// MaintenanceRequest - заявка на обслуживание.
type MaintenanceRequest struct {
	ID                uint64          `json:"id"`
	Subject           string          `json:"subject"`
	Description       *string         `json:"description,omitempty"`
	MaintenanceType   MaintenanceType `json:"maintenanceType"`
	EquipmentID       *uint64         `json:"equipmentId,omitempty"`
	WorkCenterID      *uint64         `json:"workCenterId,omitempty"`
	StageID           uint64          `json:"stageId"`
	KanbanState       KanbanState     `json:"kanbanState"`
	Priority          Priority        `json:"priority"`
	RequestDate       string          `json:"requestDate"`
	ScheduledDate     *string         `json:"scheduledDate,omitempty"`
	Duration          float64         `json:"duration"`
	CreatedByUserID   uint64          `json:"createdByUserId"`
	TechnicianUserID  *uint64         `json:"technicianUserId,omitempty"`
	MaintenanceTeamID *uint64         `json:"maintenanceTeamId,omitempty"`
	CompanyID         uint64          `json:"companyId"`
	Instruction       *string         `json:"instruction,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`

	Unsynced bool `json:"unsynced"`
}

// RequestPatch содержит ровно те поля, которые принимает PUT /maintenance/requests/:id.
type RequestPatch struct {
	StageID          *uint64
	TechnicianUserID *uint64
	Priority         *Priority
	KanbanState      *KanbanState
}

func (p RequestPatch) Apply(r MaintenanceRequest) MaintenanceRequest {
	if p.StageID != nil {
		r.StageID = *p.StageID
	}
	if p.TechnicianUserID != nil {
		r.TechnicianUserID = p.TechnicianUserID
	}
	if p.Priority != nil {
		r.Priority = *p.Priority
	}
	if p.KanbanState != nil {
		r.KanbanState = *p.KanbanState
	}
	return r
}

func (p RequestPatch) IsEmpty() bool {
	return p.StageID == nil && p.TechnicianUserID == nil && p.Priority == nil && p.KanbanState == nil
}
