package dto

import "time"

type CreateRequestDTO struct {
	Subject         string  `json:"subject" validate:"required"`
	Description     *string `json:"description,omitempty"`
	MaintenanceType string  `json:"maintenanceType" validate:"omitempty,maintenance_type"`
	EquipmentID     *uint64 `json:"equipmentId,omitempty" validate:"omitempty,gt=0"`
	Priority        string  `json:"priority" validate:"omitempty,priority"`
	ScheduledDate   *string `json:"scheduledDate,omitempty" validate:"omitempty,ymd_date"`
}

// RequestDTO - карточка заявки с разрешёнными ссылками.
type RequestDTO struct {
	ID               uint64    `json:"id"`
	Subject          string    `json:"subject"`
	Description      *string   `json:"description,omitempty"`
	MaintenanceType  string    `json:"maintenanceType"`
	EquipmentID      *uint64   `json:"equipmentId,omitempty"`
	EquipmentName    string    `json:"equipmentName"`
	StageID          uint64    `json:"stageId"`
	StageName        string    `json:"stageName"`
	KanbanState      string    `json:"kanbanState"`
	Marker           string    `json:"marker"`
	Priority         string    `json:"priority"`
	PriorityBadge    string    `json:"priorityBadge"`
	RequestDate      string    `json:"requestDate"`
	ScheduledDate    *string   `json:"scheduledDate,omitempty"`
	Overdue          bool      `json:"overdue"`
	CreatedByUserID  uint64    `json:"createdByUserId"`
	TechnicianUserID *uint64   `json:"technicianUserId,omitempty"`
	CanAccept        bool      `json:"canAccept"`
	CreatedAt        time.Time `json:"createdAt"`
	Unsynced         bool      `json:"unsynced"`
}

type ActivityDTO struct {
	ID              uint64    `json:"id"`
	ActivityType    string    `json:"activityType"`
	Description     string    `json:"description"`
	CreatedByUserID uint64    `json:"createdByUserId"`
	CreatedAt       time.Time `json:"createdAt"`
}
