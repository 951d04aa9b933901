package entities

import "time"

const (
	ActivityCreated    = "created"
	ActivityStageMoved = "stage_moved"
	ActivityAccepted   = "accepted"
	ActivityUpdated    = "updated"
	ActivityDeleted    = "deleted"
)

// MaintenanceRequestActivity - запись журнала действий по заявке.
type MaintenanceRequestActivity struct {
	ID              uint64    `json:"id"`
	RequestID       uint64    `json:"requestId"`
	ActivityType    string    `json:"activityType"`
	Description     string    `json:"description"`
	CreatedByUserID uint64    `json:"createdByUserId"`
	CreatedAt       time.Time `json:"createdAt"`
}
