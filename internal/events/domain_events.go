package events

import "gearguard/internal/entities"

const (
	CollectionChangedName = "collection.changed"
	RequestActivityName   = "request.activity"
	SessionEndedName      = "session.ended"
)

// Коллекции доменного репозитория.
const (
	CollectionEquipment = "equipment"
	CollectionRequests  = "requests"
	CollectionTeams     = "teams"
	CollectionStages    = "stages"
)

// Действия над коллекцией.
const (
	ActionRefreshed = "refreshed"
	ActionAdded     = "added"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
)

// CollectionChangedEvent - коллекция репозитория изменилась.
// Unsynced: изменение применено только локально.
type CollectionChangedEvent struct {
	Collection string `json:"collection"`
	Action     string `json:"action"`
	EntityID   uint64 `json:"entityId,omitempty"`
	Unsynced   bool   `json:"unsynced"`
}

func (e CollectionChangedEvent) Name() string { return CollectionChangedName }

// RequestActivityEvent - действие пользователя над заявкой, уходит в журнал.
type RequestActivityEvent struct {
	Activity entities.MaintenanceRequestActivity `json:"activity"`
}

func (e RequestActivityEvent) Name() string { return RequestActivityName }

// SessionEndedEvent - сессия закрыта: выход пользователя или 401 от API.
type SessionEndedEvent struct {
	UserID uint64 `json:"userId"`
	Reason string `json:"reason"`
}

func (e SessionEndedEvent) Name() string { return SessionEndedName }
