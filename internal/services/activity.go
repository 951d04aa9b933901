package services

import (
	"context"

	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/pkg/eventbus"
)

// recordActivity публикует действие над заявкой; журнал пишет слушатель.
func recordActivity(ctx context.Context, bus *eventbus.Bus, requestID, userID uint64, activityType, description string) {
	if bus == nil {
		return
	}
	bus.Publish(ctx, events.RequestActivityEvent{Activity: entities.MaintenanceRequestActivity{
		RequestID:       requestID,
		ActivityType:    activityType,
		Description:     description,
		CreatedByUserID: userID,
		CreatedAt:       timeNow(),
	}})
}
