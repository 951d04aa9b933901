package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gearguard/internal/events"
	"gearguard/internal/repositories"
	"gearguard/pkg/eventbus"
)

// ActivityListener пишет действия над заявками в журнал Postgres.
type ActivityListener struct {
	repo   repositories.ActivityRepositoryInterface
	logger *zap.Logger
}

func NewActivityListener(repo repositories.ActivityRepositoryInterface, logger *zap.Logger) *ActivityListener {
	return &ActivityListener{repo: repo, logger: logger}
}

func (l *ActivityListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.RequestActivityName, l.handleActivity)
	l.logger.Info("ActivityListener подписан на событие", zap.String("event", events.RequestActivityName))
}

func (l *ActivityListener) handleActivity(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.RequestActivityEvent)
	if !ok {
		return fmt.Errorf("ActivityListener: неожиданный тип события %T", event)
	}
	activity := e.Activity
	if _, err := l.repo.Create(ctx, &activity); err != nil {
		return fmt.Errorf("запись журнала заявки %d: %w", activity.RequestID, err)
	}
	l.logger.Debug("Действие записано в журнал",
		zap.Uint64("requestID", activity.RequestID),
		zap.String("type", activity.ActivityType),
	)
	return nil
}
