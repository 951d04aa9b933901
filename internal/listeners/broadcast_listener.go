package listeners

import (
	"context"

	"go.uber.org/zap"

	"gearguard/internal/events"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/websocket"
)

// Broadcaster - куда уходят живые обновления. Реализуется websocket.Hub.
type Broadcaster interface {
	Broadcast(messageType string, payload interface{}) error
	SendMessageToUser(userID uint64, messageType string, payload interface{}) error
}

// BroadcastListener пересылает доменные события подключённым клиентам.
type BroadcastListener struct {
	hub    Broadcaster
	logger *zap.Logger
}

func NewBroadcastListener(hub Broadcaster, logger *zap.Logger) *BroadcastListener {
	return &BroadcastListener{hub: hub, logger: logger}
}

func (l *BroadcastListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.CollectionChangedName, l.handle)
	bus.Subscribe(events.RequestActivityName, l.handle)
	bus.Subscribe(events.SessionEndedName, l.handle)
	l.logger.Info("BroadcastListener подписан на доменные события")
}

func (l *BroadcastListener) handle(ctx context.Context, event eventbus.Event) error {
	switch e := event.(type) {
	case events.CollectionChangedEvent:
		return l.hub.Broadcast(websocket.MessageCollectionChanged, e)
	case events.RequestActivityEvent:
		return l.hub.Broadcast(websocket.MessageRequestActivity, e.Activity)
	case events.SessionEndedEvent:
		if e.UserID == 0 {
			return l.hub.Broadcast(websocket.MessageSessionEnded, e)
		}
		return l.hub.SendMessageToUser(e.UserID, websocket.MessageSessionEnded, e)
	}
	l.logger.Debug("BroadcastListener: событие пропущено", zap.String("event", event.Name()))
	return nil
}
