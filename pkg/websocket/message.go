package websocket

import "time"

// Типы сообщений для фронтенда.
const (
	MessageCollectionChanged = "collection.changed"
	MessageRequestActivity   = "request.activity"
	MessageSessionEnded      = "session.ended"
)

// Envelope - "конверт" сообщения: тип подсказывает фронтенду, что делать.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}
