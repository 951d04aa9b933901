package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"gearguard/pkg/metrics"
)

// Hub держит все соединения и рассылает сообщения.
type Hub struct {
	clients     map[*Client]bool
	userClients map[uint64][]*Client
	broadcast   chan []byte
	register    chan *Client
	unregister  chan *Client
	done        chan struct{}
	mu          sync.RWMutex
	logger      *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		userClients: make(map[uint64][]*Client),
		broadcast:   make(chan []byte, 64),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		done:        make(chan struct{}),
		logger:      logger,
	}
}

// Register и Unregister не блокируются после остановки хаба.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.Send)
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Run обслуживает каналы хаба до отмены ctx.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.userClients[client.UserID] = append(h.userClients[client.UserID], client)
			h.mu.Unlock()
			metrics.WebsocketConnected()
			h.logger.Info("websocket: клиент зарегистрирован", zap.String("client", client.ID), zap.Uint64("userID", client.UserID))
		case client := <-h.unregister:
			h.mu.Lock()
			removed := h.remove(client)
			h.mu.Unlock()
			if removed {
				h.logger.Info("websocket: клиент отсоединён", zap.String("client", client.ID))
			}
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// медленный клиент отключается
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove вызывается под h.mu.
func (h *Hub) remove(client *Client) bool {
	if _, ok := h.clients[client]; !ok {
		return false
	}
	delete(h.clients, client)
	close(client.Send)
	clients := h.userClients[client.UserID]
	for i, c := range clients {
		if c == client {
			h.userClients[client.UserID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(h.userClients[client.UserID]) == 0 {
		delete(h.userClients, client.UserID)
	}
	metrics.WebsocketDisconnected()
	return true
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		h.remove(client)
	}
}

func encode(messageType string, payload interface{}) ([]byte, error) {
	return json.Marshal(Envelope{Type: messageType, Payload: payload, Timestamp: time.Now().UTC()})
}

// Broadcast ставит сообщение в очередь рассылки всем клиентам.
func (h *Hub) Broadcast(messageType string, payload interface{}) error {
	messageBytes, err := encode(messageType, payload)
	if err != nil {
		h.logger.Error("websocket: ошибка сериализации", zap.Error(err))
		return err
	}
	select {
	case h.broadcast <- messageBytes:
	case <-h.done:
	}
	return nil
}

// SendMessageToUser отправляет сообщение всем соединениям одного пользователя.
func (h *Hub) SendMessageToUser(userID uint64, messageType string, payload interface{}) error {
	messageBytes, err := encode(messageType, payload)
	if err != nil {
		h.logger.Error("websocket: ошибка сериализации", zap.Error(err))
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.userClients[userID] {
		select {
		case client.Send <- messageBytes:
		default:
			h.logger.Warn("websocket: очередь клиента переполнена", zap.String("client", client.ID))
		}
	}
	return nil
}

// ClientCount - число активных соединений.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
