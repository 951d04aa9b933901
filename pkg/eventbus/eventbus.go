package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// AllEvents - имя подписки на любые события.
const AllEvents = "*"

type Event interface {
	Name() string
}

type Listener func(ctx context.Context, event Event) error

// Bus - шина событий. Слушатели вызываются асинхронно, каждый в своей горутине.
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	timeout   time.Duration
	wg        sync.WaitGroup
	logger    *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		timeout:   time.Minute,
		logger:    logger,
	}
}

// Subscribe подписывает слушателя на событие. AllEvents - на все события.
func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish раздаёт событие подписчикам и не ждёт их завершения.
// Контекст вызова не передаётся: обработчик не должен умирать вместе с HTTP-запросом.
func (b *Bus) Publish(_ context.Context, event Event) {
	eventName := event.Name()

	b.mu.RLock()
	targets := make([]Listener, 0, len(b.listeners[eventName])+len(b.listeners[AllEvents]))
	targets = append(targets, b.listeners[eventName]...)
	targets = append(targets, b.listeners[AllEvents]...)
	b.mu.RUnlock()

	for _, listener := range targets {
		b.wg.Add(1)
		go func(l Listener) {
			defer b.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
			defer cancel()

			if err := l(ctx, event); err != nil {
				b.logger.Error("Ошибка в обработчике события",
					zap.String("event", eventName),
					zap.Error(err),
				)
			}
		}(listener)
	}
}

// Wait дожидается всех запущенных обработчиков. Нужен при остановке и в тестах.
func (b *Bus) Wait() {
	b.wg.Wait()
}
