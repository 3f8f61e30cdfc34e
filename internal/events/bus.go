package events

import (
	"fmt"
	"sync"

	"github.com/charleschow/hoops-analyst/internal/telemetry"
)

// Handler consumes a projection or edge event. An error is counted and
// logged; the remaining subscribers still run.
type Handler func(Event) error

// Bus fans projection and edge events out to the journal, alerting, stream
// and websocket subscribers. Publish runs handlers in subscription order on
// the caller's goroutine, so subscribers that do I/O hand off to their own
// worker queue.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds h to the handlers for eventType.
func (b *Bus) Subscribe(eventType EventType, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
}

// Publish delivers e to every handler subscribed to its type and returns
// how many of them failed.
func (b *Bus) Publish(e Event) int {
	b.mu.RLock()
	handlers := b.handlers[e.Type]
	b.mu.RUnlock()

	failed := 0
	for i, h := range handlers {
		if err := h(e); err != nil {
			failed++
			telemetry.Metrics.HandlerErrors.Inc()
			telemetry.With("game", e.GameID, "event", e.ID).
				Warn(fmt.Sprintf("bus: %s handler %d: %v", e.Type, i, err))
		}
	}
	return failed
}

// Subscribers reports how many handlers are subscribed to eventType.
func (b *Bus) Subscribers(eventType EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}
