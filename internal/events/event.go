package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is the envelope that flows through the event bus.
type Event struct {
	ID        string
	Type      EventType
	GameID    string
	Timestamp time.Time
	Payload   any
}

type EventType string

const (
	// Every completed projection.
	EventProjection EventType = "projection"
	// A projection with at least one trigger fired.
	EventEdge EventType = "edge"
)

// New stamps an event with a fresh ID and the current time.
func New(t EventType, gameID string, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		GameID:    gameID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}
