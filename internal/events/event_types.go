package events

import (
	"time"

	"github.com/spec-kit/failtrack/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	// EventTicketsChanged is emitted once per successful create or update.
	EventTicketsChanged EventType = "tickets_changed"
)

// Event represents a domain event emitted by services. It carries no ticket payload.
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Category  domain.Category `json:"category"`
	Timestamp time.Time       `json:"timestamp"`
}
