// Package notify delivers tickets-changed notifications to subscriber transports.
package notify

import (
	"context"
	"encoding/json"

	"github.com/spec-kit/failtrack/internal/domain"
	"github.com/spec-kit/failtrack/internal/events"
)

// UpdateEventName is the event name subscribers listen for.
const UpdateEventName = "ReceiveUpdate"

// Sink is one notification transport.
type Sink interface {
	Name() string
	Send(ctx context.Context, event events.Event) error
}

// Message is the wire form pushed to subscribers. Origin is only set on the
// Redis channel, where it names the publishing instance.
type Message struct {
	Event    string          `json:"event"`
	Category domain.Category `json:"category"`
	Origin   string          `json:"origin,omitempty"`
}

// Encode renders the subscriber message for event.
func Encode(event events.Event) ([]byte, error) {
	return json.Marshal(Message{Event: UpdateEventName, Category: event.Category})
}

func encodeFrom(event events.Event, origin string) ([]byte, error) {
	return json.Marshal(Message{Event: UpdateEventName, Category: event.Category, Origin: origin})
}
