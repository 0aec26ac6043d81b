package notify

import (
	"context"

	"github.com/spec-kit/failtrack/internal/events"
	"github.com/spec-kit/failtrack/internal/realtime"
)

// HubSink pushes notifications to the in-process stream hub.
type HubSink struct {
	hub *realtime.Hub
}

// NewHubSink wraps hub.
func NewHubSink(hub *realtime.Hub) *HubSink {
	return &HubSink{hub: hub}
}

func (s *HubSink) Name() string { return "sse" }

func (s *HubSink) Send(_ context.Context, event events.Event) error {
	payload, err := Encode(event)
	if err != nil {
		return err
	}
	return s.hub.Broadcast(payload)
}
