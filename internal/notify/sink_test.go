package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/failtrack/internal/domain"
	"github.com/spec-kit/failtrack/internal/events"
	"github.com/spec-kit/failtrack/internal/realtime"
)

func sampleEvent() events.Event {
	return events.Event{
		ID:        "evt-1",
		Type:      events.EventTicketsChanged,
		Category:  domain.CategoryMaintenance,
		Timestamp: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestEncode(t *testing.T) {
	raw, err := Encode(sampleEvent())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Event != UpdateEventName || msg.Category != domain.CategoryMaintenance || msg.Origin != "" {
		t.Errorf("unexpected message %+v", msg)
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(fields) != 2 {
		t.Errorf("payload carries extra fields: %s", raw)
	}
}

func TestHubSink_Send(t *testing.T) {
	hub := realtime.NewHub(nil, 2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	ch, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	sink := NewHubSink(hub)
	if sink.Name() != "sse" {
		t.Errorf("Name() = %s", sink.Name())
	}
	if err := sink.Send(ctx, sampleEvent()); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	select {
	case msg := <-ch:
		var decoded Message
		if err := json.Unmarshal(msg, &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if decoded.Event != UpdateEventName {
			t.Errorf("event = %s", decoded.Event)
		}
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}

func TestMQTTSink_Topic(t *testing.T) {
	sink := NewMQTTSink(nil, "failtrack")
	event := sampleEvent()
	event.Category = domain.CategoryTooling
	if got := sink.Topic(event); got != "failtrack/tooling/changed" {
		t.Errorf("Topic() = %s", got)
	}
}

func TestRedisSink_UnreachableServerReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	sink := NewRedisSink(client, "failtrack:changes", "instance-a")
	if err := sink.Send(context.Background(), sampleEvent()); err == nil {
		t.Fatal("expected error publishing to an unreachable server")
	}
}
