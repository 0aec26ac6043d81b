package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/failtrack/internal/domain"
	"github.com/spec-kit/failtrack/internal/realtime"
)

const relayChannel = "failtrack:changes"

func newRelayFixture(t *testing.T) (redis.UniversalClient, *realtime.Hub, context.Context) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), Protocol: 2})
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := realtime.NewHub(nil, 4)
	go hub.Run(ctx)
	return client, hub, ctx
}

func TestRedisRelay_ForwardsOtherInstances(t *testing.T) {
	client, hub, ctx := newRelayFixture(t)

	ch, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	relay := NewRedisRelay(client, relayChannel, "instance-b", hub, nil)
	if _, err := relay.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	event := sampleEvent()
	event.Category = domain.CategoryTooling
	if err := NewRedisSink(client, relayChannel, "instance-a").Send(ctx, event); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	select {
	case raw := <-ch:
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if msg.Event != UpdateEventName || msg.Category != domain.CategoryTooling {
			t.Errorf("unexpected message %+v", msg)
		}
		if msg.Origin != "" {
			t.Errorf("origin leaked to subscribers: %q", msg.Origin)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("message from another instance was not relayed")
	}
}

func TestRedisRelay_SkipsOwnMessages(t *testing.T) {
	client, hub, ctx := newRelayFixture(t)

	ch, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	relay := NewRedisRelay(client, relayChannel, "instance-a", hub, nil)
	if _, err := relay.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := NewRedisSink(client, relayChannel, "instance-a").Send(ctx, sampleEvent()); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	// A later foreign message proves the relay processed the own one first.
	foreign := sampleEvent()
	foreign.Category = domain.CategoryTooling
	if err := NewRedisSink(client, relayChannel, "instance-c").Send(ctx, foreign); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	select {
	case raw := <-ch:
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if msg.Category != domain.CategoryTooling {
			t.Errorf("own message was relayed back: %+v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("foreign message was not relayed")
	}
}

func TestRedisRelay_IgnoresMalformedPayloads(t *testing.T) {
	client, hub, ctx := newRelayFixture(t)

	ch, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	relay := NewRedisRelay(client, relayChannel, "instance-a", hub, nil)
	if _, err := relay.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	tests := []string{"not json", `{"event":"ReceiveUpdate","category":"plumbing","origin":"x"}`}
	for _, payload := range tests {
		if err := client.Publish(ctx, relayChannel, payload).Err(); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
	}
	if err := NewRedisSink(client, relayChannel, "instance-z").Send(ctx, sampleEvent()); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	select {
	case raw := <-ch:
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if msg.Category != domain.CategoryMaintenance {
			t.Errorf("unexpected message %+v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("valid message after malformed ones was not relayed")
	}
}

func TestRedisRelay_StopsOnCancel(t *testing.T) {
	client, hub, _ := newRelayFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	done, err := NewRedisRelay(client, relayChannel, "instance-a", hub, nil).Start(ctx)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not stop after cancel")
	}
}
