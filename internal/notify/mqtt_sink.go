package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/spec-kit/failtrack/internal/events"
)

var errPublishTimeout = errors.New("mqtt publish timed out")

// MQTTSink publishes notifications to <prefix>/<category>/changed.
type MQTTSink struct {
	client  mqtt.Client
	prefix  string
	timeout time.Duration
}

// NewMQTTSink builds a sink on an already connected client.
func NewMQTTSink(client mqtt.Client, prefix string) *MQTTSink {
	return &MQTTSink{client: client, prefix: prefix, timeout: 2 * time.Second}
}

func (s *MQTTSink) Name() string { return "mqtt" }

// Topic returns the topic used for a category.
func (s *MQTTSink) Topic(event events.Event) string {
	return fmt.Sprintf("%s/%s/changed", s.prefix, event.Category)
}

func (s *MQTTSink) Send(_ context.Context, event events.Event) error {
	payload, err := Encode(event)
	if err != nil {
		return err
	}
	token := s.client.Publish(s.Topic(event), 0, false, payload)
	if !token.WaitTimeout(s.timeout) {
		return errPublishTimeout
	}
	return token.Error()
}
