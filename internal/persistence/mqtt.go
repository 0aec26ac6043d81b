package persistence

import (
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/spec-kit/failtrack/internal/config"
)

// MQTT wraps an optional broker connection.
type MQTT struct {
	Client mqtt.Client
}

// NewMQTT connects to the broker when one is configured. A failed connection
// is logged and leaves the client nil so the rest of the service keeps working.
func NewMQTT(cfg config.MQTTConfig, logger *zap.Logger) *MQTT {
	if cfg.Broker == "" {
		logger.Info("MQTT_BROKER not provided; mqtt notifications disabled")
		return &MQTT{}
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetConnectTimeout(5 * time.Second).
		SetKeepAlive(30 * time.Second).
		SetAutoReconnect(true).
		SetConnectRetryInterval(2 * time.Second)

	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		logger.Warn("mqtt connection lost", zap.Error(err))
	}
	opts.OnConnect = func(_ mqtt.Client) {
		logger.Info("connected to mqtt", zap.String("broker", cfg.Broker), zap.String("client_id", cfg.ClientID))
	}

	client := mqtt.NewClient(opts)
	tok := client.Connect()
	if !tok.WaitTimeout(10 * time.Second) {
		logger.Warn("mqtt connect timed out", zap.String("broker", cfg.Broker))
		return &MQTT{}
	}
	if err := tok.Error(); err != nil {
		logger.Warn("unable to reach mqtt broker", zap.Error(err))
		return &MQTT{}
	}
	return &MQTT{Client: client}
}

// Enabled reports whether a broker connection exists.
func (m *MQTT) Enabled() bool {
	return m != nil && m.Client != nil
}

// Close disconnects from the broker.
func (m *MQTT) Close() {
	if m.Enabled() {
		m.Client.Disconnect(250)
	}
}
