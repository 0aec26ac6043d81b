package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/failtrack/internal/events"
	"github.com/spec-kit/failtrack/internal/notify"
	"github.com/spec-kit/failtrack/internal/observability"
)

// NotificationService forwards tickets-changed events to every configured sink.
type NotificationService struct {
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	metrics     *observability.Metrics
	sinks       []notify.Sink
	sendTimeout time.Duration
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics, sinks ...notify.Sink) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher:  dispatcher,
		logger:      logger,
		metrics:     metrics,
		sinks:       sinks,
		sendTimeout: 5 * time.Second,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketsChanged, n.handleTicketsChanged)
}

// Sinks returns the names of the active sinks.
func (n *NotificationService) Sinks() []string {
	names := make([]string, 0, len(n.sinks))
	for _, sink := range n.sinks {
		names = append(names, sink.Name())
	}
	return names
}

// handleTicketsChanged never returns an error: delivery is best-effort per sink.
func (n *NotificationService) handleTicketsChanged(ctx context.Context, event events.Event) error {
	for _, sink := range n.sinks {
		sendCtx, cancel := context.WithTimeout(ctx, n.sendTimeout)
		err := sink.Send(sendCtx, event)
		cancel()

		n.metrics.RecordNotification(sink.Name(), err)
		if err != nil {
			n.logger.Warn("notification delivery failed",
				zap.String("sink", sink.Name()),
				zap.String("event_id", event.ID),
				zap.String("category", string(event.Category)),
				zap.Error(err))
			continue
		}
		n.logger.Debug("notification delivered",
			zap.String("sink", sink.Name()),
			zap.String("event_id", event.ID))
	}
	return nil
}
