package worker

import (
	"context"

	"github.com/spec-kit/failtrack/internal/events"
	"github.com/spec-kit/failtrack/internal/service"
)

// StartNotificationWorker registers notification handlers and drains the
// dispatcher queue on a background goroutine until ctx is cancelled.
func StartNotificationWorker(ctx context.Context, dispatcher *events.QueueDispatcher, notificationService *service.NotificationService) <-chan struct{} {
	done := make(chan struct{})
	if dispatcher == nil {
		close(done)
		return done
	}
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	go func() {
		defer close(done)
		dispatcher.Run(ctx)
	}()
	return done
}
