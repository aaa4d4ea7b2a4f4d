package worker

import "go.uber.org/zap"

// Notifier subscribes its handlers to the event dispatcher.
type Notifier interface {
	RegisterHandlers()
}

// StartNotificationWorker subscribes the notifier once. Handlers run inline
// on the publishing request, so there is nothing to drain on shutdown.
func StartNotificationWorker(notifier Notifier, logger *zap.Logger) {
	if notifier == nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	notifier.RegisterHandlers()
	logger.Info("notification handlers registered")
}
