package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/tutor-helpdesk/internal/config"
	"github.com/spec-kit/tutor-helpdesk/internal/events"
)

// eventSummaries lists the events that notify, with the line sent to tutors.
var eventSummaries = map[events.EventType]string{
	events.EventTicketCreated:  "new ticket in the queue",
	events.EventTicketClaimed:  "ticket claimed",
	events.EventTicketClosed:   "ticket closed",
	events.EventTicketReopened: "ticket back in the queue",
	events.EventTicketEdited:   "ticket edited",
}

// NotificationService turns ticket events into student receipts and tutor
// webhook pings. Delivery is stubbed out and logged.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{dispatcher: dispatcher, logger: logger, cfg: cfg}
}

// RegisterHandlers subscribes to every notifying event.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	for eventType := range eventSummaries {
		n.dispatcher.Subscribe(eventType, n.handle)
	}
}

func (n *NotificationService) handle(ctx context.Context, event events.Event) error {
	summary := eventSummaries[event.Type]
	n.logger.Info("ticket event",
		zap.String("event_type", string(event.Type)),
		zap.String("ticket_id", event.TicketID),
		zap.String("actor_id", event.ActorID),
		zap.String("summary", summary))

	if payload, ok := event.Payload.(events.TicketCreatedPayload); ok {
		n.sendReceipt(ctx, event, payload.StudentEmail)
	}
	// Edits do not ping the webhook.
	if event.Type != events.EventTicketEdited {
		n.pingWebhook(ctx, event, summary)
	}
	return nil
}

func (n *NotificationService) sendReceipt(_ context.Context, event events.Event, to string) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" || strings.TrimSpace(to) == "" {
		return
	}
	n.logger.Debug("email notification stub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", to),
		zap.String("ticket_id", event.TicketID))
}

func (n *NotificationService) pingWebhook(_ context.Context, event events.Event, summary string) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("webhook notification stub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("ticket_id", event.TicketID),
		zap.String("summary", summary))
}
