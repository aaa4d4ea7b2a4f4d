package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/tutor-helpdesk/internal/config"
	"github.com/spec-kit/tutor-helpdesk/internal/events"
)

func TestNotificationServiceLogsEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{
		EmailFrom:  "desk@example.edu",
		WebhookURL: "https://hooks.example.edu/tutors",
	})
	svc.RegisterHandlers()

	ctx := context.Background()
	if err := dispatcher.Publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: "t1",
		Payload:  events.TicketCreatedPayload{StudentEmail: "a@b.com"},
	}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := dispatcher.Publish(ctx, events.Event{Type: events.EventTicketClosed, TicketID: "t1"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if err := dispatcher.Publish(ctx, events.Event{Type: events.EventTicketEdited, TicketID: "t1"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if logs.FilterMessage("ticket event").Len() != 3 {
		t.Error("expected every event to be logged")
	}
	if logs.FilterMessage("email notification stub").Len() != 1 {
		t.Error("expected a student receipt")
	}
	if logs.FilterMessage("webhook notification stub").Len() != 2 {
		t.Error("expected a webhook for creation and close only")
	}
}
