package events

import (
	"time"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated  EventType = "ticket_created"
	EventTicketClaimed  EventType = "ticket_claimed"
	EventTicketClosed   EventType = "ticket_closed"
	EventTicketReopened EventType = "ticket_reopened"
	EventTicketEdited   EventType = "ticket_edited"
)

// Event represents a domain event emitted by services. ActorID is empty for
// anonymous student submissions.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	StudentEmail   string            `json:"student_email"`
	Course         *string           `json:"course,omitempty"`
	AssignmentName string            `json:"assignment_name"`
	Mode           domain.TicketMode `json:"mode"`
}

// TicketStatusChangedPayload is shared by claim, close and reopen.
type TicketStatusChangedPayload struct {
	OldStatus       domain.TicketStatus `json:"old_status"`
	NewStatus       domain.TicketStatus `json:"new_status"`
	TutorID         *string             `json:"tutor_id,omitempty"`
	SessionDuration *time.Duration      `json:"session_duration,omitempty"`
}

// TicketEditedPayload lists the fields an edit overwrote.
type TicketEditedPayload struct {
	Fields []string `json:"fields"`
}
