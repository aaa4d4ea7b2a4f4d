package dto

import (
	"time"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
)

// TicketView is the tutor-facing representation of a ticket.
type TicketView struct {
	ID                string              `json:"id"`
	StudentEmail      string              `json:"student_email"`
	StudentName       string              `json:"student_name"`
	Course            *string             `json:"course"`
	Section           *string             `json:"section"`
	AssignmentName    string              `json:"assignment_name"`
	SpecificQuestion  string              `json:"specific_question"`
	ProblemType       *int64              `json:"problem_type"`
	Mode              string              `json:"mode"`
	Status            domain.TicketStatus `json:"status"`
	TutorID           *string             `json:"tutor_id"`
	TimeClaimed       *time.Time          `json:"time_claimed"`
	TimeClosed        *time.Time          `json:"time_closed"`
	SessionDuration   *string             `json:"session_duration"`
	TutorNotes        *string             `json:"tutor_notes"`
	SuccessfulSession bool                `json:"successful_session"`
	CreatedAt         time.Time           `json:"created_at"`
}

// TicketListResponse is returned by view-tickets.
type TicketListResponse struct {
	Tickets []TicketView                `json:"tickets"`
	Counts  map[domain.TicketStatus]int `json:"counts"`
	Flash   *domain.Flash               `json:"flash"`
}

// TicketHistoryView is one audit entry.
type TicketHistoryView struct {
	ChangeType domain.TicketChangeType `json:"change_type"`
	ChangedBy  *string                 `json:"changed_by"`
	OldValue   map[string]any          `json:"old_value"`
	NewValue   map[string]any          `json:"new_value"`
	CreatedAt  time.Time               `json:"created_at"`
}
