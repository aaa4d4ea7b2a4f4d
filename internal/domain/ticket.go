package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. The string values are
// persisted and compared verbatim.
type TicketStatus string

const (
	TicketStatusOpen    TicketStatus = "Open"
	TicketStatusClaimed TicketStatus = "Claimed"
	TicketStatusClosed  TicketStatus = "Closed"
)

// Valid reports whether s is a known status.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusClaimed, TicketStatusClosed:
		return true
	}
	return false
}

// TicketMode says how help is delivered.
type TicketMode int

const (
	TicketModeInPerson TicketMode = 1
	TicketModeOnline   TicketMode = 2
)

// Valid reports whether m is one of the enumerated modes.
func (m TicketMode) Valid() bool {
	return m == TicketModeInPerson || m == TicketModeOnline
}

func (m TicketMode) String() string {
	switch m {
	case TicketModeInPerson:
		return "InPerson"
	case TicketModeOnline:
		return "Online"
	}
	return "Unknown"
}

// Ticket is a single student help request.
type Ticket struct {
	ID                string
	StudentEmail      string
	StudentName       string
	Course            *string
	Section           *string
	AssignmentName    string
	SpecificQuestion  string
	ProblemType       *int64
	Mode              TicketMode
	Status            TicketStatus
	TutorID           *string
	TimeClaimed       *time.Time
	TimeClosed        *time.Time
	SessionDuration   *time.Duration
	TutorNotes        *string
	SuccessfulSession bool
	CreatedAt         time.Time
}
