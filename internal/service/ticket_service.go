package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
	"github.com/spec-kit/tutor-helpdesk/internal/events"
	"github.com/spec-kit/tutor-helpdesk/internal/repository"
)

// TicketService handles ticket intake and listing.
type TicketService struct {
	tickets      repository.TicketRepository
	problemTypes repository.ProblemTypeRepository
	dispatcher   events.Dispatcher
	logger       *zap.Logger
	now          func() time.Time
}

// TicketDependencies bundles collaborators for the ticket services.
type TicketDependencies struct {
	TicketRepo      repository.TicketRepository
	ProblemTypeRepo repository.ProblemTypeRepository
	UserRepo        repository.UserRepository
	HistoryRepo     repository.TicketHistoryRepository
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
	// Clock defaults to UTC wall time.
	Clock func() time.Time
	// TutorPermission is the minimum permission for lifecycle actions.
	TutorPermission domain.PermissionLevel
}

func (d TicketDependencies) clock() func() time.Time {
	if d.Clock != nil {
		return d.Clock
	}
	return func() time.Time { return time.Now().UTC() }
}

func (d TicketDependencies) logger() *zap.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return zap.NewNop()
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:      deps.TicketRepo,
		problemTypes: deps.ProblemTypeRepo,
		dispatcher:   deps.Dispatcher,
		logger:       deps.logger(),
		now:          deps.clock(),
	}
}

// ProblemTypes loads the current problem type set.
func (s *TicketService) ProblemTypes(ctx context.Context) (*domain.ProblemTypeSet, error) {
	items, err := s.problemTypes.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewProblemTypeSet(items), nil
}

// CreateTicket validates the submission and persists the ticket with a
// single insert. Store failures are classified as integrity or unknown.
func (s *TicketService) CreateTicket(ctx context.Context, form IntakeForm, identity *Identity) (*domain.Ticket, error) {
	problemTypes, err := s.ProblemTypes(ctx)
	if err != nil {
		s.logger.Error("load problem types", zap.Error(err))
		return nil, createFailed(err)
	}

	ticket, err := ValidateIntake(form, identity, problemTypes, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		failure := createFailed(err)
		s.logger.Error("create ticket", zap.String("student_email", ticket.StudentEmail), zap.Error(err))
		return nil, failure
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			StudentEmail:   ticket.StudentEmail,
			Course:         ticket.Course,
			AssignmentName: ticket.AssignmentName,
			Mode:           ticket.Mode,
		},
	})
	return ticket, nil
}

// Submit runs CreateTicket and reports the request outcome.
func (s *TicketService) Submit(ctx context.Context, form IntakeForm, identity *Identity) Outcome {
	ticket, err := s.CreateTicket(ctx, form, identity)
	if err != nil {
		return failureOutcome(err)
	}
	return successOutcome(ticket, domain.FlashSuccess, MsgTicketCreated)
}

// ListTickets returns tickets of every status unless the filter narrows it.
func (s *TicketService) ListTickets(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	return s.tickets.List(ctx, filter)
}

// CountByStatus reports queue sizes.
func (s *TicketService) CountByStatus(ctx context.Context) (map[domain.TicketStatus]int, error) {
	return s.tickets.CountByStatus(ctx)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	publish(ctx, s.dispatcher, s.logger, s.now, event)
}

func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, now func() time.Time, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = now()
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
