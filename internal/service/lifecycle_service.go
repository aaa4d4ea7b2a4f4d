package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
	"github.com/spec-kit/tutor-helpdesk/internal/events"
	"github.com/spec-kit/tutor-helpdesk/internal/repository"
	apperrors "github.com/spec-kit/tutor-helpdesk/pkg/util/errorutil"
)

// Ticket actions accepted by update-ticket.
const (
	ActionClaim  = "Claim"
	ActionClose  = "Close"
	ActionOpen   = "Open"
	ActionReOpen = "ReOpen"
)

// LifecycleService owns ticket status transitions and edits.
type LifecycleService struct {
	tickets      repository.TicketRepository
	users        repository.UserRepository
	problemTypes repository.ProblemTypeRepository
	history      repository.TicketHistoryRepository
	dispatcher   events.Dispatcher
	logger       *zap.Logger
	now          func() time.Time
	tutorLevel   domain.PermissionLevel
}

// NewLifecycleService constructs the service.
func NewLifecycleService(deps TicketDependencies) *LifecycleService {
	level := deps.TutorPermission
	if level <= 0 {
		level = domain.PermissionTutor
	}
	return &LifecycleService{
		tickets:      deps.TicketRepo,
		users:        deps.UserRepo,
		problemTypes: deps.ProblemTypeRepo,
		history:      deps.HistoryRepo,
		dispatcher:   deps.Dispatcher,
		logger:       deps.logger(),
		now:          deps.clock(),
		tutorLevel:   level,
	}
}

// allowedTransitions lists, per action, the statuses it may start from.
// Claimed -> Claimed is a tutor handoff. Close requires a running claim.
var allowedTransitions = map[string][]domain.TicketStatus{
	ActionClaim:  {domain.TicketStatusOpen, domain.TicketStatusClaimed, domain.TicketStatusClosed},
	ActionClose:  {domain.TicketStatusClaimed},
	ActionReOpen: {domain.TicketStatusClaimed, domain.TicketStatusClosed},
}

func canApply(action string, current domain.TicketStatus) bool {
	for _, candidate := range allowedTransitions[action] {
		if candidate == current {
			return true
		}
	}
	return false
}

// Claim assigns the tutor and starts the session clock.
func (s *LifecycleService) Claim(ctx context.Context, ticketID string, tutor *domain.User) (*domain.Ticket, error) {
	if err := s.requireTutor(tutor); err != nil {
		return nil, err
	}
	ticket, err := s.load(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	oldStatus, oldTutor := ticket.Status, ticket.TutorID
	now := s.now()
	tutorID := tutor.ID
	ticket.TutorID = &tutorID
	ticket.Status = domain.TicketStatusClaimed
	ticket.TimeClaimed = &now

	if err := s.save(ctx, ticket); err != nil {
		return nil, err
	}
	s.recordStatusChange(ctx, tutor.ID, ticket, oldStatus)
	if oldTutor == nil || *oldTutor != tutorID {
		s.recordHistory(ctx, tutor.ID, ticket.ID, domain.ChangeTypeTutor,
			map[string]any{"tutor_id": derefString(oldTutor)},
			map[string]any{"tutor_id": tutorID})
	}
	s.publishStatus(ctx, events.EventTicketClaimed, tutor.ID, ticket, oldStatus)
	return ticket, nil
}

// Close ends the running claim and folds its interval into the session
// duration. Tickets that are not currently claimed are rejected.
func (s *LifecycleService) Close(ctx context.Context, ticketID string, tutor *domain.User) (*domain.Ticket, error) {
	if err := s.requireTutor(tutor); err != nil {
		return nil, err
	}
	ticket, err := s.load(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !canApply(ActionClose, ticket.Status) || ticket.TimeClaimed == nil {
		return nil, ErrNotClaimed
	}

	oldStatus := ticket.Status
	now := s.now()
	duration := Accumulate(*ticket.TimeClaimed, now, ticket.SessionDuration)
	ticket.Status = domain.TicketStatusClosed
	ticket.TimeClosed = &now
	ticket.SessionDuration = &duration

	if err := s.save(ctx, ticket); err != nil {
		return nil, err
	}
	s.recordStatusChange(ctx, tutor.ID, ticket, oldStatus)
	s.publishStatus(ctx, events.EventTicketClosed, tutor.ID, ticket, oldStatus)
	return ticket, nil
}

// Reopen puts the ticket back in the queue. Tutor, timestamps and the
// accumulated duration are kept for the next claim. An Open ticket is left
// untouched and reported with ErrAlreadyOpen.
func (s *LifecycleService) Reopen(ctx context.Context, ticketID string, tutor *domain.User) (*domain.Ticket, error) {
	if err := s.requireTutor(tutor); err != nil {
		return nil, err
	}
	ticket, err := s.load(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !canApply(ActionReOpen, ticket.Status) {
		return nil, ErrAlreadyOpen
	}

	oldStatus := ticket.Status
	ticket.Status = domain.TicketStatusOpen
	if err := s.save(ctx, ticket); err != nil {
		return nil, err
	}
	s.recordStatusChange(ctx, tutor.ID, ticket, oldStatus)
	s.publishStatus(ctx, events.EventTicketReopened, tutor.ID, ticket, oldStatus)
	return ticket, nil
}

// EditInput carries the submitted edit fields. A nil pointer means the form
// field was absent.
type EditInput struct {
	Course            *string
	Section           *string
	AssignmentName    *string
	SpecificQuestion  *string
	ProblemType       *string
	TutorID           *string
	TutorNotes        *string
	SuccessfulSession bool
}

// Edit applies a partial update. Each field has its own overwrite rule:
// course, section and notes take any submitted value including empty;
// assignment and question change only when non-blank and different;
// problem type and tutor change only when non-blank and must resolve;
// successful_session mirrors whether the field was submitted.
func (s *LifecycleService) Edit(ctx context.Context, ticketID string, tutor *domain.User, input EditInput) (*domain.Ticket, error) {
	if err := s.requireTutor(tutor); err != nil {
		return nil, err
	}
	ticket, err := s.load(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	var changed []string
	if input.Course != nil {
		ticket.Course = copyString(input.Course)
		changed = append(changed, "course")
	}
	if input.Section != nil {
		ticket.Section = copyString(input.Section)
		changed = append(changed, "section")
	}
	if v := input.AssignmentName; v != nil && strings.TrimSpace(*v) != "" && *v != ticket.AssignmentName {
		ticket.AssignmentName = *v
		changed = append(changed, "assignment_name")
	}
	if v := input.SpecificQuestion; v != nil && strings.TrimSpace(*v) != "" && *v != ticket.SpecificQuestion {
		ticket.SpecificQuestion = *v
		changed = append(changed, "specific_question")
	}
	if v := input.ProblemType; v != nil && strings.TrimSpace(*v) != "" {
		id, err := s.resolveProblemType(ctx, *v)
		if err != nil {
			return nil, err
		}
		ticket.ProblemType = &id
		changed = append(changed, "problem_type")
	}
	if v := input.TutorID; v != nil && strings.TrimSpace(*v) != "" {
		assignee, err := s.resolveTutor(ctx, strings.TrimSpace(*v))
		if err != nil {
			return nil, err
		}
		id := assignee.ID
		ticket.TutorID = &id
		changed = append(changed, "tutor_id")
	}
	if input.TutorNotes != nil {
		ticket.TutorNotes = copyString(input.TutorNotes)
		changed = append(changed, "tutor_notes")
	}
	if ticket.SuccessfulSession != input.SuccessfulSession {
		changed = append(changed, "successful_session")
	}
	ticket.SuccessfulSession = input.SuccessfulSession

	if err := s.save(ctx, ticket); err != nil {
		return nil, err
	}
	s.recordHistory(ctx, tutor.ID, ticket.ID, domain.ChangeTypeEdit, nil, map[string]any{"fields": changed})
	publish(ctx, s.dispatcher, s.logger, s.now, events.Event{
		Type:     events.EventTicketEdited,
		TicketID: ticket.ID,
		ActorID:  tutor.ID,
		Payload:  events.TicketEditedPayload{Fields: changed},
	})
	return ticket, nil
}

// Apply runs an update-ticket action and reports the request outcome.
func (s *LifecycleService) Apply(ctx context.Context, action, ticketID string, tutor *domain.User) Outcome {
	var (
		ticket   *domain.Ticket
		err      error
		category = domain.FlashSuccess
		message  string
	)
	switch action {
	case ActionClaim:
		ticket, err = s.Claim(ctx, ticketID, tutor)
		message = MsgTicketClaimed
	case ActionClose:
		ticket, err = s.Close(ctx, ticketID, tutor)
		message = MsgTicketClosed
	case ActionOpen, ActionReOpen:
		ticket, err = s.Reopen(ctx, ticketID, tutor)
		category, message = domain.FlashInfo, MsgTicketReopened
	default:
		err = ErrUnknownAction
	}
	if err != nil {
		s.logFailure(action, ticketID, err)
		return failureOutcome(err)
	}
	return successOutcome(ticket, category, message)
}

// ApplyEdit runs Edit and reports the request outcome.
func (s *LifecycleService) ApplyEdit(ctx context.Context, ticketID string, tutor *domain.User, input EditInput) Outcome {
	ticket, err := s.Edit(ctx, ticketID, tutor, input)
	if err != nil {
		s.logFailure("Edit", ticketID, err)
		return failureOutcome(err)
	}
	return successOutcome(ticket, domain.FlashSuccess, MsgTicketUpdated)
}

// History returns the audit trail for a ticket.
func (s *LifecycleService) History(ctx context.Context, ticketID string) ([]domain.TicketHistory, error) {
	if s.history == nil {
		return []domain.TicketHistory{}, nil
	}
	if _, err := s.load(ctx, ticketID); err != nil {
		return nil, err
	}
	return s.history.ListByTicket(ctx, ticketID)
}

func (s *LifecycleService) requireTutor(tutor *domain.User) error {
	if tutor == nil || tutor.Permission < s.tutorLevel {
		return ErrTutorRequired
	}
	return nil
}

func (s *LifecycleService) load(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	if strings.TrimSpace(ticketID) == "" {
		return nil, ErrTicketNotFound
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrTicketNotFound
		}
		return nil, updateFailed(err)
	}
	return ticket, nil
}

func (s *LifecycleService) save(ctx context.Context, ticket *domain.Ticket) error {
	if err := s.tickets.Update(ctx, ticket); err != nil {
		if apperrors.IsNotFound(err) {
			return ErrTicketNotFound
		}
		return updateFailed(err)
	}
	return nil
}

func (s *LifecycleService) resolveProblemType(ctx context.Context, raw string) (int64, error) {
	items, err := s.problemTypes.List(ctx)
	if err != nil {
		return 0, updateFailed(err)
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || !domain.NewProblemTypeSet(items).Contains(id) {
		return 0, errEditProblemType
	}
	return id, nil
}

func (s *LifecycleService) resolveTutor(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, errEditTutor
		}
		return nil, updateFailed(err)
	}
	if user.Permission < s.tutorLevel {
		return nil, errEditTutor
	}
	return user, nil
}

func (s *LifecycleService) logFailure(action, ticketID string, err error) {
	de := apperrors.ToDomainError(err)
	if de.HTTPStatus >= 500 {
		s.logger.Error("ticket action failed", zap.String("action", action), zap.String("ticket_id", ticketID), zap.Error(err))
		return
	}
	s.logger.Info("ticket action rejected", zap.String("action", action), zap.String("ticket_id", ticketID), zap.String("code", de.Code))
}

// recordStatusChange writes the audit entry after the update has committed.
// A failure here is logged; the transition itself already happened.
func (s *LifecycleService) recordStatusChange(ctx context.Context, actorID string, ticket *domain.Ticket, oldStatus domain.TicketStatus) {
	newValue := map[string]any{"status": ticket.Status}
	if ticket.Status == domain.TicketStatusClosed && ticket.SessionDuration != nil {
		newValue["session_duration"] = FormatDuration(*ticket.SessionDuration)
	}
	s.recordHistory(ctx, actorID, ticket.ID, domain.ChangeTypeStatus, map[string]any{"status": oldStatus}, newValue)
}

func (s *LifecycleService) recordHistory(ctx context.Context, actorID, ticketID string, change domain.TicketChangeType, oldValue, newValue map[string]any) {
	if s.history == nil {
		return
	}
	if oldValue == nil {
		oldValue = map[string]any{}
	}
	entry := &domain.TicketHistory{
		TicketID:   ticketID,
		ChangedBy:  &actorID,
		ChangeType: change,
		OldValue:   oldValue,
		NewValue:   newValue,
	}
	if err := s.history.Create(ctx, entry); err != nil {
		s.logger.Warn("record ticket history", zap.String("ticket_id", ticketID), zap.Error(err))
	}
}

func (s *LifecycleService) publishStatus(ctx context.Context, eventType events.EventType, actorID string, ticket *domain.Ticket, oldStatus domain.TicketStatus) {
	publish(ctx, s.dispatcher, s.logger, s.now, events.Event{
		Type:     eventType,
		TicketID: ticket.ID,
		ActorID:  actorID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus:       oldStatus,
			NewStatus:       ticket.Status,
			TutorID:         ticket.TutorID,
			SessionDuration: ticket.SessionDuration,
		},
	})
}

func copyString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
