package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
	"github.com/spec-kit/tutor-helpdesk/internal/events"
	"github.com/spec-kit/tutor-helpdesk/internal/repository"
	"github.com/spec-kit/tutor-helpdesk/internal/repository/memory"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// failingTickets wraps a ticket repository and fails the configured calls.
type failingTickets struct {
	repository.TicketRepository
	createErr error
	updateErr error
	getErr    error
}

func (f *failingTickets) Create(ctx context.Context, ticket *domain.Ticket) error {
	if f.createErr != nil {
		return f.createErr
	}
	return f.TicketRepository.Create(ctx, ticket)
}

func (f *failingTickets) Update(ctx context.Context, ticket *domain.Ticket) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	return f.TicketRepository.Update(ctx, ticket)
}

func (f *failingTickets) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.TicketRepository.GetByID(ctx, id)
}

type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *eventRecorder) handle(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type harness struct {
	store     *memory.Store
	tickets   *failingTickets
	clock     *fakeClock
	recorder  *eventRecorder
	intake    *TicketService
	lifecycle *LifecycleService
	tutor     *domain.User
	other     *domain.User
	student   *domain.User
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	store := memory.New()
	store.AddProblemType(domain.ProblemType{ID: 1, Name: "Syntax error"})
	store.AddProblemType(domain.ProblemType{ID: 2, Name: "Logic error"})
	tutor := store.AddUser(domain.User{Name: "Tia Tutor", Email: "tia@example.edu", Permission: domain.PermissionTutor})
	other := store.AddUser(domain.User{Name: "Omar Tutor", Email: "omar@example.edu", Permission: domain.PermissionAdmin})
	student := store.AddUser(domain.User{Name: "Sam Student", Email: "sam@example.edu", Permission: domain.PermissionStudent})

	clock := &fakeClock{now: baseTime}
	recorder := &eventRecorder{}
	dispatcher := events.NewInMemoryDispatcher()
	for _, et := range []events.EventType{
		events.EventTicketCreated, events.EventTicketClaimed, events.EventTicketClosed,
		events.EventTicketReopened, events.EventTicketEdited,
	} {
		dispatcher.Subscribe(et, recorder.handle)
	}

	tickets := &failingTickets{TicketRepository: store.Tickets()}
	deps := TicketDependencies{
		TicketRepo:      tickets,
		ProblemTypeRepo: store.ProblemTypes(),
		UserRepo:        store.Users(),
		HistoryRepo:     store.History(),
		Dispatcher:      dispatcher,
		Clock:           clock.Now,
	}
	return &harness{
		store:     store,
		tickets:   tickets,
		clock:     clock,
		recorder:  recorder,
		intake:    NewTicketService(deps),
		lifecycle: NewLifecycleService(deps),
		tutor:     &tutor,
		other:     &other,
		student:   &student,
	}
}

// openTicket stores a fresh Open ticket and returns its id.
func (h *harness) openTicket(t *testing.T) string {
	t.Helper()
	ticket, err := h.intake.CreateTicket(context.Background(), validForm(), nil)
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	return ticket.ID
}

func (h *harness) get(t *testing.T, id string) *domain.Ticket {
	t.Helper()
	ticket, err := h.store.Tickets().GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	return ticket
}
