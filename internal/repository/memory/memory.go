// Package memory provides in-process implementations of the repository
// interfaces. It backs local runs without Postgres and the handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
	"github.com/spec-kit/tutor-helpdesk/internal/repository"
)

// Store holds every table. The zero value is not usable; call New.
type Store struct {
	mu           sync.RWMutex
	tickets      map[string]domain.Ticket
	users        map[string]domain.User
	problemTypes []domain.ProblemType
	messages     []domain.Message
	history      []domain.TicketHistory
}

// New returns an empty store.
func New() *Store {
	return &Store{
		tickets: make(map[string]domain.Ticket),
		users:   make(map[string]domain.User),
	}
}

// Tickets returns the ticket repository view.
func (s *Store) Tickets() repository.TicketRepository { return ticketRepo{s} }

// Users returns the user repository view.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

// ProblemTypes returns the problem type repository view.
func (s *Store) ProblemTypes() repository.ProblemTypeRepository { return problemTypeRepo{s} }

// Messages returns the broadcast message repository view.
func (s *Store) Messages() repository.MessageRepository { return messageRepo{s} }

// History returns the ticket history repository view.
func (s *Store) History() repository.TicketHistoryRepository { return historyRepo{s} }

// AddUser seeds a user, assigning an id when empty.
func (s *Store) AddUser(user domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	s.users[user.ID] = user
	return user
}

// AddProblemType seeds a problem type.
func (s *Store) AddProblemType(pt domain.ProblemType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.problemTypes = append(s.problemTypes, pt)
}

// AddMessage seeds a broadcast message.
func (s *Store) AddMessage(msg domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	s.messages = append(s.messages, msg)
}

// TicketCount reports how many tickets are stored.
func (s *Store) TicketCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tickets)
}

type ticketRepo struct{ s *Store }

func (r ticketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	if ticket.StudentEmail == "" || ticket.StudentName == "" || !ticket.Mode.Valid() {
		return &pgconn.PgError{Code: "23514", Message: "check constraint violated"}
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if ticket.ProblemType != nil && !r.s.hasProblemType(*ticket.ProblemType) {
		return &pgconn.PgError{Code: "23503", Message: "foreign key violation"}
	}
	ticket.ID = uuid.NewString()
	r.s.tickets[ticket.ID] = cloneTicket(*ticket)
	return nil
}

func (r ticketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.tickets[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	next := cloneTicket(*ticket)
	next.StudentEmail = current.StudentEmail
	next.StudentName = current.StudentName
	next.Mode = current.Mode
	next.CreatedAt = current.CreatedAt
	r.s.tickets[ticket.ID] = next
	return nil
}

func (r ticketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ticket, ok := r.s.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	c := cloneTicket(ticket)
	return &c, nil
}

func (r ticketRepo) List(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []domain.Ticket
	for _, ticket := range r.s.tickets {
		if matches(ticket, filter) {
			result = append(result, cloneTicket(ticket))
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		if offset >= len(result) {
			return nil, nil
		}
		end := offset + filter.Limit
		if end > len(result) {
			end = len(result)
		}
		result = result[offset:end]
	}
	return result, nil
}

func (r ticketRepo) CountByStatus(_ context.Context) (map[domain.TicketStatus]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := map[domain.TicketStatus]int{}
	for _, ticket := range r.s.tickets {
		counts[ticket.Status]++
	}
	return counts, nil
}

func matches(ticket domain.Ticket, filter repository.TicketFilter) bool {
	if len(filter.Statuses) > 0 {
		found := false
		for _, status := range filter.Statuses {
			if ticket.Status == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.TutorID != nil && (ticket.TutorID == nil || *ticket.TutorID != *filter.TutorID) {
		return false
	}
	if filter.CreatedFrom != nil && ticket.CreatedAt.Before(*filter.CreatedFrom) {
		return false
	}
	if filter.CreatedTo != nil && ticket.CreatedAt.After(*filter.CreatedTo) {
		return false
	}
	return true
}

func (s *Store) hasProblemType(id int64) bool {
	for _, pt := range s.problemTypes {
		if pt.ID == id {
			return true
		}
	}
	return false
}

type userRepo struct{ s *Store }

func (r userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, user := range r.s.users {
		if equalFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type problemTypeRepo struct{ s *Store }

func (r problemTypeRepo) List(_ context.Context) ([]domain.ProblemType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]domain.ProblemType(nil), r.s.problemTypes...), nil
}

type messageRepo struct{ s *Store }

func (r messageRepo) ListActive(_ context.Context, at time.Time) ([]domain.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var result []domain.Message
	for _, msg := range r.s.messages {
		if msg.ActiveAt(at) {
			result = append(result, msg)
		}
	}
	return result, nil
}

type historyRepo struct{ s *Store }

func (r historyRepo) Create(_ context.Context, entry *domain.TicketHistory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now().UTC()
	r.s.history = append(r.s.history, *entry)
	return nil
}

func (r historyRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketHistory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var result []domain.TicketHistory
	for _, entry := range r.s.history {
		if entry.TicketID == ticketID {
			result = append(result, entry)
		}
	}
	return result, nil
}
