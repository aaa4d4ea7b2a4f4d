package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
)

// TicketFilter narrows ticket listings. The zero value lists everything.
type TicketFilter struct {
	Statuses    []domain.TicketStatus
	TutorID     *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	CountByStatus(ctx context.Context) (map[domain.TicketStatus]int, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, student_email, student_name, course, section, assignment_name, specific_question,
               problem_type_id, mode, status, tutor_id, time_claimed, time_closed, session_duration_us,
               tutor_notes, successful_session, created_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (student_email, student_name, course, section, assignment_name, specific_question,
                             problem_type_id, mode, status, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		ticket.StudentEmail,
		ticket.StudentName,
		ticket.Course,
		ticket.Section,
		ticket.AssignmentName,
		ticket.SpecificQuestion,
		ticket.ProblemType,
		int16(ticket.Mode),
		ticket.Status,
		ticket.CreatedAt,
	).Scan(&ticket.ID)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	if _, err := uuid.Parse(ticket.ID); err != nil {
		return pgx.ErrNoRows
	}
	const query = `
        UPDATE tickets SET course=$1, section=$2, assignment_name=$3, specific_question=$4, problem_type_id=$5,
            status=$6, tutor_id=$7, time_claimed=$8, time_closed=$9, session_duration_us=$10,
            tutor_notes=$11, successful_session=$12
        WHERE id=$13`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Course,
		ticket.Section,
		ticket.AssignmentName,
		ticket.SpecificQuestion,
		ticket.ProblemType,
		ticket.Status,
		ticket.TutorID,
		ticket.TimeClaimed,
		ticket.TimeClosed,
		durationToMicros(ticket.SessionDuration),
		ticket.TutorNotes,
		ticket.SuccessfulSession,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// GetByID returns pgx.ErrNoRows for ids that are not UUIDs, the same as for
// ids that do not exist.
func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, pgx.ErrNoRows
	}
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.TutorID != nil {
		args = append(args, *filter.TutorID)
		clauses = append(clauses, fmt.Sprintf("tutor_id=$%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY created_at ASC`,
		ticketColumns, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}

func (r *ticketRepository) CountByStatus(ctx context.Context) (map[domain.TicketStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM tickets GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[domain.TicketStatus]int{}
	for rows.Next() {
		var (
			status domain.TicketStatus
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var (
		ticket     domain.Ticket
		mode       int16
		durationUS *int64
	)
	if err := row.Scan(
		&ticket.ID,
		&ticket.StudentEmail,
		&ticket.StudentName,
		&ticket.Course,
		&ticket.Section,
		&ticket.AssignmentName,
		&ticket.SpecificQuestion,
		&ticket.ProblemType,
		&mode,
		&ticket.Status,
		&ticket.TutorID,
		&ticket.TimeClaimed,
		&ticket.TimeClosed,
		&durationUS,
		&ticket.TutorNotes,
		&ticket.SuccessfulSession,
		&ticket.CreatedAt,
	); err != nil {
		return nil, err
	}
	ticket.Mode = domain.TicketMode(mode)
	ticket.SessionDuration = microsToDuration(durationUS)
	return &ticket, nil
}

func durationToMicros(d *time.Duration) *int64 {
	if d == nil {
		return nil
	}
	us := d.Microseconds()
	return &us
}

func microsToDuration(us *int64) *time.Duration {
	if us == nil {
		return nil
	}
	d := time.Duration(*us) * time.Microsecond
	return &d
}
