package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
)

// TicketHistoryRepository stores the audit trail of ticket changes.
type TicketHistoryRepository interface {
	Create(ctx context.Context, entry *domain.TicketHistory) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketHistory, error)
}

type ticketHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewTicketHistoryRepository builds repository.
func NewTicketHistoryRepository(pool *pgxpool.Pool) TicketHistoryRepository {
	return &ticketHistoryRepository{pool: pool}
}

// Create inserts the entry and fills in its id and timestamp. Nil value maps
// are stored as empty JSON objects.
func (r *ticketHistoryRepository) Create(ctx context.Context, entry *domain.TicketHistory) error {
	const query = `
        INSERT INTO ticket_history (ticket_id, changed_by, change_type, old_value, new_value)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.TicketID,
		entry.ChangedBy,
		string(entry.ChangeType),
		jsonObject(entry.OldValue),
		jsonObject(entry.NewValue),
	).Scan(&entry.ID, &entry.CreatedAt)
}

// ListByTicket returns entries oldest first. Unknown or malformed ticket ids
// yield an empty list.
func (r *ticketHistoryRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketHistory, error) {
	if _, err := uuid.Parse(ticketID); err != nil {
		return []domain.TicketHistory{}, nil
	}
	const query = `
        SELECT id, ticket_id, changed_by, change_type, old_value, new_value, created_at
        FROM ticket_history
        WHERE ticket_id = $1
        ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanHistory)
}

func scanHistory(row pgx.CollectableRow) (domain.TicketHistory, error) {
	var (
		entry      domain.TicketHistory
		changeType string
	)
	err := row.Scan(
		&entry.ID,
		&entry.TicketID,
		&entry.ChangedBy,
		&changeType,
		&entry.OldValue,
		&entry.NewValue,
		&entry.CreatedAt,
	)
	entry.ChangeType = domain.TicketChangeType(changeType)
	return entry, err
}

func jsonObject(v map[string]any) map[string]any {
	if v == nil {
		return map[string]any{}
	}
	return v
}
