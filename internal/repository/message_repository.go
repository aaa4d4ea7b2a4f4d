package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
)

// MessageRepository reads broadcast banners.
type MessageRepository interface {
	ListActive(ctx context.Context, at time.Time) ([]domain.Message, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository builds the repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) ListActive(ctx context.Context, at time.Time) ([]domain.Message, error) {
	const query = `
        SELECT id, body, starts_at, ends_at
        FROM messages WHERE starts_at <= $1 AND ends_at >= $1
        ORDER BY starts_at ASC`
	rows, err := r.pool.Query(ctx, query, at)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &msg.Body, &msg.StartsAt, &msg.EndsAt); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
