package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
)

// ProblemTypeRepository loads the problem type reference table.
type ProblemTypeRepository interface {
	List(ctx context.Context) ([]domain.ProblemType, error)
}

type problemTypeRepository struct {
	pool *pgxpool.Pool
}

// NewProblemTypeRepository builds the repository.
func NewProblemTypeRepository(pool *pgxpool.Pool) ProblemTypeRepository {
	return &problemTypeRepository{pool: pool}
}

func (r *problemTypeRepository) List(ctx context.Context) ([]domain.ProblemType, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM problem_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ProblemType
	for rows.Next() {
		var pt domain.ProblemType
		if err := rows.Scan(&pt.ID, &pt.Name); err != nil {
			return nil, err
		}
		result = append(result, pt)
	}
	return result, rows.Err()
}
