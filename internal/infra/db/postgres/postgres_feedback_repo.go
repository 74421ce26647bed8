package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"aktau-afisha-bot/internal/domain/model"
	"aktau-afisha-bot/internal/domain/ports/repository"
)

var _ repository.FeedbackRepository = (*PostgresFeedbackRepo)(nil)

type PostgresFeedbackRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresFeedbackRepo(pool *pgxpool.Pool) *PostgresFeedbackRepo {
	return &PostgresFeedbackRepo{pool: pool}
}

func (r *PostgresFeedbackRepo) Create(ctx context.Context, tx repository.Tx, f *model.Feedback) (int64, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	const q = `INSERT INTO feedback (user_id, message, created_at) VALUES ($1,$2,$3) RETURNING id;`
	var id int64
	if err := ex.QueryRow(ctx, q, f.UserID, f.Message, f.CreatedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert feedback: %w", err)
	}
	f.ID = id
	return id, nil
}
