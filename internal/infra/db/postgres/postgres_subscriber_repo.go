package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"aktau-afisha-bot/internal/domain"
	"aktau-afisha-bot/internal/domain/model"
	"aktau-afisha-bot/internal/domain/ports/repository"
)

var _ repository.SubscriberRepository = (*PostgresSubscriberRepo)(nil)

type PostgresSubscriberRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresSubscriberRepo(pool *pgxpool.Pool) *PostgresSubscriberRepo {
	return &PostgresSubscriberRepo{pool: pool}
}

func (r *PostgresSubscriberRepo) Add(ctx context.Context, tx repository.Tx, userID int64) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx,
		`INSERT INTO subscribers (user_id, created_at) VALUES ($1,$2);`,
		userID, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert subscriber: %w", err)
	}
	return nil
}

func (r *PostgresSubscriberRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Subscriber, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, `SELECT id, user_id, created_at FROM subscribers ORDER BY id ASC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Subscriber
	for rows.Next() {
		var s model.Subscriber
		if err := rows.Scan(&s.ID, &s.UserID, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *PostgresSubscriberRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := ex.QueryRow(ctx, `SELECT COUNT(*) FROM subscribers;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return n, nil
}
