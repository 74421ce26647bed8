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

var _ repository.FavoriteRepository = (*PostgresFavoriteRepo)(nil)

type PostgresFavoriteRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresFavoriteRepo(pool *pgxpool.Pool) *PostgresFavoriteRepo {
	return &PostgresFavoriteRepo{pool: pool}
}

// Add relies on the unique (user_id, event_id) constraint; a duplicate
// surfaces as domain.ErrAlreadyExists.
func (r *PostgresFavoriteRepo) Add(ctx context.Context, tx repository.Tx, userID, eventID int64) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx,
		`INSERT INTO favorites (user_id, event_id, created_at) VALUES ($1,$2,$3);`,
		userID, eventID, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

func (r *PostgresFavoriteRepo) ListByUser(ctx context.Context, tx repository.Tx, userID int64) ([]*model.Favorite, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx,
		`SELECT id, user_id, event_id, created_at FROM favorites WHERE user_id=$1 ORDER BY created_at ASC;`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Favorite
	for rows.Next() {
		var f model.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.EventID, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}

func (r *PostgresFavoriteRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := ex.QueryRow(ctx, `SELECT COUNT(*) FROM favorites;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count favorites: %w", err)
	}
	return n, nil
}
