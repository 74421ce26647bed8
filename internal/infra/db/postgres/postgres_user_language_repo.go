package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"aktau-afisha-bot/internal/domain/model"
	"aktau-afisha-bot/internal/domain/ports/repository"
)

var _ repository.UserLanguageRepository = (*PostgresUserLanguageRepo)(nil)

type PostgresUserLanguageRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresUserLanguageRepo(pool *pgxpool.Pool) *PostgresUserLanguageRepo {
	return &PostgresUserLanguageRepo{pool: pool}
}

func (r *PostgresUserLanguageRepo) Set(ctx context.Context, tx repository.Tx, userID int64, lang string) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO user_langs (user_id, lang) VALUES ($1,$2)
ON CONFLICT (user_id) DO UPDATE SET lang=$2;`
	if _, err := ex.Exec(ctx, q, userID, lang); err != nil {
		return fmt.Errorf("set user language: %w", err)
	}
	return nil
}

func (r *PostgresUserLanguageRepo) Get(ctx context.Context, tx repository.Tx, userID int64) (string, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return "", err
	}
	var lang string
	err = ex.QueryRow(ctx, `SELECT lang FROM user_langs WHERE user_id=$1;`, userID).Scan(&lang)
	if err == pgx.ErrNoRows {
		return model.DefaultLang, nil
	}
	if err != nil {
		return "", err
	}
	return lang, nil
}

func (r *PostgresUserLanguageRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := ex.QueryRow(ctx, `SELECT COUNT(*) FROM user_langs;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count user languages: %w", err)
	}
	return n, nil
}
