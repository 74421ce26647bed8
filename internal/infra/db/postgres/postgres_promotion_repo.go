package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"aktau-afisha-bot/internal/domain"
	"aktau-afisha-bot/internal/domain/model"
	"aktau-afisha-bot/internal/domain/ports/repository"
)

var _ repository.PromotionRepository = (*PostgresPromotionRepo)(nil)

type PostgresPromotionRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresPromotionRepo(pool *pgxpool.Pool) *PostgresPromotionRepo {
	return &PostgresPromotionRepo{pool: pool}
}

const promoColumns = `id, title, description, venue, valid_until, start_date, end_date, is_active, created_at, updated_at`

func scanPromo(row pgx.Row) (*model.Promotion, error) {
	var p model.Promotion
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Venue, &p.ValidUntil,
		&p.StartDate, &p.EndDate, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func scanPromos(rows pgx.Rows) ([]*model.Promotion, error) {
	defer rows.Close()
	var out []*model.Promotion
	for rows.Next() {
		var p model.Promotion
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Venue, &p.ValidUntil,
			&p.StartDate, &p.EndDate, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *PostgresPromotionRepo) Create(ctx context.Context, tx repository.Tx, p *model.Promotion) (int64, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	const q = `
INSERT INTO promotions (title, description, venue, valid_until, start_date, end_date, is_active, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING id;`
	var id int64
	if err := ex.QueryRow(ctx, q, p.Title, p.Description, p.Venue, p.ValidUntil,
		p.StartDate, p.EndDate, p.IsActive, p.CreatedAt, p.UpdatedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert promotion: %w", err)
	}
	p.ID = id
	return id, nil
}

func (r *PostgresPromotionRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Promotion, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	return scanPromo(ex.QueryRow(ctx, `SELECT `+promoColumns+` FROM promotions WHERE id=$1;`, id))
}

var promoFieldColumns = map[string]string{
	model.PromoFieldTitle:       "title",
	model.PromoFieldDescription: "description",
	model.PromoFieldVenue:       "venue",
	model.PromoFieldValidUntil:  "valid_until",
}

func (r *PostgresPromotionRepo) UpdateField(ctx context.Context, tx repository.Tx, id int64, field, value string) error {
	col, ok := promoFieldColumns[field]
	if !ok {
		return domain.ErrUnknownField
	}
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	q := fmt.Sprintf(`UPDATE promotions SET %s=$1, updated_at=now() WHERE id=$2;`, col)
	tag, err := ex.Exec(ctx, q, value, id)
	if err != nil {
		return fmt.Errorf("update promotion field: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresPromotionRepo) Delete(ctx context.Context, tx repository.Tx, id int64) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	tag, err := ex.Exec(ctx, `DELETE FROM promotions WHERE id=$1;`, id)
	if err != nil {
		return fmt.Errorf("delete promotion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresPromotionRepo) ListActive(ctx context.Context, tx repository.Tx, now time.Time) ([]*model.Promotion, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx,
		`SELECT `+promoColumns+` FROM promotions WHERE start_date <= $1 AND end_date >= $1 AND is_active ORDER BY start_date ASC;`,
		now)
	if err != nil {
		return nil, err
	}
	return scanPromos(rows)
}

func (r *PostgresPromotionRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Promotion, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, `SELECT `+promoColumns+` FROM promotions ORDER BY start_date ASC;`)
	if err != nil {
		return nil, err
	}
	return scanPromos(rows)
}

func (r *PostgresPromotionRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := ex.QueryRow(ctx, `SELECT COUNT(*) FROM promotions;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count promotions: %w", err)
	}
	return n, nil
}
