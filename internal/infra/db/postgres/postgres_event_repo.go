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

var _ repository.EventRepository = (*PostgresEventRepo)(nil)

type PostgresEventRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresEventRepo(pool *pgxpool.Pool) *PostgresEventRepo {
	return &PostgresEventRepo{pool: pool}
}

const eventColumns = `id, title, description, date, location, created_at, updated_at`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var e model.Event
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Location, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func scanEvents(rows pgx.Rows) ([]*model.Event, error) {
	defer rows.Close()
	var out []*model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Location, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *PostgresEventRepo) Create(ctx context.Context, tx repository.Tx, e *model.Event) (int64, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	const q = `
INSERT INTO events (title, description, date, location, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6) RETURNING id;`
	var id int64
	if err := ex.QueryRow(ctx, q, e.Title, e.Description, e.Date, e.Location, e.CreatedAt, e.UpdatedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	e.ID = id
	return id, nil
}

func (r *PostgresEventRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Event, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	return scanEvent(ex.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id=$1;`, id))
}

// eventFieldColumns whitelists edit-dialog fields against SQL injection via
// the field name.
var eventFieldColumns = map[string]string{
	model.EventFieldTitle:       "title",
	model.EventFieldDescription: "description",
	model.EventFieldDate:        "date",
	model.EventFieldLocation:    "location",
}

func (r *PostgresEventRepo) UpdateField(ctx context.Context, tx repository.Tx, id int64, field, value string) error {
	col, ok := eventFieldColumns[field]
	if !ok {
		return domain.ErrUnknownField
	}
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}

	var arg interface{} = value
	if field == model.EventFieldDate {
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return fmt.Errorf("event date value: %w", err)
		}
		arg = t
	}

	q := fmt.Sprintf(`UPDATE events SET %s=$1, updated_at=now() WHERE id=$2;`, col)
	tag, err := ex.Exec(ctx, q, arg, id)
	if err != nil {
		return fmt.Errorf("update event field: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresEventRepo) Delete(ctx context.Context, tx repository.Tx, id int64) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	tag, err := ex.Exec(ctx, `DELETE FROM events WHERE id=$1;`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresEventRepo) ListUpcoming(ctx context.Context, tx repository.Tx, now time.Time, limit int) ([]*model.Event, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, `SELECT `+eventColumns+` FROM events WHERE date >= $1 ORDER BY date ASC LIMIT $2;`, now, limit)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func (r *PostgresEventRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Event, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY date ASC;`)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

// SearchByCategory matches a literal, case-sensitive substring of the
// description. LIKE is case-sensitive in Postgres, which is the contract.
func (r *PostgresEventRepo) SearchByCategory(ctx context.Context, tx repository.Tx, category string) ([]*model.Event, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE description LIKE '%' || $1 || '%' ORDER BY date ASC;`,
		category)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func (r *PostgresEventRepo) SearchByDate(ctx context.Context, tx repository.Tx, day time.Time) ([]*model.Event, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	rows, err := ex.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE date >= $1 AND date < $2 ORDER BY date ASC;`,
		start, end)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func (r *PostgresEventRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := ex.QueryRow(ctx, `SELECT COUNT(*) FROM events;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
