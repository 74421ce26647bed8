package repository

import (
	"context"
	"time"

	"aktau-afisha-bot/internal/domain/model"
)

// EventRepository is the persistence port for events. Search semantics are
// part of the contract: SearchByCategory matches a literal, case-sensitive
// substring of the description; SearchByDate matches the calendar day.
type EventRepository interface {
	Create(ctx context.Context, tx Tx, e *model.Event) (int64, error)
	FindByID(ctx context.Context, tx Tx, id int64) (*model.Event, error)
	UpdateField(ctx context.Context, tx Tx, id int64, field, value string) error
	Delete(ctx context.Context, tx Tx, id int64) error
	ListUpcoming(ctx context.Context, tx Tx, now time.Time, limit int) ([]*model.Event, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.Event, error)
	SearchByCategory(ctx context.Context, tx Tx, category string) ([]*model.Event, error)
	SearchByDate(ctx context.Context, tx Tx, day time.Time) ([]*model.Event, error)
	Count(ctx context.Context, tx Tx) (int, error)
}
