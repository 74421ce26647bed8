package usecase

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"aktau-afisha-bot/internal/domain"
	"aktau-afisha-bot/internal/domain/model"
	"aktau-afisha-bot/internal/domain/ports/repository"
	"aktau-afisha-bot/internal/infra/logging"
)

// Compile-time check
var _ EventUseCase = (*eventUC)(nil)

// DefaultUpcomingLimit bounds the public upcoming listing.
const DefaultUpcomingLimit = 10

type EventUseCase interface {
	Create(ctx context.Context, title, description string, date time.Time, location string) (*model.Event, error)
	Get(ctx context.Context, id int64) (*model.Event, error)
	UpdateField(ctx context.Context, id int64, field, value string) error
	Delete(ctx context.Context, id int64) error
	Upcoming(ctx context.Context, limit int) ([]*model.Event, error)
	All(ctx context.Context) ([]*model.Event, error)
	SearchByCategory(ctx context.Context, category string) ([]*model.Event, error)
	SearchByDate(ctx context.Context, day time.Time) ([]*model.Event, error)
}

type eventUC struct {
	events repository.EventRepository
	txm    repository.TransactionManager
	log    *zerolog.Logger
}

func NewEventUseCase(events repository.EventRepository, txm repository.TransactionManager, logger *zerolog.Logger) *eventUC {
	return &eventUC{events: events, txm: txm, log: logger}
}

func (uc *eventUC) Create(ctx context.Context, title, description string, date time.Time, location string) (*model.Event, error) {
	defer logging.TraceDuration(uc.log, "EventUC.Create")()

	e, err := model.NewEvent(title, description, date, location)
	if err != nil {
		return nil, err
	}
	if _, err := uc.events.Create(ctx, repository.NoTX, e); err != nil {
		uc.log.Error().Err(err).Str("title", title).Msg("create event")
		return nil, err
	}
	uc.log.Info().Int64("event_id", e.ID).Str("title", e.Title).Msg("event created")
	return e, nil
}

func (uc *eventUC) Get(ctx context.Context, id int64) (*model.Event, error) {
	return uc.events.FindByID(ctx, repository.NoTX, id)
}

// UpdateField re-resolves the event inside a transaction so that an edit
// against a concurrently deleted event reports not-found instead of
// silently writing nothing.
func (uc *eventUC) UpdateField(ctx context.Context, id int64, field, value string) error {
	defer logging.TraceDuration(uc.log, "EventUC.UpdateField")()

	if !model.IsEventField(field) {
		return domain.ErrUnknownField
	}
	return uc.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if _, err := uc.events.FindByID(ctx, tx, id); err != nil {
			return err
		}
		return uc.events.UpdateField(ctx, tx, id, field, value)
	})
}

func (uc *eventUC) Delete(ctx context.Context, id int64) error {
	defer logging.TraceDuration(uc.log, "EventUC.Delete")()

	if err := uc.events.Delete(ctx, repository.NoTX, id); err != nil {
		return err
	}
	uc.log.Info().Int64("event_id", id).Msg("event deleted")
	return nil
}

func (uc *eventUC) Upcoming(ctx context.Context, limit int) ([]*model.Event, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	return uc.events.ListUpcoming(ctx, repository.NoTX, time.Now(), limit)
}

func (uc *eventUC) All(ctx context.Context) ([]*model.Event, error) {
	return uc.events.ListAll(ctx, repository.NoTX)
}

func (uc *eventUC) SearchByCategory(ctx context.Context, category string) ([]*model.Event, error) {
	return uc.events.SearchByCategory(ctx, repository.NoTX, category)
}

func (uc *eventUC) SearchByDate(ctx context.Context, day time.Time) ([]*model.Event, error) {
	return uc.events.SearchByDate(ctx, repository.NoTX, day)
}
