package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"aktau-afisha-bot/internal/domain"
	"aktau-afisha-bot/internal/domain/model"
	"aktau-afisha-bot/internal/domain/ports/repository"
)

// Compile-time check
var _ FavoriteUseCase = (*favoriteUC)(nil)

type FavoriteUseCase interface {
	// Add stars an event for a user. It reports added=false without error
	// when the pair already exists; starring twice is not a failure.
	Add(ctx context.Context, userID, eventID int64) (added bool, err error)
	// List resolves a user's starred events, skipping ones deleted since.
	List(ctx context.Context, userID int64) ([]*model.Event, error)
}

type favoriteUC struct {
	favorites repository.FavoriteRepository
	events    repository.EventRepository
	log       *zerolog.Logger
}

func NewFavoriteUseCase(favorites repository.FavoriteRepository, events repository.EventRepository, logger *zerolog.Logger) *favoriteUC {
	return &favoriteUC{favorites: favorites, events: events, log: logger}
}

func (uc *favoriteUC) Add(ctx context.Context, userID, eventID int64) (bool, error) {
	if _, err := uc.events.FindByID(ctx, repository.NoTX, eventID); err != nil {
		return false, err
	}
	err := uc.favorites.Add(ctx, repository.NoTX, userID, eventID)
	if errors.Is(err, domain.ErrAlreadyExists) {
		return false, nil
	}
	if err != nil {
		uc.log.Error().Err(err).Int64("user_id", userID).Int64("event_id", eventID).Msg("add favorite")
		return false, err
	}
	return true, nil
}

func (uc *favoriteUC) List(ctx context.Context, userID int64) ([]*model.Event, error) {
	favs, err := uc.favorites.ListByUser(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Event, 0, len(favs))
	for _, f := range favs {
		e, err := uc.events.FindByID(ctx, repository.NoTX, f.EventID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
