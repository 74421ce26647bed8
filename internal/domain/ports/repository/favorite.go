package repository

import (
	"context"

	"aktau-afisha-bot/internal/domain/model"
)

// FavoriteRepository stores user → event stars. Add returns
// domain.ErrAlreadyExists when the pair is already present.
type FavoriteRepository interface {
	Add(ctx context.Context, tx Tx, userID, eventID int64) error
	ListByUser(ctx context.Context, tx Tx, userID int64) ([]*model.Favorite, error)
	Count(ctx context.Context, tx Tx) (int, error)
}
