package repository

import (
	"context"

	"aktau-afisha-bot/internal/domain/model"
)

// SubscriberRepository stores broadcast opt-ins. Add returns
// domain.ErrAlreadyExists on a duplicate user id.
type SubscriberRepository interface {
	Add(ctx context.Context, tx Tx, userID int64) error
	ListAll(ctx context.Context, tx Tx) ([]*model.Subscriber, error)
	Count(ctx context.Context, tx Tx) (int, error)
}
