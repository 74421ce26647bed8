package repository

import (
	"context"

	"aktau-afisha-bot/internal/domain/model"
)

type FeedbackRepository interface {
	Create(ctx context.Context, tx Tx, f *model.Feedback) (int64, error)
}
