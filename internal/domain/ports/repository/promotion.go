package repository

import (
	"context"
	"time"

	"aktau-afisha-bot/internal/domain/model"
)

// PromotionRepository is the persistence port for venue promotions.
// ListActive returns promotions whose start/end window contains now and
// whose active flag is set.
type PromotionRepository interface {
	Create(ctx context.Context, tx Tx, p *model.Promotion) (int64, error)
	FindByID(ctx context.Context, tx Tx, id int64) (*model.Promotion, error)
	UpdateField(ctx context.Context, tx Tx, id int64, field, value string) error
	Delete(ctx context.Context, tx Tx, id int64) error
	ListActive(ctx context.Context, tx Tx, now time.Time) ([]*model.Promotion, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.Promotion, error)
	Count(ctx context.Context, tx Tx) (int, error)
}
