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
var _ PromotionUseCase = (*promotionUC)(nil)

type PromotionUseCase interface {
	Create(ctx context.Context, title, description, venue, validUntil string) (*model.Promotion, error)
	Get(ctx context.Context, id int64) (*model.Promotion, error)
	UpdateField(ctx context.Context, id int64, field, value string) error
	Delete(ctx context.Context, id int64) error
	Active(ctx context.Context) ([]*model.Promotion, error)
	All(ctx context.Context) ([]*model.Promotion, error)
}

type promotionUC struct {
	promos repository.PromotionRepository
	txm    repository.TransactionManager
	log    *zerolog.Logger
}

func NewPromotionUseCase(promos repository.PromotionRepository, txm repository.TransactionManager, logger *zerolog.Logger) *promotionUC {
	return &promotionUC{promos: promos, txm: txm, log: logger}
}

func (uc *promotionUC) Create(ctx context.Context, title, description, venue, validUntil string) (*model.Promotion, error) {
	defer logging.TraceDuration(uc.log, "PromotionUC.Create")()

	p, err := model.NewPromotion(title, description, venue, validUntil)
	if err != nil {
		return nil, err
	}
	if _, err := uc.promos.Create(ctx, repository.NoTX, p); err != nil {
		uc.log.Error().Err(err).Str("title", title).Msg("create promotion")
		return nil, err
	}
	uc.log.Info().Int64("promo_id", p.ID).Str("title", p.Title).Msg("promotion created")
	return p, nil
}

func (uc *promotionUC) Get(ctx context.Context, id int64) (*model.Promotion, error) {
	return uc.promos.FindByID(ctx, repository.NoTX, id)
}

func (uc *promotionUC) UpdateField(ctx context.Context, id int64, field, value string) error {
	defer logging.TraceDuration(uc.log, "PromotionUC.UpdateField")()

	if !model.IsPromoField(field) {
		return domain.ErrUnknownField
	}
	return uc.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if _, err := uc.promos.FindByID(ctx, tx, id); err != nil {
			return err
		}
		return uc.promos.UpdateField(ctx, tx, id, field, value)
	})
}

func (uc *promotionUC) Delete(ctx context.Context, id int64) error {
	defer logging.TraceDuration(uc.log, "PromotionUC.Delete")()

	if err := uc.promos.Delete(ctx, repository.NoTX, id); err != nil {
		return err
	}
	uc.log.Info().Int64("promo_id", id).Msg("promotion deleted")
	return nil
}

func (uc *promotionUC) Active(ctx context.Context) ([]*model.Promotion, error) {
	return uc.promos.ListActive(ctx, repository.NoTX, time.Now())
}

func (uc *promotionUC) All(ctx context.Context) ([]*model.Promotion, error) {
	return uc.promos.ListAll(ctx, repository.NoTX)
}
