package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"aktau-afisha-bot/internal/domain"
	"aktau-afisha-bot/internal/domain/ports/repository"
)

// Compile-time check
var _ SubscriberUseCase = (*subscriberUC)(nil)

type SubscriberUseCase interface {
	// Subscribe opts a user into broadcasts. Subscribing twice reports
	// added=false without error.
	Subscribe(ctx context.Context, userID int64) (added bool, err error)
	// Recipients returns the user ids of everyone subscribed.
	Recipients(ctx context.Context) ([]int64, error)
}

type subscriberUC struct {
	subs repository.SubscriberRepository
	log  *zerolog.Logger
}

func NewSubscriberUseCase(subs repository.SubscriberRepository, logger *zerolog.Logger) *subscriberUC {
	return &subscriberUC{subs: subs, log: logger}
}

func (uc *subscriberUC) Subscribe(ctx context.Context, userID int64) (bool, error) {
	err := uc.subs.Add(ctx, repository.NoTX, userID)
	if errors.Is(err, domain.ErrAlreadyExists) {
		return false, nil
	}
	if err != nil {
		uc.log.Error().Err(err).Int64("user_id", userID).Msg("subscribe")
		return false, err
	}
	uc.log.Info().Int64("user_id", userID).Msg("new subscriber")
	return true, nil
}

func (uc *subscriberUC) Recipients(ctx context.Context) ([]int64, error) {
	all, err := uc.subs.ListAll(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(all))
	for _, s := range all {
		ids = append(ids, s.UserID)
	}
	return ids, nil
}
