package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"aktau-afisha-bot/internal/domain/ports/repository"
)

// Compile-time check
var _ StatsUseCase = (*statsUC)(nil)

// Stats is the admin dashboard snapshot.
type Stats struct {
	Users       int `json:"users"`
	Subscribers int `json:"subscribers"`
	Events      int `json:"events"`
	Promotions  int `json:"promotions"`
	Favorites   int `json:"favorites"`
}

type StatsUseCase interface {
	Totals(ctx context.Context) (*Stats, error)
}

type statsUC struct {
	langs     repository.UserLanguageRepository
	subs      repository.SubscriberRepository
	events    repository.EventRepository
	promos    repository.PromotionRepository
	favorites repository.FavoriteRepository

	log *zerolog.Logger
}

func NewStatsUseCase(
	langs repository.UserLanguageRepository,
	subs repository.SubscriberRepository,
	events repository.EventRepository,
	promos repository.PromotionRepository,
	favorites repository.FavoriteRepository,
	logger *zerolog.Logger,
) *statsUC {
	return &statsUC{langs: langs, subs: subs, events: events, promos: promos, favorites: favorites, log: logger}
}

func (s *statsUC) Totals(ctx context.Context) (*Stats, error) {
	users, err := s.langs.Count(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	subs, err := s.subs.Count(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	events, err := s.events.Count(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	promos, err := s.promos.Count(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	favs, err := s.favorites.Count(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	return &Stats{
		Users:       users,
		Subscribers: subs,
		Events:      events,
		Promotions:  promos,
		Favorites:   favs,
	}, nil
}
