package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"aktau-afisha-bot/internal/domain"
	"aktau-afisha-bot/internal/domain/model"
	"aktau-afisha-bot/internal/domain/ports/repository"
)

// Compile-time check
var _ LanguageUseCase = (*languageUC)(nil)

type LanguageUseCase interface {
	Set(ctx context.Context, userID int64, lang string) error
	// Get never fails closed on language: a missing row yields the default.
	Get(ctx context.Context, userID int64) (string, error)
}

type languageUC struct {
	langs repository.UserLanguageRepository
	log   *zerolog.Logger
}

func NewLanguageUseCase(langs repository.UserLanguageRepository, logger *zerolog.Logger) *languageUC {
	return &languageUC{langs: langs, log: logger}
}

func (uc *languageUC) Set(ctx context.Context, userID int64, lang string) error {
	if !model.IsSupportedLang(lang) {
		return domain.ErrInvalidArgument
	}
	return uc.langs.Set(ctx, repository.NoTX, userID, lang)
}

func (uc *languageUC) Get(ctx context.Context, userID int64) (string, error) {
	lang, err := uc.langs.Get(ctx, repository.NoTX, userID)
	if err != nil {
		uc.log.Warn().Err(err).Int64("user_id", userID).Msg("language lookup failed, using default")
		return model.DefaultLang, nil
	}
	return lang, nil
}
