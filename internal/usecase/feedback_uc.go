package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"aktau-afisha-bot/internal/domain"
	"aktau-afisha-bot/internal/domain/model"
	"aktau-afisha-bot/internal/domain/ports/repository"
)

// Compile-time check
var _ FeedbackUseCase = (*feedbackUC)(nil)

type FeedbackUseCase interface {
	Leave(ctx context.Context, userID int64, message string) (int64, error)
}

type feedbackUC struct {
	feedback repository.FeedbackRepository
	log      *zerolog.Logger
}

func NewFeedbackUseCase(feedback repository.FeedbackRepository, logger *zerolog.Logger) *feedbackUC {
	return &feedbackUC{feedback: feedback, log: logger}
}

func (uc *feedbackUC) Leave(ctx context.Context, userID int64, message string) (int64, error) {
	if strings.TrimSpace(message) == "" {
		return 0, domain.ErrInvalidArgument
	}
	f := &model.Feedback{
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	id, err := uc.feedback.Create(ctx, repository.NoTX, f)
	if err != nil {
		uc.log.Error().Err(err).Int64("user_id", userID).Msg("save feedback")
		return 0, err
	}
	uc.log.Info().Int64("feedback_id", id).Int64("user_id", userID).Msg("feedback saved")
	return id, nil
}
