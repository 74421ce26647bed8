package telegram

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"aktau-afisha-bot/internal/domain/ports/adapter"
)

var _ adapter.Messenger = (*NoopBotAdapter)(nil)

// NoopBotAdapter implements the Messenger port for local/dev runs without a
// bot token. It logs instead of talking to Telegram.
type NoopBotAdapter struct {
	log *zerolog.Logger
}

func NewNoopBotAdapter(logger *zerolog.Logger) *NoopBotAdapter {
	return &NoopBotAdapter{log: logger}
}

func (b *NoopBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return ctx.Err()
	}
	b.log.Info().Int64("chat_id", chatID).Str("text", text).Msg("[noop-telegram] message")
	return nil
}

func (b *NoopBotAdapter) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return ctx.Err()
	}
	b.log.Info().Int64("chat_id", chatID).Str("text", text).Interface("buttons", rows).Msg("[noop-telegram] buttons")
	return nil
}

func (b *NoopBotAdapter) SendKeyboard(ctx context.Context, chatID int64, text string, rows [][]string) error {
	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return ctx.Err()
	}
	b.log.Info().Int64("chat_id", chatID).Str("text", text).Interface("keyboard", rows).Msg("[noop-telegram] keyboard")
	return nil
}
