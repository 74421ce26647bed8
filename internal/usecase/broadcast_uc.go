package usecase

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"aktau-afisha-bot/internal/domain/ports/adapter"
	"aktau-afisha-bot/internal/infra/metrics"
	"aktau-afisha-bot/internal/infra/worker"
)

// Compile-time check
var _ BroadcastUseCase = (*broadcastUC)(nil)

type BroadcastUseCase interface {
	// Broadcast fans the text out to every recipient and waits for the
	// deliveries to finish. One blocked or deleted account never aborts the
	// run; failures are logged, counted and skipped.
	Broadcast(ctx context.Context, text string) (sent, failed int, err error)
}

type broadcastUC struct {
	subs SubscriberUseCase
	bot  adapter.Messenger
	pool *worker.Pool
	log  *zerolog.Logger
}

func NewBroadcastUseCase(subs SubscriberUseCase, bot adapter.Messenger, pool *worker.Pool, logger *zerolog.Logger) *broadcastUC {
	return &broadcastUC{subs: subs, bot: bot, pool: pool, log: logger}
}

func (uc *broadcastUC) Broadcast(ctx context.Context, text string) (int, int, error) {
	recipients, err := uc.subs.Recipients(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("fetch broadcast recipients")
		return 0, 0, err
	}

	runID := ulid.MustNew(ulid.Timestamp(time.Now()), rand.New(rand.NewSource(time.Now().UnixNano()))).String()
	log := uc.log.With().Str("broadcast_id", runID).Logger()
	log.Info().Int("recipients", len(recipients)).Msg("broadcast started")

	// Telegram allows roughly 30 messages per second to distinct chats.
	throttle := time.NewTicker(time.Second / 25)
	defer throttle.Stop()

	var (
		wg     sync.WaitGroup
		sent   int64
		failed int64
	)
	for _, chatID := range recipients {
		select {
		case <-throttle.C:
		case <-ctx.Done():
			wg.Wait()
			return int(sent), int(failed), ctx.Err()
		}

		chatID := chatID
		wg.Add(1)
		task := func(taskCtx context.Context) error {
			defer wg.Done()
			if err := uc.bot.SendMessage(taskCtx, chatID, text); err != nil {
				atomic.AddInt64(&failed, 1)
				metrics.IncBroadcast("failed")
				log.Warn().Err(err).Int64("chat_id", chatID).Msg("broadcast delivery failed")
				return nil
			}
			atomic.AddInt64(&sent, 1)
			metrics.IncBroadcast("sent")
			return nil
		}
		if err := uc.pool.Submit(ctx, task); err != nil {
			wg.Done()
			atomic.AddInt64(&failed, 1)
			metrics.IncBroadcast("failed")
			log.Warn().Err(err).Int64("chat_id", chatID).Msg("broadcast task rejected")
		}
	}
	wg.Wait()

	log.Info().Int64("sent", sent).Int64("failed", failed).Msg("broadcast finished")
	return int(sent), int(failed), nil
}
