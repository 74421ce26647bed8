package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"aktau-afisha-bot/internal/config"
	"aktau-afisha-bot/internal/dialog"
	"aktau-afisha-bot/internal/domain/ports/adapter"
	"aktau-afisha-bot/internal/infra/metrics"
	red "aktau-afisha-bot/internal/infra/redis"
)

var _ adapter.Messenger = (*RealBotAdapter)(nil)

// RealBotAdapter polls Telegram, converts updates to dispatcher events, and
// implements the outbound Messenger port. All routing decisions live in the
// dispatcher; the adapter only translates between the wire and the core.
type RealBotAdapter struct {
	bot         *tgbotapi.BotAPI
	cfg         *config.BotConfig
	dispatcher  *dialog.Dispatcher
	rateLimiter *red.RateLimiter
	log         *zerolog.Logger

	updateWorkers int
	cancelPolling context.CancelFunc
}

func NewRealBotAdapter(cfg *config.BotConfig, dispatcher *dialog.Dispatcher, rateLimiter *red.RateLimiter, logger *zerolog.Logger) (*RealBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if dispatcher == nil {
		return nil, errors.New("dispatcher is nil")
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 5
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}

	return &RealBotAdapter{
		bot:           bot,
		cfg:           cfg,
		dispatcher:    dispatcher,
		rateLimiter:   rateLimiter,
		log:           logger,
		updateWorkers: workers,
	}, nil
}

// StartPolling consumes the long-poll channel and fans updates out to a
// fixed worker set. Per-user ordering is the dispatcher's job, not ours.
func (r *RealBotAdapter) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.updateWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case up := <-updateChan:
					if err := r.handleUpdate(ctx, up); err != nil {
						r.log.Error().Err(err).Int("worker", id).Msg("handle update")
					}
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			close(updateChan)
			wg.Wait()
			return ctx.Err()
		case up := <-updates:
			updateChan <- up
		}
	}
}

func (r *RealBotAdapter) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

func (r *RealBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.CallbackQuery != nil {
		return r.handleQuery(ctx, update.CallbackQuery)
	}
	if update.Message == nil || update.Message.From == nil {
		return nil
	}

	msg := update.Message
	userID := msg.From.ID
	chatID := msg.Chat.ID

	ev := dialog.Event{UserID: userID, ChatID: chatID}
	if msg.IsCommand() {
		ev.Kind = dialog.EventCommand
		ev.Command = msg.Command()
		ev.Args = msg.CommandArguments()
	} else {
		ev.Kind = dialog.EventText
		ev.Text = msg.Text
	}
	metrics.IncUpdate(ev.Kind.String())

	if r.rateLimiter != nil {
		limitKey := "message"
		if ev.Kind == dialog.EventCommand {
			limitKey = "/" + ev.Command
		}
		allowed, err := r.rateLimiter.Allow(ctx, red.UserCommandKey(userID, limitKey), 20, time.Minute)
		if err != nil {
			r.log.Warn().Err(err).Msg("rate limiter")
		} else if !allowed {
			return r.SendMessage(ctx, chatID, "Слишком много запросов. Попробуйте позже.")
		}
	}

	return r.dispatcher.Dispatch(ctx, ev)
}

func (r *RealBotAdapter) handleQuery(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query == nil || query.From == nil {
		return errors.New("invalid callback query")
	}

	// Stop the telegram spinner when we return.
	defer func() { _, _ = r.bot.Request(tgbotapi.NewCallback(query.ID, "")) }()

	chatID := query.From.ID
	if query.Message != nil && query.Message.Chat != nil {
		chatID = query.Message.Chat.ID
	}
	if chatID == 0 {
		return nil
	}

	data := strings.TrimSpace(query.Data)
	metrics.IncUpdate(dialog.EventCallback.String())

	if r.rateLimiter != nil {
		if allowed, err := r.rateLimiter.Allow(ctx, red.UserCommandKey(query.From.ID, "cb"), 30, time.Minute); err == nil && !allowed {
			return r.SendMessage(ctx, chatID, "Слишком много запросов. Попробуйте позже.")
		}
	}

	return r.dispatcher.Dispatch(ctx, dialog.Event{
		UserID: query.From.ID,
		ChatID: chatID,
		Kind:   dialog.EventCallback,
		Data:   data,
	})
}

func (r *RealBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := r.bot.Send(msg)
	return err
}

// SendButtons renders inline buttons: URL opens a link, Data sends callback
// data, SwitchInlineQuery opens the share picker, and an empty button falls
// back to its label as data.
func (r *RealBotAdapter) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	kbRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		kr := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			label := strings.TrimSpace(btn.Text)
			if label == "" {
				label = "•"
			}
			var kb tgbotapi.InlineKeyboardButton
			switch {
			case btn.URL != "":
				kb = tgbotapi.NewInlineKeyboardButtonURL(label, btn.URL)
			case btn.SwitchInlineQuery != "":
				kb = tgbotapi.NewInlineKeyboardButtonSwitch(label, btn.SwitchInlineQuery)
			case btn.Data != "":
				kb = tgbotapi.NewInlineKeyboardButtonData(label, btn.Data)
			default:
				kb = tgbotapi.NewInlineKeyboardButtonData(label, label)
			}
			kr = append(kr, kb)
		}
		kbRows = append(kbRows, kr)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(kbRows...)
	_, err := r.bot.Send(msg)
	return err
}

// SendKeyboard shows a reply keyboard; empty rows removes any visible one.
func (r *RealBotAdapter) SendKeyboard(ctx context.Context, chatID int64, text string, rows [][]string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if len(rows) == 0 {
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	} else {
		kbRows := make([][]tgbotapi.KeyboardButton, 0, len(rows))
		for _, row := range rows {
			kr := make([]tgbotapi.KeyboardButton, 0, len(row))
			for _, label := range row {
				kr = append(kr, tgbotapi.NewKeyboardButton(label))
			}
			kbRows = append(kbRows, kr)
		}
		kb := tgbotapi.NewReplyKeyboard(kbRows...)
		kb.ResizeKeyboard = true
		msg.ReplyMarkup = kb
	}
	_, err := r.bot.Send(msg)
	return err
}
