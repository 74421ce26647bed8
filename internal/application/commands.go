package application

import (
	"context"
	"fmt"
	"strings"

	"aktau-afisha-bot/internal/dialog"
	"aktau-afisha-bot/internal/domain/model"
)

func (f *BotFacade) cmdStart(ctx context.Context, ev dialog.Event) error {
	if err := f.sessions.Clear(ctx, ev.UserID); err != nil {
		return err
	}
	lang := f.userLang(ctx, ev.UserID)
	return f.bot.SendKeyboard(ctx, ev.ChatID, f.i18n.T(lang, "welcome"), f.menuRows(ev.UserID))
}

func (f *BotFacade) cmdHelp(ctx context.Context, ev dialog.Event) error {
	return f.bot.SendMessage(ctx, ev.ChatID, msgHelp)
}

func (f *BotFacade) cmdUpcoming(ctx context.Context, ev dialog.Event) error {
	events, err := f.eventUC.Upcoming(ctx, 5)
	if err != nil {
		f.log.Error().Err(err).Msg("list upcoming events")
		return f.bot.SendMessage(ctx, ev.ChatID, msgInternalError)
	}
	if len(events) == 0 {
		return f.bot.SendMessage(ctx, ev.ChatID, msgNoUpcoming)
	}
	for _, e := range events {
		if err := f.bot.SendButtons(ctx, ev.ChatID, formatEvent(e), eventButtons(e)); err != nil {
			return err
		}
	}
	return nil
}

func (f *BotFacade) cmdFeedback(ctx context.Context, ev dialog.Event) error {
	return f.enterFlow(ctx, ev, FlowFeedback)
}

func (f *BotFacade) cmdPromotions(ctx context.Context, ev dialog.Event) error {
	promos, err := f.promoUC.Active(ctx)
	if err != nil {
		f.log.Error().Err(err).Msg("list active promotions")
		return f.bot.SendMessage(ctx, ev.ChatID, msgInternalError)
	}
	if len(promos) == 0 {
		return f.bot.SendMessage(ctx, ev.ChatID, msgNoPromotions)
	}
	for _, p := range promos {
		if err := f.bot.SendMessage(ctx, ev.ChatID, formatPromotion(p)); err != nil {
			return err
		}
	}
	return nil
}

func (f *BotFacade) cmdAdmin(ctx context.Context, ev dialog.Event) error {
	if !f.auth.IsAdmin(ev.UserID) {
		return f.bot.SendMessage(ctx, ev.ChatID, msgNoAccessAdmin)
	}
	return f.bot.SendButtons(ctx, ev.ChatID, msgAdminPanel, adminPanelButtons())
}

func (f *BotFacade) cmdSearch(ctx context.Context, ev dialog.Event) error {
	sess := dialog.NewSession(ev.UserID, FlowSearch, StepSearchChooseMode)
	if err := f.sessions.Set(ctx, sess); err != nil {
		return err
	}
	return f.bot.SendKeyboard(ctx, ev.ChatID, msgSearchMode, searchModeRows())
}

func (f *BotFacade) cmdSubscribe(ctx context.Context, ev dialog.Event) error {
	added, err := f.subUC.Subscribe(ctx, ev.UserID)
	if err != nil {
		return f.bot.SendMessage(ctx, ev.ChatID, msgInternalError)
	}
	if added {
		return f.bot.SendMessage(ctx, ev.ChatID, msgSubscribed)
	}
	return f.bot.SendMessage(ctx, ev.ChatID, msgAlreadySub)
}

func (f *BotFacade) cmdFavorites(ctx context.Context, ev dialog.Event) error {
	events, err := f.favoriteUC.List(ctx, ev.UserID)
	if err != nil {
		f.log.Error().Err(err).Int64("user_id", ev.UserID).Msg("list favorites")
		return f.bot.SendMessage(ctx, ev.ChatID, msgInternalError)
	}
	if len(events) == 0 {
		return f.bot.SendMessage(ctx, ev.ChatID, msgNoFavorites)
	}
	for _, e := range events {
		if err := f.bot.SendMessage(ctx, ev.ChatID, formatEvent(e)); err != nil {
			return err
		}
	}
	return nil
}

func (f *BotFacade) cmdBroadcast(ctx context.Context, ev dialog.Event) error {
	if !f.auth.IsAdmin(ev.UserID) {
		return f.bot.SendMessage(ctx, ev.ChatID, msgNoAccess)
	}
	text := strings.TrimSpace(ev.Args)
	if text == "" {
		return f.bot.SendMessage(ctx, ev.ChatID, msgBroadcastUsage)
	}
	sent, _, err := f.broadcastUC.Broadcast(ctx, fmt.Sprintf(msgBroadcastPrefix, text))
	if err != nil {
		return f.bot.SendMessage(ctx, ev.ChatID, msgInternalError)
	}
	return f.bot.SendMessage(ctx, ev.ChatID, fmt.Sprintf(msgBroadcastReport, sent))
}

func (f *BotFacade) cmdFAQ(ctx context.Context, ev dialog.Event) error {
	return f.bot.SendMessage(ctx, ev.ChatID, msgFAQ)
}

func (f *BotFacade) cmdContact(ctx context.Context, ev dialog.Event) error {
	return f.bot.SendMessage(ctx, ev.ChatID, msgContact)
}

func (f *BotFacade) cmdLanguage(ctx context.Context, ev dialog.Event) error {
	lang := f.userLang(ctx, ev.UserID)
	return f.bot.SendButtons(ctx, ev.ChatID, f.i18n.T(lang, "choose_lang"), languageButtons())
}

func (f *BotFacade) cmdStats(ctx context.Context, ev dialog.Event) error {
	if !f.auth.IsAdmin(ev.UserID) {
		return f.bot.SendMessage(ctx, ev.ChatID, msgNoAccess)
	}
	st, err := f.statsUC.Totals(ctx)
	if err != nil {
		f.log.Error().Err(err).Msg("collect stats")
		return f.bot.SendMessage(ctx, ev.ChatID, msgInternalError)
	}
	return f.bot.SendMessage(ctx, ev.ChatID, fmt.Sprintf(msgStatsTemplate,
		st.Users, st.Subscribers, st.Events, st.Promotions, st.Favorites))
}

func (f *BotFacade) shortcutMenu(ctx context.Context, ev dialog.Event) error {
	if err := f.sessions.Clear(ctx, ev.UserID); err != nil {
		return err
	}
	return f.bot.SendKeyboard(ctx, ev.ChatID, msgMainMenu, f.menuRows(ev.UserID))
}

// shortcutCategory serves a category keyword pressed outside any dialog.
func (f *BotFacade) shortcutCategory(category string) dialog.HandlerFunc {
	return func(ctx context.Context, ev dialog.Event) error {
		return f.searchCategory(ctx, ev, category)
	}
}

func (f *BotFacade) shortcutBroadcastHint(ctx context.Context, ev dialog.Event) error {
	if !f.auth.IsAdmin(ev.UserID) {
		return f.bot.SendMessage(ctx, ev.ChatID, msgNoAccess)
	}
	return f.bot.SendMessage(ctx, ev.ChatID, msgBroadcastKeyword)
}

// enterFlow replaces whatever dialog was active and prompts the first step.
func (f *BotFacade) enterFlow(ctx context.Context, ev dialog.Event, tag dialog.FlowTag) error {
	def, ok := f.flows.Flow(tag)
	if !ok {
		return fmt.Errorf("unknown flow %s", tag)
	}
	first := def.First()
	sess := dialog.NewSession(ev.UserID, tag, first.Tag)
	if err := f.sessions.Set(ctx, sess); err != nil {
		return err
	}
	return f.bot.SendMessage(ctx, ev.ChatID, first.Prompt)
}

func (f *BotFacade) searchCategory(ctx context.Context, ev dialog.Event, category string) error {
	events, err := f.eventUC.SearchByCategory(ctx, category)
	if err != nil {
		f.log.Error().Err(err).Str("category", category).Msg("search by category")
		return f.bot.SendMessage(ctx, ev.ChatID, msgInternalError)
	}
	if len(events) == 0 {
		return f.bot.SendMessage(ctx, ev.ChatID, msgNoCategoryHits)
	}
	for _, e := range events {
		if err := f.bot.SendButtons(ctx, ev.ChatID, formatEvent(e), eventButtons(e)); err != nil {
			return err
		}
	}
	return nil
}

func (f *BotFacade) sendEventsForAdmin(ctx context.Context, ev dialog.Event, events []*model.Event) error {
	for _, e := range events {
		if err := f.bot.SendButtons(ctx, ev.ChatID, formatEvent(e), eventAdminButtons(e)); err != nil {
			return err
		}
	}
	return nil
}
