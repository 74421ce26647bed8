package application

import (
	"context"

	"github.com/rs/zerolog"

	"aktau-afisha-bot/internal/dialog"
	"aktau-afisha-bot/internal/domain/ports/adapter"
	"aktau-afisha-bot/internal/infra/i18n"
	"aktau-afisha-bot/internal/usecase"
)

// BotFacade composes the use cases into chat handlers and owns the routing
// table: which command, step, shortcut and button goes where.
type BotFacade struct {
	auth     *AuthorizationPolicy
	sessions dialog.Store
	flows    *dialog.Registry
	bot      adapter.Messenger
	i18n     i18n.Bundle

	eventUC     usecase.EventUseCase
	promoUC     usecase.PromotionUseCase
	feedbackUC  usecase.FeedbackUseCase
	favoriteUC  usecase.FavoriteUseCase
	subUC       usecase.SubscriberUseCase
	langUC      usecase.LanguageUseCase
	statsUC     usecase.StatsUseCase
	broadcastUC usecase.BroadcastUseCase

	log *zerolog.Logger
}

type Deps struct {
	Auth     *AuthorizationPolicy
	Sessions dialog.Store
	Bot      adapter.Messenger
	I18n     i18n.Bundle

	EventUC     usecase.EventUseCase
	PromoUC     usecase.PromotionUseCase
	FeedbackUC  usecase.FeedbackUseCase
	FavoriteUC  usecase.FavoriteUseCase
	SubUC       usecase.SubscriberUseCase
	LangUC      usecase.LanguageUseCase
	StatsUC     usecase.StatsUseCase
	BroadcastUC usecase.BroadcastUseCase

	Log *zerolog.Logger
}

func NewBotFacade(d Deps) *BotFacade {
	return &BotFacade{
		auth:        d.Auth,
		sessions:    d.Sessions,
		flows:       newFlowRegistry(),
		bot:         d.Bot,
		i18n:        d.I18n,
		eventUC:     d.EventUC,
		promoUC:     d.PromoUC,
		feedbackUC:  d.FeedbackUC,
		favoriteUC:  d.FavoriteUC,
		subUC:       d.SubUC,
		langUC:      d.LangUC,
		statsUC:     d.StatsUC,
		broadcastUC: d.BroadcastUC,
		log:         d.Log,
	}
}

// Register wires every route into the dispatcher. The dispatcher resolves
// them in its fixed priority order; only the tables below decide what exists.
func (f *BotFacade) Register(d *dialog.Dispatcher) {
	// Commands.
	d.Command("start", f.cmdStart)
	d.Command("help", f.cmdHelp)
	d.Command("upcoming_event", f.cmdUpcoming)
	d.Command("feedback", f.cmdFeedback)
	d.Command("promotions_in_public_catering", f.cmdPromotions)
	d.Command("admin", f.cmdAdmin)
	d.Command("search", f.cmdSearch)
	d.Command("subscribe", f.cmdSubscribe)
	d.Command("favorites", f.cmdFavorites)
	d.Command("broadcast", f.cmdBroadcast)
	d.Command("faq", f.cmdFAQ)
	d.Command("contact", f.cmdContact)
	d.Command("language", f.cmdLanguage)
	d.Command("stats", f.cmdStats)

	// Active-flow step handlers. The creation flows share one generic
	// Advance-driven handler; search and the edits branch by hand.
	for _, tag := range []dialog.StepTag{
		StepEventTitle, StepEventDescription, StepEventDate, StepEventLocation,
		StepPromoTitle, StepPromoDescription, StepPromoVenue, StepPromoDates,
		StepFeedbackMessage,
	} {
		d.Step(tag, f.stepAdvanceFlow)
	}
	d.Step(StepSearchChooseMode, f.stepSearchChooseMode)
	d.Step(StepSearchWaitCategory, f.stepSearchCategory)
	// search:wait_date has no step handler on purpose: free text there is
	// date-retried by the fallback.
	d.Step(StepEditEventValue, f.stepEditEventValue)
	d.Step(StepEditPromoValue, f.stepEditPromoValue)

	// Keyword shortcuts, matched only for idle users.
	d.Shortcut(btnUpcoming, f.cmdUpcoming)
	d.Shortcut(btnPromotions, f.cmdPromotions)
	d.Shortcut(btnSearch, f.cmdSearch)
	d.Shortcut(btnFavorites, f.cmdFavorites)
	d.Shortcut(btnFeedback, f.cmdFeedback)
	d.Shortcut(btnHelp, f.cmdHelp)
	d.Shortcut(btnLanguage, f.cmdLanguage)
	d.Shortcut(btnMenu, f.shortcutMenu)
	for _, cat := range Categories {
		d.Shortcut(cat, f.shortcutCategory(cat))
	}
	d.Shortcut(btnAdminPanel, f.cmdAdmin)
	d.Shortcut(btnStats, f.cmdStats)
	d.Shortcut(btnBroadcast, f.shortcutBroadcastHint)

	d.Fallback(f.fallback)

	// Callbacks: exact actions first, then prefixes in match order.
	// edit_promo_field_ must precede edit_promo_, its own prefix.
	d.Callback("add_event", f.cbAddEvent)
	d.Callback("add_promotion", f.cbAddPromotion)
	d.Callback("list_events", f.cbListEvents)
	d.Callback("list_promotions", f.cbListPromotions)
	d.CallbackPrefix("fav_", f.cbFavorite)
	d.CallbackPrefix("details_", f.cbDetails)
	d.CallbackPrefix("lang_", f.cbSetLanguage)
	d.CallbackPrefix("edit_promo_field_", f.cbEditPromoField)
	d.CallbackPrefix("edit_promo_", f.cbEditPromo)
	d.CallbackPrefix("delete_promo_", f.cbDeletePromo)
	d.CallbackPrefix("edit_field_", f.cbEditEventField)
	d.CallbackPrefix("edit_event_", f.cbEditEvent)
	d.CallbackPrefix("delete_event_", f.cbDeleteEvent)
}

func (f *BotFacade) userLang(ctx context.Context, userID int64) string {
	lang, _ := f.langUC.Get(ctx, userID)
	return lang
}

// menuRows picks the reply keyboard for the caller.
func (f *BotFacade) menuRows(userID int64) [][]string {
	if f.auth.IsAdmin(userID) {
		return adminMenuRows
	}
	return userMenuRows
}
