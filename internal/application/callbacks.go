package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"aktau-afisha-bot/internal/dialog"
	"aktau-afisha-bot/internal/domain"
	"aktau-afisha-bot/internal/domain/model"
)

const msgNoAccessShort = "Нет доступа."

func (f *BotFacade) cbAddEvent(ctx context.Context, ev dialog.Event, _ dialog.CallbackPayload) error {
	if !f.auth.IsAdmin(ev.UserID) {
		return f.bot.SendMessage(ctx, ev.ChatID, msgNoAccessFeature)
	}
	return f.enterFlow(ctx, ev, FlowAddEvent)
}

func (f *BotFacade) cbAddPromotion(ctx context.Context, ev dialog.Event, _ dialog.CallbackPayload) error {
	if !f.auth.IsAdmin(ev.UserID) {
		return f.bot.SendMessage(ctx, ev.ChatID, msgNoAccessFeature)
	}
	return f.enterFlow(ctx, ev, FlowAddPromotion)
}

func (f *BotFacade) cbListEvents(ctx context.Context, ev dialog.Event, _ dialog.CallbackPayload) error {
	if !f.auth.IsAdmin(ev.UserID) {
		return f.bot.SendMessage(ctx, ev.ChatID, msgNoAccessFeature)
	}
	events, err := f.eventUC.All(ctx)
	if err != nil {
		f.log.Error().Err(err).Msg("list all events")
		return f.bot.SendMessage(ctx, ev.ChatID, msgInternalError)
	}
	if len(events) == 0 {
		return f.bot.SendMessage(ctx, ev.ChatID, msgNoEvents)
	}
	return f.sendEventsForAdmin(ctx, ev, events)
}

func (f *BotFacade) cbListPromotions(ctx context.Context, ev dialog.Event, _ dialog.CallbackPayload) error {
	if !f.auth.IsAdmin(ev.UserID) {
		return f.bot.SendMessage(ctx, ev.ChatID, msgNoAccessFeature)
	}
	promos, err := f.promoUC.All(ctx)
	if err != nil {
		f.log.Error().Err(err).Msg("list all promotions")
		return f.bot.SendMessage(ctx, ev.ChatID, msgInternalError)
	}
	if len(promos) == 0 {
		return f.bot.SendMessage(ctx, ev.ChatID, msgNoPromosList)
	}
	for _, p := range promos {
		if err := f.bot.SendButtons(ctx, ev.ChatID, formatPromotion(p), promoAdminButtons(p)); err != nil {
			return err
		}
	}
	return nil
}

func (f *BotFacade) cbFavorite(ctx context.Context, ev dialog.Event, payload dialog.CallbackPayload) error {
	added, err := f.favoriteUC.Add(ctx, ev.UserID, payload.TargetID)
	if errors.Is(err, domain.ErrNotFound) {
		return f.bot.SendMessage(ctx, ev.ChatID, msgEventNotFound)
	}
	if err != nil {
		return f.bot.SendMessage(ctx, ev.ChatID, msgInternalError)
	}
	if added {
		return f.bot.SendMessage(ctx, ev.ChatID, msgFavAdded)
	}
	return f.bot.SendMessage(ctx, ev.ChatID, msgFavExists)
}

func (f *BotFacade) cbDetails(ctx context.Context, ev dialog.Event, payload dialog.CallbackPayload) error {
	e, err := f.eventUC.Get(ctx, payload.TargetID)
	if errors.Is(err, domain.ErrNotFound) {
		return f.bot.SendMessage(ctx, ev.ChatID, msgEventNotFound)
	}
	if err != nil {
		return f.bot.SendMessage(ctx, ev.ChatID, msgInternalError)
	}
	return f.bot.SendButtons(ctx, ev.ChatID, formatEvent(e), eventButtons(e))
}

func (f *BotFacade) cbSetLanguage(ctx context.Context, ev dialog.Event, payload dialog.CallbackPayload) error {
	code := payload.Field
	if err := f.langUC.Set(ctx, ev.UserID, code); err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			return nil
		}
		return f.bot.SendMessage(ctx, ev.ChatID, msgInternalError)
	}
	return f.bot.SendMessage(ctx, ev.ChatID, f.i18n.T(code, "lang_set"))
}

// cbEditEvent opens the edit dialog: remember the target id, show the field
// menu. The event itself is re-resolved only at commit time.
func (f *BotFacade) cbEditEvent(ctx context.Context, ev dialog.Event, payload dialog.CallbackPayload) error {
	if !f.auth.IsAdmin(ev.UserID) {
		return f.bot.SendMessage(ctx, ev.ChatID, msgNoAccessShort)
	}
	sess := dialog.NewSession(ev.UserID, FlowEditEvent, StepEditEventField)
	sess.SetField(fieldTargetID, strconv.FormatInt(payload.TargetID, 10))
	if err := f.sessions.Set(ctx, sess); err != nil {
		return err
	}
	return f.bot.SendButtons(ctx, ev.ChatID, msgWhatToEdit, editEventFieldButtons())
}

func (f *BotFacade) cbEditEventField(ctx context.Context, ev dialog.Event, payload dialog.CallbackPayload) error {
	sess, err := f.sessions.Get(ctx, ev.UserID)
	if err != nil {
		return err
	}
	if sess == nil || sess.Flow != FlowEditEvent {
		return nil
	}
	if !model.IsEventField(payload.Field) {
		return nil
	}
	sess.SetField(fieldEditField, payload.Field)
	sess.Step = StepEditEventValue
	if err := f.sessions.Set(ctx, sess); err != nil {
		return err
	}
	return f.bot.SendMessage(ctx, ev.ChatID, fmt.Sprintf(msgEnterFieldValue, payload.Field))
}

func (f *BotFacade) cbDeleteEvent(ctx context.Context, ev dialog.Event, payload dialog.CallbackPayload) error {
	if !f.auth.IsAdmin(ev.UserID) {
		return f.bot.SendMessage(ctx, ev.ChatID, msgNoAccessShort)
	}
	err := f.eventUC.Delete(ctx, payload.TargetID)
	if errors.Is(err, domain.ErrNotFound) {
		return f.bot.SendMessage(ctx, ev.ChatID, msgEventNotFound)
	}
	if err != nil {
		return f.bot.SendMessage(ctx, ev.ChatID, msgInternalError)
	}
	return f.bot.SendMessage(ctx, ev.ChatID, msgEventDeleted)
}

func (f *BotFacade) cbEditPromo(ctx context.Context, ev dialog.Event, payload dialog.CallbackPayload) error {
	if !f.auth.IsAdmin(ev.UserID) {
		return f.bot.SendMessage(ctx, ev.ChatID, msgNoAccessShort)
	}
	sess := dialog.NewSession(ev.UserID, FlowEditPromo, StepEditPromoField)
	sess.SetField(fieldTargetID, strconv.FormatInt(payload.TargetID, 10))
	if err := f.sessions.Set(ctx, sess); err != nil {
		return err
	}
	return f.bot.SendButtons(ctx, ev.ChatID, msgWhatToEdit, editPromoFieldButtons())
}

func (f *BotFacade) cbEditPromoField(ctx context.Context, ev dialog.Event, payload dialog.CallbackPayload) error {
	sess, err := f.sessions.Get(ctx, ev.UserID)
	if err != nil {
		return err
	}
	if sess == nil || sess.Flow != FlowEditPromo {
		return nil
	}
	if !model.IsPromoField(payload.Field) {
		return nil
	}
	sess.SetField(fieldEditField, payload.Field)
	sess.Step = StepEditPromoValue
	if err := f.sessions.Set(ctx, sess); err != nil {
		return err
	}
	return f.bot.SendMessage(ctx, ev.ChatID, fmt.Sprintf(msgEnterFieldValue, payload.Field))
}

func (f *BotFacade) cbDeletePromo(ctx context.Context, ev dialog.Event, payload dialog.CallbackPayload) error {
	if !f.auth.IsAdmin(ev.UserID) {
		return f.bot.SendMessage(ctx, ev.ChatID, msgNoAccessShort)
	}
	err := f.promoUC.Delete(ctx, payload.TargetID)
	if errors.Is(err, domain.ErrNotFound) {
		return f.bot.SendMessage(ctx, ev.ChatID, msgPromoNotFound)
	}
	if err != nil {
		return f.bot.SendMessage(ctx, ev.ChatID, msgInternalError)
	}
	return f.bot.SendMessage(ctx, ev.ChatID, msgPromoDeleted)
}
