package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"aktau-afisha-bot/internal/dialog"
	"aktau-afisha-bot/internal/domain"
	"aktau-afisha-bot/internal/domain/model"
	"aktau-afisha-bot/internal/infra/metrics"
)

// stepAdvanceFlow drives the linear creation flows. One validated answer
// moves the session exactly one step; a rejected answer re-prompts and
// leaves both session and draft untouched.
func (f *BotFacade) stepAdvanceFlow(ctx context.Context, ev dialog.Event, sess *dialog.Session) error {
	def, ok := f.flows.Flow(sess.Flow)
	if !ok {
		f.log.Error().Str("flow", string(sess.Flow)).Msg("session references unknown flow")
		return f.abortFlow(ctx, ev, sess)
	}
	cur, _ := def.Step(sess.Step)

	next, err := def.Advance(sess, ev.Text)
	if dialog.IsValidation(err) {
		return f.bot.SendMessage(ctx, ev.ChatID, cur.RetryPrompt())
	}
	if err != nil {
		f.log.Error().Err(err).Str("flow", string(sess.Flow)).Msg("advance flow")
		return f.abortFlow(ctx, ev, sess)
	}

	if next != nil {
		if err := f.sessions.Set(ctx, sess); err != nil {
			return err
		}
		return f.bot.SendMessage(ctx, ev.ChatID, next.Prompt)
	}
	return f.commitFlow(ctx, ev, sess)
}

// commitFlow promotes a completed draft to a persisted entity, then clears
// the session. A gateway failure aborts: the user is told, the session is
// cleared, nothing half-written survives.
func (f *BotFacade) commitFlow(ctx context.Context, ev dialog.Event, sess *dialog.Session) error {
	var (
		done string
		err  error
	)
	switch sess.Flow {
	case FlowAddEvent:
		var date time.Time
		date, err = time.Parse(time.RFC3339, sess.Field(fieldDate))
		if err == nil {
			_, err = f.eventUC.Create(ctx,
				sess.Field(fieldTitle), sess.Field(fieldDescription), date, sess.Field(fieldLocation))
		}
		done = msgEventAdded
	case FlowAddPromotion:
		_, err = f.promoUC.Create(ctx,
			sess.Field(fieldTitle), sess.Field(fieldDescription),
			sess.Field(fieldVenue), sess.Field(fieldValidUntil))
		done = msgPromoAdded
	case FlowFeedback:
		_, err = f.feedbackUC.Leave(ctx, ev.UserID, sess.Field(fieldMessage))
		done = msgFeedbackThanks
	default:
		err = fmt.Errorf("flow %s has no commit", sess.Flow)
	}

	if err != nil {
		f.log.Error().Err(err).Str("flow", string(sess.Flow)).Int64("user_id", ev.UserID).Msg("commit flow")
		return f.abortFlow(ctx, ev, sess)
	}
	if err := f.sessions.Clear(ctx, ev.UserID); err != nil {
		return err
	}
	metrics.IncFlowOutcome(string(sess.Flow), "commit")
	return f.bot.SendMessage(ctx, ev.ChatID, done)
}

func (f *BotFacade) abortFlow(ctx context.Context, ev dialog.Event, sess *dialog.Session) error {
	if err := f.sessions.Clear(ctx, ev.UserID); err != nil {
		return err
	}
	metrics.IncFlowOutcome(string(sess.Flow), "abort")
	return f.bot.SendMessage(ctx, ev.ChatID, msgInternalError)
}

func (f *BotFacade) stepSearchChooseMode(ctx context.Context, ev dialog.Event, sess *dialog.Session) error {
	switch ev.Text {
	case btnSearchByDate:
		sess.Step = StepSearchWaitDate
		if err := f.sessions.Set(ctx, sess); err != nil {
			return err
		}
		return f.bot.SendKeyboard(ctx, ev.ChatID, msgEnterSearchDate, [][]string{{btnMenu}})
	case btnSearchByCategory:
		sess.Step = StepSearchWaitCategory
		if err := f.sessions.Set(ctx, sess); err != nil {
			return err
		}
		return f.bot.SendKeyboard(ctx, ev.ChatID, msgChooseCategory, categoryRows())
	case btnMenu:
		return f.shortcutMenu(ctx, ev)
	}
	// Anything else at mode choice is silently ignored.
	return nil
}

func (f *BotFacade) stepSearchCategory(ctx context.Context, ev dialog.Event, sess *dialog.Session) error {
	if ev.Text == btnMenu {
		return f.shortcutMenu(ctx, ev)
	}
	for _, cat := range Categories {
		if ev.Text == cat {
			if err := f.sessions.Clear(ctx, ev.UserID); err != nil {
				return err
			}
			metrics.IncFlowOutcome(string(FlowSearch), "commit")
			return f.searchCategory(ctx, ev, cat)
		}
	}
	// Free text that is not a category falls through as a no-op.
	return nil
}

func (f *BotFacade) stepEditEventValue(ctx context.Context, ev dialog.Event, sess *dialog.Session) error {
	id, err := strconv.ParseInt(sess.Field(fieldTargetID), 10, 64)
	if err != nil {
		return f.abortFlow(ctx, ev, sess)
	}
	field := sess.Field(fieldEditField)

	value := ev.Text
	if field == model.EventFieldDate {
		t, err := time.Parse(dialog.DateTimeLayout, ev.Text)
		if err != nil {
			return f.bot.SendMessage(ctx, ev.ChatID, "Неверный формат даты. Введите в формате ДД.ММ.ГГГГ ЧЧ:ММ")
		}
		value = t.UTC().Format(time.RFC3339)
	}

	err = f.eventUC.UpdateField(ctx, id, field, value)
	if errors.Is(err, domain.ErrNotFound) {
		if err := f.sessions.Clear(ctx, ev.UserID); err != nil {
			return err
		}
		metrics.IncFlowOutcome(string(sess.Flow), "abort")
		return f.bot.SendMessage(ctx, ev.ChatID, msgEventNotFound)
	}
	if err != nil {
		f.log.Error().Err(err).Int64("event_id", id).Str("field", field).Msg("update event field")
		return f.abortFlow(ctx, ev, sess)
	}
	if err := f.sessions.Clear(ctx, ev.UserID); err != nil {
		return err
	}
	metrics.IncFlowOutcome(string(sess.Flow), "commit")
	return f.bot.SendMessage(ctx, ev.ChatID, fmt.Sprintf(msgFieldUpdated, field))
}

func (f *BotFacade) stepEditPromoValue(ctx context.Context, ev dialog.Event, sess *dialog.Session) error {
	id, err := strconv.ParseInt(sess.Field(fieldTargetID), 10, 64)
	if err != nil {
		return f.abortFlow(ctx, ev, sess)
	}
	field := sess.Field(fieldEditField)

	err = f.promoUC.UpdateField(ctx, id, field, ev.Text)
	if errors.Is(err, domain.ErrNotFound) {
		if err := f.sessions.Clear(ctx, ev.UserID); err != nil {
			return err
		}
		metrics.IncFlowOutcome(string(sess.Flow), "abort")
		return f.bot.SendMessage(ctx, ev.ChatID, msgPromoNotFound)
	}
	if err != nil {
		f.log.Error().Err(err).Int64("promo_id", id).Str("field", field).Msg("update promotion field")
		return f.abortFlow(ctx, ev, sess)
	}
	if err := f.sessions.Clear(ctx, ev.UserID); err != nil {
		return err
	}
	metrics.IncFlowOutcome(string(sess.Flow), "commit")
	return f.bot.SendMessage(ctx, ev.ChatID, fmt.Sprintf(msgFieldUpdated, field))
}

// fallback is the last router stop. The only step it serves is the search
// date prompt, where any free text is a date attempt worth retrying; for
// everything else it stays silent.
func (f *BotFacade) fallback(ctx context.Context, ev dialog.Event, sess *dialog.Session) error {
	if sess == nil || sess.Step != StepSearchWaitDate {
		return nil
	}
	if ev.Text == btnMenu {
		return f.shortcutMenu(ctx, ev)
	}

	day, err := time.Parse(dialog.DateLayout, ev.Text)
	if err != nil {
		return f.bot.SendMessage(ctx, ev.ChatID, msgBadSearchDate)
	}

	events, err := f.eventUC.SearchByDate(ctx, day)
	if err != nil {
		f.log.Error().Err(err).Msg("search by date")
		return f.abortFlow(ctx, ev, sess)
	}
	if err := f.sessions.Clear(ctx, ev.UserID); err != nil {
		return err
	}
	metrics.IncFlowOutcome(string(FlowSearch), "commit")

	if len(events) == 0 {
		return f.bot.SendMessage(ctx, ev.ChatID, msgNoDateHits)
	}
	for _, e := range events {
		if err := f.bot.SendButtons(ctx, ev.ChatID, formatEvent(e), eventButtons(e)); err != nil {
			return err
		}
	}
	return nil
}
