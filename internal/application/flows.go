package application

import "aktau-afisha-bot/internal/dialog"

// Flow and step tags. Step tags are namespaced by flow because the
// dispatcher's step table is global.
const (
	FlowAddEvent     dialog.FlowTag = "add_event"
	FlowAddPromotion dialog.FlowTag = "add_promotion"
	FlowFeedback     dialog.FlowTag = "feedback"
	FlowSearch       dialog.FlowTag = "search"
	FlowEditEvent    dialog.FlowTag = "edit_event"
	FlowEditPromo    dialog.FlowTag = "edit_promo"
)

const (
	StepEventTitle       dialog.StepTag = "add_event:title"
	StepEventDescription dialog.StepTag = "add_event:description"
	StepEventDate        dialog.StepTag = "add_event:date"
	StepEventLocation    dialog.StepTag = "add_event:location"

	StepPromoTitle       dialog.StepTag = "add_promotion:title"
	StepPromoDescription dialog.StepTag = "add_promotion:description"
	StepPromoVenue       dialog.StepTag = "add_promotion:venue"
	StepPromoDates       dialog.StepTag = "add_promotion:dates"

	StepFeedbackMessage dialog.StepTag = "feedback:message"

	StepSearchChooseMode   dialog.StepTag = "search:choose_mode"
	StepSearchWaitDate     dialog.StepTag = "search:wait_date"
	StepSearchWaitCategory dialog.StepTag = "search:wait_category"

	StepEditEventField dialog.StepTag = "edit_event:choose_field"
	StepEditEventValue dialog.StepTag = "edit_event:wait_value"
	StepEditPromoField dialog.StepTag = "edit_promo:choose_field"
	StepEditPromoValue dialog.StepTag = "edit_promo:wait_value"
)

// Draft field keys.
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldDate        = "date"
	fieldLocation    = "location"
	fieldVenue       = "venue"
	fieldValidUntil  = "valid_until"
	fieldMessage     = "message"
	fieldTargetID    = "target_id"
	fieldEditField   = "field"
)

// newFlowRegistry builds the linear creation flows. Search and the edit
// dialogs branch on buttons, so their steps are wired as dedicated handlers
// instead of Advance-driven tables.
func newFlowRegistry() *dialog.Registry {
	addEvent := dialog.NewFlow(FlowAddEvent,
		dialog.Step{
			Tag:      StepEventTitle,
			Prompt:   "Введите название мероприятия:",
			Field:    fieldTitle,
			Validate: dialog.NonEmpty(fieldTitle),
			Next:     StepEventDescription,
		},
		dialog.Step{
			Tag:      StepEventDescription,
			Prompt:   "Введите описание мероприятия:",
			Field:    fieldDescription,
			Validate: dialog.NonEmpty(fieldDescription),
			Next:     StepEventDate,
		},
		dialog.Step{
			Tag:      StepEventDate,
			Prompt:   "Введите дату и время мероприятия (в формате ДД.ММ.ГГГГ ЧЧ:ММ):",
			Retry:    "Неверный формат даты. Пожалуйста, используйте формат ДД.ММ.ГГГГ ЧЧ:ММ",
			Field:    fieldDate,
			Validate: dialog.DateTime(fieldDate),
			Next:     StepEventLocation,
		},
		dialog.Step{
			Tag:      StepEventLocation,
			Prompt:   "Введите место проведения мероприятия:",
			Field:    fieldLocation,
			Validate: dialog.NonEmpty(fieldLocation),
		},
	)

	addPromotion := dialog.NewFlow(FlowAddPromotion,
		dialog.Step{
			Tag:      StepPromoTitle,
			Prompt:   "Введите название акции:",
			Field:    fieldTitle,
			Validate: dialog.NonEmpty(fieldTitle),
			Next:     StepPromoDescription,
		},
		dialog.Step{
			Tag:      StepPromoDescription,
			Prompt:   "Введите описание акции:",
			Field:    fieldDescription,
			Validate: dialog.NonEmpty(fieldDescription),
			Next:     StepPromoVenue,
		},
		dialog.Step{
			Tag:      StepPromoVenue,
			Prompt:   "Введите название заведения:",
			Field:    fieldVenue,
			Validate: dialog.NonEmpty(fieldVenue),
			Next:     StepPromoDates,
		},
		dialog.Step{
			Tag:      StepPromoDates,
			Prompt:   "Введите период действия акции (например, 'до 31.12.2024'):",
			Field:    fieldValidUntil,
			Validate: dialog.NonEmpty(fieldValidUntil),
		},
	)

	feedback := dialog.NewFlow(FlowFeedback,
		dialog.Step{
			Tag:      StepFeedbackMessage,
			Prompt:   "Пожалуйста, напишите ваш отзыв или предложение:",
			Field:    fieldMessage,
			Validate: dialog.NonEmpty(fieldMessage),
		},
	)

	return dialog.NewRegistry(addEvent, addPromotion, feedback)
}
