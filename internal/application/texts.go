package application

import (
	"fmt"

	"aktau-afisha-bot/internal/domain/model"
	"aktau-afisha-bot/internal/domain/ports/adapter"
)

// Event categories a search can target. Matched as literal substrings of
// the description, so curation writes the category word into it.
var Categories = []string{
	"Вечеринка",
	"Концерт",
	"Встреча",
	"Акция",
	"Другое",
}

var langChoices = []struct {
	Title string
	Code  string
}{
	{"Русский", model.LangRU},
	{"Қазақша", model.LangKZ},
	{"English", model.LangEN},
}

// Reply-keyboard menus.
const (
	btnUpcoming   = "Ближайшие мероприятия"
	btnPromotions = "Акции"
	btnSearch     = "Поиск"
	btnFavorites  = "Избранное"
	btnFeedback   = "Оставить отзыв"
	btnHelp       = "Помощь"
	btnLanguage   = "Язык"
	btnMenu       = "Меню"

	btnSearchByDate     = "Поиск по дате"
	btnSearchByCategory = "Поиск по категории"

	btnAdminPanel = "Админ-панель"
	btnStats      = "Статистика"
	btnBroadcast  = "Рассылка"
)

var userMenuRows = [][]string{
	{btnUpcoming, btnPromotions},
	{btnSearch, btnFavorites},
	{btnFeedback, btnHelp},
	{btnLanguage},
}

var adminMenuRows = append(append([][]string{}, userMenuRows...),
	[]string{btnAdminPanel, btnStats},
	[]string{btnBroadcast},
)

const (
	msgHelp = "📚 Справка по использованию бота:\n\n" +
		"1. /upcoming_event - Показывает ближайшие мероприятия\n" +
		"2. /feedback - Позволяет оставить отзыв\n" +
		"3. /promotions_in_public_catering - Показывает акции в заведениях\n\n" +
		"Для менеджеров доступна дополнительная панель управления."

	msgFAQ = "❓ Часто задаваемые вопросы\n\n" +
		"Как добавить мероприятие?\n" +
		"— Только администратор может добавлять мероприятия через /admin.\n\n" +
		"Как попасть в избранное?\n" +
		"— Нажмите ⭐️ под интересующим мероприятием.\n\n" +
		"Как подписаться на рассылку?\n" +
		"— Используйте команду /subscribe.\n\n" +
		"Как связаться с поддержкой?\n" +
		"— Используйте команду /contact."

	msgContact = "📞 Для связи с поддержкой напишите: @your_support_username или на email: support@example.com"

	msgNoAccess         = "У вас нет доступа к этой команде."
	msgNoAccessAdmin    = "У вас нет доступа к админ-панели."
	msgNoAccessFeature  = "У вас нет доступа к этой функции."
	msgInternalError    = "Произошла ошибка. Попробуйте позже."
	msgNoUpcoming       = "На данный момент нет предстоящих мероприятий."
	msgNoPromotions     = "На данный момент нет активных акций."
	msgNoEvents         = "Список мероприятий пуст."
	msgNoPromosList     = "Список акций пуст."
	msgNoFavorites      = "У вас пока нет избранных мероприятий."
	msgNoCategoryHits   = "Мероприятий по выбранной категории не найдено."
	msgNoDateHits       = "Мероприятий на эту дату не найдено."
	msgSubscribed       = "Вы подписались на уведомления о новых мероприятиях!"
	msgAlreadySub       = "Вы уже подписаны на уведомления."
	msgFavAdded         = "Добавлено в избранное!"
	msgFavExists        = "Уже в избранном."
	msgFeedbackThanks   = "Спасибо за ваш отзыв! 🙏"
	msgEventAdded       = "✅ Мероприятие успешно добавлено!"
	msgPromoAdded       = "✅ Акция успешно добавлена!"
	msgEventDeleted     = "Мероприятие удалено."
	msgEventNotFound    = "Мероприятие не найдено."
	msgPromoDeleted     = "Акция удалена."
	msgPromoNotFound    = "Акция не найдена."
	msgAdminPanel       = "Панель управления:"
	msgSearchMode       = "Как вы хотите искать мероприятие?"
	msgEnterSearchDate  = "Введите дату в формате ДД.ММ.ГГГГ:"
	msgBadSearchDate    = "Неверный формат даты. Введите в формате ДД.ММ.ГГГГ:"
	msgChooseCategory   = "Выберите категорию:"
	msgMainMenu         = "Главное меню:"
	msgWhatToEdit       = "Что вы хотите изменить?"
	msgBroadcastUsage   = "Введите текст рассылки после команды, например: /broadcast Сегодня новое мероприятие!"
	msgBroadcastReport  = "Рассылка отправлена %d подписчикам."
	msgFieldUpdated     = "Поле %s успешно обновлено!"
	msgEnterFieldValue  = "Введите новое значение для поля: %s"
	msgStatsTemplate    = "📊 Статистика\n\n👤 Пользователей: %d\n🔔 Подписчиков: %d\n🎉 Мероприятий: %d\n🎁 Акций: %d\n⭐️ Избранных: %d"
	msgBroadcastPrefix  = "📢 %s"
	msgBroadcastKeyword = "Введите текст рассылки командой /broadcast <текст>."
)

func formatEvent(e *model.Event) string {
	return fmt.Sprintf("🎉 %s\n\n📅 Дата: %s\n📍 Место: %s\n\n%s",
		e.Title, e.Date.Format("02.01.2006 15:04"), e.Location, e.Description)
}

func formatPromotion(p *model.Promotion) string {
	return fmt.Sprintf("🎁 %s\n\n🏪 Заведение: %s\n⏰ Действует: %s\n\n%s",
		p.Title, p.Venue, p.ValidUntil, p.Description)
}

func eventButtons(e *model.Event) [][]adapter.InlineButton {
	return [][]adapter.InlineButton{
		{{Text: "⭐️ В избранное", Data: fmt.Sprintf("fav_%d", e.ID)}},
		{{Text: "Подробнее", Data: fmt.Sprintf("details_%d", e.ID)}},
		{{Text: "Поделиться", SwitchInlineQuery: e.Title}},
	}
}

func eventAdminButtons(e *model.Event) [][]adapter.InlineButton {
	return append(eventButtons(e),
		[]adapter.InlineButton{
			{Text: "✏️ Изменить", Data: fmt.Sprintf("edit_event_%d", e.ID)},
			{Text: "🗑 Удалить", Data: fmt.Sprintf("delete_event_%d", e.ID)},
		})
}

func promoAdminButtons(p *model.Promotion) [][]adapter.InlineButton {
	return [][]adapter.InlineButton{
		{
			{Text: "✏️ Изменить", Data: fmt.Sprintf("edit_promo_%d", p.ID)},
			{Text: "🗑 Удалить", Data: fmt.Sprintf("delete_promo_%d", p.ID)},
		},
	}
}

func adminPanelButtons() [][]adapter.InlineButton {
	return [][]adapter.InlineButton{
		{
			{Text: "➕ Добавить мероприятие", Data: "add_event"},
			{Text: "➕ Добавить акцию", Data: "add_promotion"},
		},
		{
			{Text: "📋 Список мероприятий", Data: "list_events"},
			{Text: "📋 Список акций", Data: "list_promotions"},
		},
	}
}

func languageButtons() [][]adapter.InlineButton {
	rows := make([][]adapter.InlineButton, 0, len(langChoices))
	for _, lc := range langChoices {
		rows = append(rows, []adapter.InlineButton{{Text: lc.Title, Data: "lang_" + lc.Code}})
	}
	return rows
}

func editEventFieldButtons() [][]adapter.InlineButton {
	return [][]adapter.InlineButton{
		{{Text: "Название", Data: "edit_field_title"}},
		{{Text: "Описание", Data: "edit_field_description"}},
		{{Text: "Дата", Data: "edit_field_date"}},
		{{Text: "Место", Data: "edit_field_location"}},
	}
}

func editPromoFieldButtons() [][]adapter.InlineButton {
	return [][]adapter.InlineButton{
		{{Text: "Название", Data: "edit_promo_field_title"}},
		{{Text: "Описание", Data: "edit_promo_field_description"}},
		{{Text: "Заведение", Data: "edit_promo_field_venue"}},
		{{Text: "Срок действия", Data: "edit_promo_field_valid_until"}},
	}
}

func searchModeRows() [][]string {
	return [][]string{
		{btnSearchByDate},
		{btnSearchByCategory},
	}
}

func categoryRows() [][]string {
	rows := make([][]string, 0, len(Categories)+1)
	for _, c := range Categories {
		rows = append(rows, []string{c})
	}
	return append(rows, []string{btnMenu})
}
