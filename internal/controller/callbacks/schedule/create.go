package schedule

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Antoshhka/dogcare_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Antoshhka/dogcare_bot/internal/controller/callbacks/common"
	"github.com/Antoshhka/dogcare_bot/internal/controller/callbacks/common/formatting"
	"github.com/Antoshhka/dogcare_bot/internal/controller/flow"
	"github.com/Antoshhka/dogcare_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Состояния диалогов пакета, должны совпадать с state.UserState
const (
	StateEnteringDescription callbacktypes.UserState = "entering_description"
	StateEnteringCustomTime  callbacktypes.UserState = "entering_custom_time"
	StateEditingDescription  callbacktypes.UserState = "editing_schedule_description"
)

// Предлагаемые времена для быстрого выбора
var presetTimes = []model.TimeSlot{
	{Hour: 7, Minute: 0},
	{Hour: 8, Minute: 0},
	{Hour: 9, Minute: 0},
	{Hour: 12, Minute: 0},
	{Hour: 15, Minute: 0},
	{Hour: 18, Minute: 0},
	{Hour: 20, Minute: 0},
	{Hour: 21, Minute: 0},
}

// HandleStartFlow запускает мастер создания расписания для даты
// Формат: sched_create:2026-08-31
func HandleStartFlow(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	parts := strings.Split(callback.Data, ":")
	if len(parts) != 2 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}
	date, err := time.Parse("2006-01-02", parts[1])
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверная дата")
		return
	}

	h.StateManager.SetFlow(telegramID, flow.New(date))

	renderDogStep(ctx, b, msg.Chat.ID, msg.ID, h, telegramID)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleFlowDog обрабатывает выбор собаки
// Формат: flow_dog:123
func HandleFlowDog(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID
	msg := common.GetMessageFromCallback(callback)
	f := h.StateManager.GetFlow(telegramID)
	if msg == nil || f == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Мастер не активен")
		return
	}

	dogID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	user, familyID, ok := requireFamily(ctx, b, callback, h)
	if !ok {
		return
	}

	dog, err := h.DogService.GetByID(ctx, dogID, familyID)
	if err != nil {
		h.Logger.Error("Failed to get dog", zap.Error(err), zap.Int64("dog_id", dogID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Собака не найдена")
		return
	}

	if err := f.SelectDog(dog); err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ "+validationText(err))
		return
	}

	h.Logger.Info("Flow dog selected",
		zap.Int64("telegram_id", user.TelegramID),
		zap.Int64("dog_id", dog.ID))

	renderTypeStep(ctx, b, msg.Chat.ID, msg.ID, f)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleFlowType обрабатывает выбор типа события
// Формат: flow_type:meal
func HandleFlowType(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID
	msg := common.GetMessageFromCallback(callback)
	f := h.StateManager.GetFlow(telegramID)
	if msg == nil || f == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Мастер не активен")
		return
	}

	parts := strings.Split(callback.Data, ":")
	if len(parts) != 2 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	if err := f.SelectType(model.ScheduleType(parts[1])); err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ "+validationText(err))
		return
	}

	renderDetailsStep(ctx, b, msg.Chat.ID, msg.ID, f)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleFlowBack возвращает мастер на предыдущий шаг
func HandleFlowBack(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID
	msg := common.GetMessageFromCallback(callback)
	f := h.StateManager.GetFlow(telegramID)
	if msg == nil || f == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Мастер не активен")
		return
	}

	if err := f.Back(); err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ "+validationText(err))
		return
	}

	switch f.Step {
	case flow.StepDog:
		renderDogStep(ctx, b, msg.Chat.ID, msg.ID, h, telegramID)
	case flow.StepType:
		renderTypeStep(ctx, b, msg.Chat.ID, msg.ID, f)
	}
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleFlowRepeat обрабатывает выбор вида повторения
// Формат: flow_repeat:daily
func HandleFlowRepeat(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID
	msg := common.GetMessageFromCallback(callback)
	f := h.StateManager.GetFlow(telegramID)
	if msg == nil || f == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Мастер не активен")
		return
	}

	parts := strings.Split(callback.Data, ":")
	if len(parts) != 2 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	if err := f.SetRepeat(model.RepeatType(parts[1])); err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ "+validationText(err))
		return
	}

	renderDetailsStep(ctx, b, msg.Chat.ID, msg.ID, f)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleFlowCount обрабатывает выбор кратности daily-повторения
// Формат: flow_count:3
func HandleFlowCount(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID
	msg := common.GetMessageFromCallback(callback)
	f := h.StateManager.GetFlow(telegramID)
	if msg == nil || f == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Мастер не активен")
		return
	}

	parts := strings.Split(callback.Data, ":")
	if len(parts) != 2 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}
	count, err := strconv.Atoi(parts[1])
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверное число")
		return
	}

	if err := f.SetCount(count); err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ "+validationText(err))
		return
	}

	renderDetailsStep(ctx, b, msg.Chat.ID, msg.ID, f)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleFlowTimesToggle включает или выключает выбор времени
func HandleFlowTimesToggle(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID
	msg := common.GetMessageFromCallback(callback)
	f := h.StateManager.GetFlow(telegramID)
	if msg == nil || f == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Мастер не активен")
		return
	}

	if err := f.ToggleWithTimes(); err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ "+validationText(err))
		return
	}

	renderDetailsStep(ctx, b, msg.Chat.ID, msg.ID, f)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleFlowTime обрабатывает выбор времени из предложенных
// Формат: flow_time:8:30
func HandleFlowTime(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID
	msg := common.GetMessageFromCallback(callback)
	f := h.StateManager.GetFlow(telegramID)
	if msg == nil || f == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Мастер не активен")
		return
	}

	hour, minute, err := common.ParseTwoIDsFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	if err := f.AddTime(model.TimeSlot{Hour: int(hour), Minute: int(minute)}); err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ "+validationText(err))
		return
	}

	renderDetailsStep(ctx, b, msg.Chat.ID, msg.ID, f)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleFlowTimeCustom просит ввести время текстом
func HandleFlowTimeCustom(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID
	f := h.StateManager.GetFlow(telegramID)
	if f == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Мастер не активен")
		return
	}
	if f.MissingSlots() == 0 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Все времена уже заданы")
		return
	}

	h.StateManager.SetState(telegramID, StateEnteringCustomTime)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: callback.From.ID,
		Text:   "🕐 Введите время в формате ЧЧ:ММ, например 08:30",
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleFlowNotif обрабатывает настройку напоминания
// Формат: flow_notif:off либо flow_notif:10
func HandleFlowNotif(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID
	msg := common.GetMessageFromCallback(callback)
	f := h.StateManager.GetFlow(telegramID)
	if msg == nil || f == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Мастер не активен")
		return
	}

	parts := strings.Split(callback.Data, ":")
	if len(parts) != 2 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	var err error
	if parts[1] == "off" {
		err = f.SetNotification(false, 0)
	} else {
		var minutes int
		minutes, err = strconv.Atoi(parts[1])
		if err == nil {
			err = f.SetNotification(true, minutes)
		}
	}
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ "+validationText(err))
		return
	}

	renderDetailsStep(ctx, b, msg.Chat.ID, msg.ID, f)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleFlowDesc просит ввести описание текстом
func HandleFlowDesc(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID
	if h.StateManager.GetFlow(telegramID) == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Мастер не активен")
		return
	}

	h.StateManager.SetState(telegramID, StateEnteringDescription)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: callback.From.ID,
		Text:   "📝 Введите описание события:",
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleFlowSubmit собирает расписание и сохраняет его
func HandleFlowSubmit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID
	msg := common.GetMessageFromCallback(callback)
	f := h.StateManager.GetFlow(telegramID)
	if msg == nil || f == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Мастер не активен")
		return
	}

	schedule, err := f.Build()
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ "+validationText(err))
		return
	}

	result, err := h.ScheduleService.Create(ctx, schedule)
	if err != nil {
		h.Logger.Error("Failed to create schedule", zap.Error(err))
		if errors.Is(err, model.ErrValidation) {
			common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ "+validationText(err))
		} else {
			common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось сохранить, попробуйте ещё раз")
		}
		return
	}

	dog := f.Dog
	h.StateManager.ClearFlow(telegramID)
	h.StateManager.ClearState(telegramID)

	text := "✅ Расписание создано!\n\n" + formatting.FormatScheduleInfo(result.Schedule, dog)

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
		ReplyMarkup: &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{{Text: "📅 К списку дня", CallbackData: "sched_day:" + result.Schedule.Date.Format("2006-01-02")}},
			},
		},
	})
	common.AnswerCallbackAlert(ctx, b, callback.ID, "✅ Создано!")
}

// HandleFlowCancel прерывает мастер
func HandleFlowCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID
	msg := common.GetMessageFromCallback(callback)

	h.StateManager.ClearFlow(telegramID)
	h.StateManager.ClearState(telegramID)

	if msg != nil {
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    msg.Chat.ID,
			MessageID: msg.ID,
			Text:      "❌ Создание расписания отменено",
		})
	}
	common.AnswerCallback(ctx, b, callback.ID, "Отменено")
}

// RenderDetails перерисовывает экран деталей новым сообщением.
// Используется после текстовых диалогов (описание, своё время).
func RenderDetails(ctx context.Context, b *bot.Bot, chatID int64, h *callbacktypes.Handler, telegramID int64) {
	f := h.StateManager.GetFlow(telegramID)
	if f == nil {
		return
	}

	text, keyboard := detailsScreen(f)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})
}

// renderDogStep рисует экран выбора собаки
func renderDogStep(ctx context.Context, b *bot.Bot, chatID int64, messageID int, h *callbacktypes.Handler, telegramID int64) {
	user, err := h.UserService.GetByTelegramID(ctx, telegramID)
	if err != nil || user == nil || user.FamilyID == nil {
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    chatID,
			MessageID: messageID,
			Text:      "🐕 У вас пока нет собак. Добавьте собаку: /adddog",
		})
		return
	}

	dogs, err := h.DogService.List(ctx, *user.FamilyID)
	if err != nil || len(dogs) == 0 {
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    chatID,
			MessageID: messageID,
			Text:      "🐕 У вас пока нет собак. Добавьте собаку: /adddog",
		})
		return
	}

	var rows [][]models.InlineKeyboardButton
	for _, dog := range dogs {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: "🐕 " + dog.Name, CallbackData: fmt.Sprintf("flow_dog:%d", dog.ID)},
		})
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "❌ Отмена", CallbackData: "flow_cancel"},
	})

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        "🐕 <b>Шаг 1 из 3</b>\n\nДля какой собаки создаём расписание?",
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: rows},
	})
}

// renderTypeStep рисует экран выбора типа события
func renderTypeStep(ctx context.Context, b *bot.Bot, chatID int64, messageID int, f *flow.Flow) {
	var rows [][]models.InlineKeyboardButton
	for i := 0; i < len(model.AllScheduleTypes); i += 2 {
		var row []models.InlineKeyboardButton
		for j := i; j < i+2 && j < len(model.AllScheduleTypes); j++ {
			typ := model.AllScheduleTypes[j]
			meta := typ.Meta()
			row = append(row, models.InlineKeyboardButton{
				Text:         meta.Icon + " " + meta.Title,
				CallbackData: "flow_type:" + string(typ),
			})
		}
		rows = append(rows, row)
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "◀️ Назад", CallbackData: "flow_back"},
		{Text: "❌ Отмена", CallbackData: "flow_cancel"},
	})

	text := fmt.Sprintf("🐕 Собака: <b>%s</b>\n\n📋 <b>Шаг 2 из 3</b>\n\nЧто планируем?", f.Dog.Name)

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: rows},
	})
}

// renderDetailsStep перерисовывает экран деталей на месте
func renderDetailsStep(ctx context.Context, b *bot.Bot, chatID int64, messageID int, f *flow.Flow) {
	text, keyboard := detailsScreen(f)
	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})
}

// detailsScreen собирает текст и клавиатуру третьего шага
func detailsScreen(f *flow.Flow) (string, *models.InlineKeyboardMarkup) {
	meta := f.Type.Meta()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s <b>Шаг 3 из 3</b>\n\n", meta.Icon)
	fmt.Fprintf(&sb, "🐕 Собака: <b>%s</b>\n", f.Dog.Name)
	fmt.Fprintf(&sb, "📋 Тип: %s\n", meta.Title)
	fmt.Fprintf(&sb, "📅 Дата: %s\n", formatting.FormatDateWithWeekday(f.Date))
	fmt.Fprintf(&sb, "🔁 Повторение: %s\n", formatting.FormatRepeat(f.Details.Repeat))

	if f.Details.WithTimes {
		fmt.Fprintf(&sb, "🕐 Время: %s\n", formatting.FormatTimes(f.Details.Times))
		if missing := f.MissingSlots(); missing > 0 {
			fmt.Fprintf(&sb, "⚠️ Осталось выбрать времён: %d\n", missing)
		}
		if f.Details.Notification.Enabled {
			fmt.Fprintf(&sb, "🔔 Напоминание: %s\n", formatting.FormatNotificationOffset(f.Details.Notification.MinutesBefore))
		} else {
			sb.WriteString("🔕 Напоминание выключено\n")
		}
	} else {
		sb.WriteString("🕐 Без привязки ко времени\n")
	}

	description := f.Details.Description
	if description == "" {
		description = meta.DefaultDescription
	}
	if description != "" {
		fmt.Fprintf(&sb, "📝 %s\n", description)
	}

	var rows [][]models.InlineKeyboardButton

	repeatRow := []models.InlineKeyboardButton{
		repeatButton(f, model.RepeatNone, "Нет"),
		repeatButton(f, model.RepeatDaily, "День"),
		repeatButton(f, model.RepeatWeekly, "Неделя"),
		repeatButton(f, model.RepeatMonthly, "Месяц"),
	}
	rows = append(rows, repeatRow)

	if f.Details.Repeat.Type == model.RepeatDaily {
		var countRow []models.InlineKeyboardButton
		for c := model.MinDailyCount; c <= model.MaxDailyCount; c++ {
			label := fmt.Sprintf("%dx", c)
			if f.Details.Repeat.Count == c {
				label = "• " + label
			}
			countRow = append(countRow, models.InlineKeyboardButton{
				Text:         label,
				CallbackData: fmt.Sprintf("flow_count:%d", c),
			})
		}
		rows = append(rows, countRow)
	}

	timesLabel := "🕐 Указывать время: выкл"
	if f.Details.WithTimes {
		timesLabel = "🕐 Указывать время: вкл"
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: timesLabel, CallbackData: "flow_times_toggle"},
	})

	if f.Details.WithTimes && f.MissingSlots() > 0 {
		for i := 0; i < len(presetTimes); i += 4 {
			var row []models.InlineKeyboardButton
			for j := i; j < i+4 && j < len(presetTimes); j++ {
				ts := presetTimes[j]
				row = append(row, models.InlineKeyboardButton{
					Text:         ts.String(),
					CallbackData: fmt.Sprintf("flow_time:%d:%d", ts.Hour, ts.Minute),
				})
			}
			rows = append(rows, row)
		}
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: "✏️ Своё время", CallbackData: "flow_time_custom"},
		})
	}

	if f.Details.WithTimes {
		rows = append(rows, []models.InlineKeyboardButton{
			notifButton(f, -1, "🔕"),
			notifButton(f, 0, "В момент"),
			notifButton(f, 10, "За 10м"),
			notifButton(f, 30, "За 30м"),
			notifButton(f, 60, "За 1ч"),
		})
	}

	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "📝 Описание", CallbackData: "flow_desc"},
	})
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "◀️ Назад", CallbackData: "flow_back"},
		{Text: "❌ Отмена", CallbackData: "flow_cancel"},
		{Text: "✅ Создать", CallbackData: "flow_submit"},
	})

	return sb.String(), &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func repeatButton(f *flow.Flow, typ model.RepeatType, label string) models.InlineKeyboardButton {
	if f.Details.Repeat.Type == typ {
		label = "• " + label
	}
	return models.InlineKeyboardButton{
		Text:         label,
		CallbackData: "flow_repeat:" + string(typ),
	}
}

// notifButton кнопка напоминания, minutes == -1 означает "выключить"
func notifButton(f *flow.Flow, minutes int, label string) models.InlineKeyboardButton {
	n := f.Details.Notification
	if minutes == -1 {
		if !n.Enabled {
			label = "• " + label
		}
		return models.InlineKeyboardButton{Text: label, CallbackData: "flow_notif:off"}
	}
	if n.Enabled && n.MinutesBefore == minutes {
		label = "• " + label
	}
	return models.InlineKeyboardButton{
		Text:         label,
		CallbackData: fmt.Sprintf("flow_notif:%d", minutes),
	}
}

// requireFamily получает пользователя и его семью, отвечая alert при неудаче
func requireFamily(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) (*model.User, int64, bool) {
	user, err := h.UserService.GetByTelegramID(ctx, callback.From.ID)
	if err != nil || user == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Пользователь не найден, нажмите /start")
		return nil, 0, false
	}
	if user.FamilyID == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Сначала добавьте собаку: /adddog")
		return nil, 0, false
	}
	return user, *user.FamilyID, true
}

// validationText убирает служебный префикс sentinel-ошибки из текста для пользователя
func validationText(err error) string {
	text := err.Error()
	for _, prefix := range []string{"validation failed: ", "not found: "} {
		if strings.HasPrefix(text, prefix) {
			return strings.TrimPrefix(text, prefix)
		}
	}
	return text
}
