package schedule

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Antoshhka/dogcare_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Antoshhka/dogcare_bot/internal/controller/callbacks/common"
	"github.com/Antoshhka/dogcare_bot/internal/controller/callbacks/common/formatting"
	"github.com/Antoshhka/dogcare_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleDayView показывает расписание семьи на день
// Формат: sched_day:2026-08-31
func HandleDayView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
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

	_, familyID, ok := requireFamily(ctx, b, callback, h)
	if !ok {
		return
	}

	text, keyboard, err := dayScreen(ctx, h, familyID, date)
	if err != nil {
		h.Logger.Error("Failed to build day view", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось загрузить день")
		return
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// SendDay отправляет экран дня новым сообщением (для команд /today, /schedules)
func SendDay(ctx context.Context, b *bot.Bot, chatID int64, h *callbacktypes.Handler, familyID int64, date time.Time) {
	text, keyboard, err := dayScreen(ctx, h, familyID, date)
	if err != nil {
		h.Logger.Error("Failed to build day view", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Не удалось загрузить расписание, попробуйте ещё раз",
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})
}

// HandleToggleInstance переключает выполнение экземпляра и перерисовывает день
// Формат: toggle_instance:sid:iid:2026-08-31
func HandleToggleInstance(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	parts := strings.Split(callback.Data, ":")
	if len(parts) != 4 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}
	scheduleID, err1 := strconv.ParseInt(parts[1], 10, 64)
	instanceID, err2 := strconv.ParseInt(parts[2], 10, 64)
	date, err3 := time.Parse("2006-01-02", parts[3])
	if err1 != nil || err2 != nil || err3 != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	_, familyID, ok := requireFamily(ctx, b, callback, h)
	if !ok {
		return
	}

	inst, err := h.ScheduleService.ToggleCompletion(ctx, scheduleID, instanceID)
	if err != nil {
		h.Logger.Error("Failed to toggle instance",
			zap.Error(err),
			zap.Int64("schedule_id", scheduleID),
			zap.Int64("instance_id", instanceID))
		if errors.Is(err, model.ErrNotFound) {
			common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Событие не найдено")
		} else {
			common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось сохранить, попробуйте ещё раз")
		}
		return
	}

	text, keyboard, err := dayScreen(ctx, h, familyID, date)
	if err != nil {
		h.Logger.Error("Failed to rebuild day view", zap.Error(err))
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})

	if inst.IsCompleted {
		common.AnswerCallback(ctx, b, callback.ID, "✅ Выполнено")
	} else {
		common.AnswerCallback(ctx, b, callback.ID, "⬜️ Снова в плане")
	}
}

// HandleDayImage отправляет карточку дня картинкой
// Формат: day_image:2026-08-31
func HandleDayImage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
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

	_, familyID, ok := requireFamily(ctx, b, callback, h)
	if !ok {
		return
	}

	items, err := collectDayItems(ctx, h, familyID, date)
	if err != nil {
		h.Logger.Error("Failed to collect day items", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось построить карточку")
		return
	}
	if len(items) == 0 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "На этот день ничего не запланировано")
		return
	}

	imageData, err := common.GenerateDayImage(date, items)
	if err != nil {
		h.Logger.Error("Failed to generate day image", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось построить карточку")
		return
	}

	b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: callback.From.ID,
		Photo: &models.InputFileUpload{
			Filename: "day_" + date.Format("2006-01-02") + ".png",
			Data:     bytes.NewReader(imageData),
		},
		Caption: "🗓 " + formatting.FormatDateWithWeekday(date),
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleViewSchedule показывает карточку определения расписания
// Формат: view_schedule:123
func HandleViewSchedule(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	scheduleID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	_, familyID, ok := requireFamily(ctx, b, callback, h)
	if !ok {
		return
	}

	result, err := h.ScheduleService.Info(ctx, scheduleID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Расписание не найдено")
		return
	}

	dog, err := h.DogService.GetByID(ctx, result.Schedule.DogID, familyID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Расписание не найдено")
		return
	}

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "✏️ Описание", CallbackData: fmt.Sprintf("edit_sched_desc:%d", scheduleID)},
				{Text: "🗑 Удалить", CallbackData: fmt.Sprintf("delete_schedule:%d", scheduleID)},
			},
			{{Text: "◀️ К списку дня", CallbackData: "sched_day:" + result.Schedule.Date.Format("2006-01-02")}},
		},
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        formatting.FormatScheduleInfo(result.Schedule, dog),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleEditDescription начинает диалог правки описания расписания
// Формат: edit_sched_desc:123
func HandleEditDescription(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	scheduleID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	telegramID := callback.From.ID
	h.StateManager.SetData(telegramID, "edit_schedule_id", scheduleID)
	h.StateManager.SetState(telegramID, StateEditingDescription)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: telegramID,
		Text:   "✏️ Введите новое описание (до 200 символов, или /cancel):",
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleDeleteSchedule спрашивает подтверждение удаления
// Формат: delete_schedule:123
func HandleDeleteSchedule(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	scheduleID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "🗑 Да, удалить", CallbackData: fmt.Sprintf("confirm_delete_schedule:%d", scheduleID)},
				{Text: "◀️ Нет", CallbackData: fmt.Sprintf("view_schedule:%d", scheduleID)},
			},
		},
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        "⚠️ Удалить расписание вместе со всеми его событиями?\n\nЭто действие необратимо.",
		ReplyMarkup: keyboard,
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleConfirmDeleteSchedule удаляет расписание окончательно
// Формат: confirm_delete_schedule:123
func HandleConfirmDeleteSchedule(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	scheduleID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	if err := h.ScheduleService.Delete(ctx, scheduleID); err != nil {
		h.Logger.Error("Failed to delete schedule", zap.Error(err), zap.Int64("schedule_id", scheduleID))
		if errors.Is(err, model.ErrNotFound) {
			common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Расписание уже удалено")
		} else {
			common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось удалить, попробуйте ещё раз")
		}
		return
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      "🗑 Расписание удалено",
		ReplyMarkup: &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{{Text: "📅 Сегодня", CallbackData: "sched_day:" + time.Now().Format("2006-01-02")}},
			},
		},
	})
	common.AnswerCallbackAlert(ctx, b, callback.ID, "✅ Удалено")
}

// dayScreen собирает текст и клавиатуру экрана дня
func dayScreen(ctx context.Context, h *callbacktypes.Handler, familyID int64, date time.Time) (string, *models.InlineKeyboardMarkup, error) {
	aggregates, err := h.ScheduleService.ListForFamilyOnDate(ctx, familyID, date)
	if err != nil {
		return "", nil, err
	}

	dogs, err := h.DogService.List(ctx, familyID)
	if err != nil {
		return "", nil, err
	}
	dogByID := make(map[int64]*model.Dog, len(dogs))
	for _, dog := range dogs {
		dogByID[dog.ID] = dog
	}

	dateStr := date.Format("2006-01-02")

	var sb strings.Builder
	fmt.Fprintf(&sb, "🗓 <b>%s</b>\n\n", formatting.FormatDateWithWeekday(date))

	var rows [][]models.InlineKeyboardButton

	if len(aggregates) == 0 {
		sb.WriteString("На этот день ничего не запланировано 🐾")
	} else {
		for _, agg := range aggregates {
			dog := dogByID[agg.Schedule.DogID]
			dogName := "?"
			if dog != nil {
				dogName = dog.Name
			}
			meta := agg.Schedule.Type.Meta()
			fmt.Fprintf(&sb, "%s <b>%s</b> — %s\n", meta.Icon, meta.Title, dogName)

			for _, inst := range agg.Instances {
				rows = append(rows, []models.InlineKeyboardButton{
					{
						Text:         formatting.FormatInstanceLine(agg.Schedule, inst),
						CallbackData: fmt.Sprintf("toggle_instance:%d:%d:%s", agg.Schedule.ID, inst.ID, dateStr),
					},
					{
						Text:         "ℹ️",
						CallbackData: fmt.Sprintf("view_schedule:%d", agg.Schedule.ID),
					},
				})
			}
		}
		sb.WriteString("\nНажмите на событие, чтобы отметить выполнение")
	}

	prev := date.AddDate(0, 0, -1).Format("2006-01-02")
	next := date.AddDate(0, 0, 1).Format("2006-01-02")

	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "➕ Добавить", CallbackData: "sched_create:" + dateStr},
		{Text: "🖼 Карточка", CallbackData: "day_image:" + dateStr},
	})
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "◀️ " + prev[8:], CallbackData: "sched_day:" + prev},
		{Text: "🏠 Меню", CallbackData: "main_menu"},
		{Text: next[8:] + " ▶️", CallbackData: "sched_day:" + next},
	})

	return sb.String(), &models.InlineKeyboardMarkup{InlineKeyboard: rows}, nil
}

// collectDayItems собирает экземпляры дня для карточки-картинки
func collectDayItems(ctx context.Context, h *callbacktypes.Handler, familyID int64, date time.Time) ([]common.DayItem, error) {
	aggregates, err := h.ScheduleService.ListForFamilyOnDate(ctx, familyID, date)
	if err != nil {
		return nil, err
	}

	dogs, err := h.DogService.List(ctx, familyID)
	if err != nil {
		return nil, err
	}
	dogByID := make(map[int64]*model.Dog, len(dogs))
	for _, dog := range dogs {
		dogByID[dog.ID] = dog
	}

	var items []common.DayItem
	for _, agg := range aggregates {
		dog := dogByID[agg.Schedule.DogID]
		if dog == nil {
			continue
		}
		for _, inst := range agg.Instances {
			items = append(items, common.DayItem{
				Schedule: agg.Schedule,
				Dog:      dog,
				Instance: inst,
			})
		}
	}
	return items, nil
}
