package handlers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Antoshhka/dogcare_bot/internal/controller/callbacks/schedule"
	"github.com/Antoshhka/dogcare_bot/internal/controller/state"
	"github.com/Antoshhka/dogcare_bot/internal/model"
	"github.com/Antoshhka/dogcare_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

var timeOfDayRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	switch currentState {
	case state.StateEnteringDogName:
		h.handleDogNameInput(ctx, b, update)
	case state.StateEnteringDogBreed:
		h.handleDogBreedInput(ctx, b, update)
	case state.StateEnteringDogBirthDate:
		h.handleDogBirthDateInput(ctx, b, update)
	case state.StateEnteringInviteCode:
		h.handleInviteCodeInput(ctx, b, update)
	case state.StateEnteringDescription:
		h.handleDescriptionInput(ctx, b, update)
	case state.StateEnteringCustomTime:
		h.handleCustomTimeInput(ctx, b, update)
	case state.StateEditingScheduleDescription:
		h.handleEditDescriptionInput(ctx, b, update)
	}
}

// handleDogNameInput первый шаг регистрации собаки
func (h *Handlers) handleDogNameInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	name := strings.TrimSpace(update.Message.Text)

	if name == "" || len(name) > 50 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Имя должно быть от 1 до 50 символов. Попробуйте ещё раз:",
		})
		return
	}

	h.stateManager.SetData(telegramID, "dog_name", name)
	h.stateManager.SetState(telegramID, state.StateEnteringDogBreed)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "🐾 Какая порода? (или «-», если без породы)",
	})
}

// handleDogBreedInput второй шаг: порода, дальше выбор пола кнопками
func (h *Handlers) handleDogBreedInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	breed := strings.TrimSpace(update.Message.Text)
	if breed == "-" {
		breed = ""
	}

	h.stateManager.SetData(telegramID, "dog_breed", breed)
	h.stateManager.SetState(telegramID, state.StateEnteringDogGender)

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "♂️ Мальчик", CallbackData: "dog_gender:male"},
				{Text: "♀️ Девочка", CallbackData: "dog_gender:female"},
			},
		},
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        "Мальчик или девочка?",
		ReplyMarkup: keyboard,
	})
}

// handleDogBirthDateInput последний шаг: дата рождения и сохранение
func (h *Handlers) handleDogBirthDateInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	input := strings.TrimSpace(update.Message.Text)

	var birthDate *time.Time
	if input != "-" {
		parsed, err := time.Parse("02.01.2006", input)
		if err != nil {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "❌ Не понял дату. Формат ДД.ММ.ГГГГ, например 15.03.2023 (или «-», чтобы пропустить):",
			})
			return
		}
		birthDate = &parsed
	}

	nameRaw, _ := h.stateManager.GetData(telegramID, "dog_name")
	breedRaw, _ := h.stateManager.GetData(telegramID, "dog_breed")
	genderRaw, _ := h.stateManager.GetData(telegramID, "dog_gender")

	name, _ := nameRaw.(string)
	breed, _ := breedRaw.(string)
	gender, _ := genderRaw.(string)

	if name == "" || gender == "" {
		h.stateManager.ClearState(telegramID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Диалог сбился, начните заново: /adddog",
		})
		return
	}

	user, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil || user == nil {
		h.stateManager.ClearState(telegramID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Пользователь не найден, нажмите /start",
		})
		return
	}

	dog, err := h.dogService.Register(ctx, user, name, breed, model.DogGender(gender), birthDate)
	if err != nil {
		h.logger.Error("Failed to register dog", zap.Error(err))
		h.stateManager.ClearState(telegramID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Не удалось сохранить собаку, попробуйте ещё раз: /adddog",
		})
		return
	}

	h.stateManager.ClearState(telegramID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: "✅ " + dog.Name + " в семье!\n\n" +
			"Теперь можно планировать: /today",
	})
}

// handleInviteCodeInput присоединение к семье по коду
func (h *Handlers) handleInviteCodeInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	user, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil || user == nil {
		h.stateManager.ClearState(telegramID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Пользователь не найден, нажмите /start",
		})
		return
	}

	family, err := h.familyService.JoinByCode(ctx, user, update.Message.Text)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "❌ Код не найден или истёк. Проверьте и введите ещё раз (или /cancel):",
			})
		case errors.Is(err, model.ErrValidation):
			h.stateManager.ClearState(telegramID)
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "ℹ️ Вы уже состоите в этой семье",
			})
		default:
			h.logger.Error("Failed to join family", zap.Error(err))
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "❌ Не удалось присоединиться, попробуйте ещё раз (или /cancel):",
			})
		}
		return
	}

	h.stateManager.ClearState(telegramID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "✅ Добро пожаловать в семью «" + family.Name + "»!\n\nРасписания семьи: /today",
	})
}

// handleDescriptionInput описание события в мастере
func (h *Handlers) handleDescriptionInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	f := h.stateManager.GetFlow(telegramID)
	if f == nil {
		h.stateManager.ClearState(telegramID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Мастер не активен",
		})
		return
	}

	description := strings.TrimSpace(update.Message.Text)
	if len(description) > 200 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Слишком длинно, до 200 символов. Попробуйте ещё раз:",
		})
		return
	}

	if err := f.SetDescription(description); err != nil {
		h.stateManager.SetState(telegramID, state.StateNone)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Мастер не на том шаге, вернитесь к нему",
		})
		return
	}

	h.stateManager.SetState(telegramID, state.StateNone)
	schedule.RenderDetails(ctx, b, chatID, h.cb, telegramID)
}

// handleEditDescriptionInput новое описание существующего расписания
func (h *Handlers) handleEditDescriptionInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	idRaw, ok := h.stateManager.GetData(telegramID, "edit_schedule_id")
	scheduleID, _ := idRaw.(int64)
	if !ok || scheduleID == 0 {
		h.stateManager.ClearState(telegramID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Диалог сбился, откройте расписание заново",
		})
		return
	}

	description := strings.TrimSpace(update.Message.Text)
	if description == "" || len(description) > 200 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Описание должно быть от 1 до 200 символов. Попробуйте ещё раз:",
		})
		return
	}

	_, err := h.scheduleService.Update(ctx, scheduleID, service.ScheduleUpdate{Description: &description})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			h.stateManager.ClearState(telegramID)
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "❌ Расписание не найдено, возможно его уже удалили",
			})
			return
		}
		h.logger.Error("Failed to update schedule description", zap.Error(err), zap.Int64("schedule_id", scheduleID))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Не удалось сохранить, попробуйте ещё раз (или /cancel):",
		})
		return
	}

	h.stateManager.ClearState(telegramID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "✅ Описание обновлено",
		ReplyMarkup: &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{{Text: "ℹ️ К расписанию", CallbackData: fmt.Sprintf("view_schedule:%d", scheduleID)}},
			},
		},
	})
}

// handleCustomTimeInput своё время в мастере, формат ЧЧ:ММ
func (h *Handlers) handleCustomTimeInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	f := h.stateManager.GetFlow(telegramID)
	if f == nil {
		h.stateManager.ClearState(telegramID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Мастер не активен",
		})
		return
	}

	matches := timeOfDayRe.FindStringSubmatch(strings.TrimSpace(update.Message.Text))
	if matches == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Формат ЧЧ:ММ, например 08:30. Попробуйте ещё раз:",
		})
		return
	}

	hour, _ := strconv.Atoi(matches[1])
	minute, _ := strconv.Atoi(matches[2])

	if err := f.AddTime(model.TimeSlot{Hour: hour, Minute: minute}); err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Не получилось добавить время. Проверьте границы (00:00–23:59) и число слотов.",
		})
		return
	}

	h.stateManager.SetState(telegramID, state.StateNone)
	schedule.RenderDetails(ctx, b, chatID, h.cb, telegramID)
}
