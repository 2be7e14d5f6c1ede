package dogs

import (
	"context"
	"errors"
	"fmt"
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

// Состояния диалога регистрации, должны совпадать с state.UserState
const (
	StateEnteringDogName      callbacktypes.UserState = "entering_dog_name"
	StateEnteringDogBirthDate callbacktypes.UserState = "entering_dog_birth_date"
)

// HandleDogsList показывает список собак семьи
func HandleDogsList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	user, err := h.UserService.GetByTelegramID(ctx, callback.From.ID)
	if err != nil || user == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Пользователь не найден, нажмите /start")
		return
	}

	text, keyboard := DogsScreen(ctx, h, user)

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// DogsScreen собирает экран списка собак. Используется и командой /mydogs.
func DogsScreen(ctx context.Context, h *callbacktypes.Handler, user *model.User) (string, *models.InlineKeyboardMarkup) {
	var rows [][]models.InlineKeyboardButton

	if user.FamilyID == nil {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: "➕ Добавить собаку", CallbackData: "add_dog"},
		})
		return "🐕 У вас пока нет собак", &models.InlineKeyboardMarkup{InlineKeyboard: rows}
	}

	dogs, err := h.DogService.List(ctx, *user.FamilyID)
	if err != nil {
		h.Logger.Error("Failed to list dogs", zap.Error(err))
		return "❌ Не удалось загрузить список, попробуйте ещё раз", nil
	}

	text := fmt.Sprintf("🐕 <b>Ваши собаки</b>\n\nВ семье %d %s", len(dogs), formatting.PluralizeDogs(len(dogs)))
	if len(dogs) == 0 {
		text = "🐕 У вас пока нет собак"
	}

	for _, dog := range dogs {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: "🐕 " + dog.Name, CallbackData: fmt.Sprintf("view_dog:%d", dog.ID)},
		})
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "➕ Добавить собаку", CallbackData: "add_dog"},
	})
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "🏠 Меню", CallbackData: "main_menu"},
	})

	return text, &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// HandleViewDog показывает карточку собаки
// Формат: view_dog:123
func HandleViewDog(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	dogID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	user, err := h.UserService.GetByTelegramID(ctx, callback.From.ID)
	if err != nil || user == nil || user.FamilyID == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Пользователь не найден, нажмите /start")
		return
	}

	dog, err := h.DogService.GetByID(ctx, dogID, *user.FamilyID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Собака не найдена")
		return
	}

	genderStr := "♂️ Мальчик"
	if dog.Gender == model.DogGenderFemale {
		genderStr = "♀️ Девочка"
	}

	ageLine := ""
	if dog.BirthDate != nil {
		years := dog.AgeYears(time.Now())
		ageLine = fmt.Sprintf("\n🎂 Возраст: %d %s (%s)", years, formatting.PluralizeYears(years), formatting.FormatDate(*dog.BirthDate))
	}

	breedLine := ""
	if dog.BreedType != "" {
		breedLine = "\n🐾 Порода: " + dog.BreedType
	}

	text := fmt.Sprintf("🐕 <b>%s</b>\n\n%s%s%s", dog.Name, genderStr, breedLine, ageLine)

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "📅 Расписание на сегодня", CallbackData: "sched_day:" + time.Now().Format("2006-01-02")}},
			{{Text: "🗑 Удалить", CallbackData: fmt.Sprintf("delete_dog:%d", dog.ID)}},
			{{Text: "◀️ К списку", CallbackData: "dogs_list"}},
		},
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

// HandleAddDog начинает диалог регистрации собаки
func HandleAddDog(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID

	h.StateManager.ClearState(telegramID)
	h.StateManager.SetState(telegramID, StateEnteringDogName)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: telegramID,
		Text:   "🐕 Как зовут собаку?",
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleDogGender обрабатывает выбор пола в диалоге регистрации
// Формат: dog_gender:male
func HandleDogGender(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID

	parts := strings.Split(callback.Data, ":")
	if len(parts) != 2 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}
	gender := model.DogGender(parts[1])
	if gender != model.DogGenderMale && gender != model.DogGenderFemale {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	if _, ok := h.StateManager.GetData(telegramID, "dog_name"); !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Диалог не активен, начните заново: /adddog")
		return
	}

	h.StateManager.SetData(telegramID, "dog_gender", string(gender))
	h.StateManager.SetState(telegramID, StateEnteringDogBirthDate)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: telegramID,
		Text:   "🎂 Дата рождения в формате ДД.ММ.ГГГГ (или «-», чтобы пропустить):",
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleDeleteDog спрашивает подтверждение удаления собаки
// Формат: delete_dog:123
func HandleDeleteDog(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	dogID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "🗑 Да, удалить", CallbackData: fmt.Sprintf("confirm_delete_dog:%d", dogID)},
				{Text: "◀️ Нет", CallbackData: fmt.Sprintf("view_dog:%d", dogID)},
			},
		},
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        "⚠️ Удалить собаку вместе со всеми её расписаниями?\n\nЭто действие необратимо.",
		ReplyMarkup: keyboard,
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleConfirmDeleteDog удаляет собаку окончательно
// Формат: confirm_delete_dog:123
func HandleConfirmDeleteDog(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	user, err := h.UserService.GetByTelegramID(ctx, callback.From.ID)
	if err != nil || user == nil || user.FamilyID == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Пользователь не найден, нажмите /start")
		return
	}

	dogID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	if err := h.DogService.Delete(ctx, dogID, *user.FamilyID); err != nil {
		h.Logger.Error("Failed to delete dog", zap.Error(err), zap.Int64("dog_id", dogID))
		if errors.Is(err, model.ErrNotFound) {
			common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Собака уже удалена")
		} else {
			common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось удалить, попробуйте ещё раз")
		}
		return
	}

	text, keyboard := DogsScreen(ctx, h, user)
	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})
	common.AnswerCallbackAlert(ctx, b, callback.ID, "✅ Удалено")
}
