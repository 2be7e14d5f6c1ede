package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/Antoshhka/dogcare_bot/internal/controller/callbacks/dogs"
	"github.com/Antoshhka/dogcare_bot/internal/controller/callbacks/family"
	"github.com/Antoshhka/dogcare_bot/internal/controller/callbacks/schedule"
	"github.com/Antoshhka/dogcare_bot/internal/controller/state"
	"github.com/Antoshhka/dogcare_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	from := update.Message.From

	// Регистрируем пользователя
	registeredUser, err := h.userService.GetOrCreate(
		ctx,
		from.ID,
		from.Username,
		from.FirstName,
		from.LastName,
		from.LanguageCode,
	)
	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Произошла ошибка при регистрации. Попробуйте позже.",
		})
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это бот для ухода за собаками: расписания кормлений, прогулок и "+
			"всего остального — общие на всю семью.\n\n"+
			"Доступные команды:\n"+
			"/today - Расписание на сегодня\n"+
			"/mydogs - Мои собаки\n"+
			"/adddog - Добавить собаку\n"+
			"/family - Моя семья\n"+
			"/invite - Пригласить в семью\n"+
			"/joinfamily - Присоединиться по коду\n"+
			"/help - Справка",
		registeredUser.FirstName,
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   welcomeText,
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"Расписание:\n" +
		"/today - Расписание на сегодня\n" +
		"/schedules - То же самое, со стрелками по дням\n\n" +
		"Собаки:\n" +
		"/mydogs - Список собак семьи\n" +
		"/adddog - Добавить собаку\n\n" +
		"Семья:\n" +
		"/family - Состав семьи\n" +
		"/invite - Создать код приглашения\n" +
		"/joinfamily - Присоединиться по коду\n\n" +
		"/cancel - Отменить текущий диалог"

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone && h.stateManager.GetFlow(telegramID) == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Нет активных операций для отмены.",
		})
		return
	}

	h.stateManager.ClearState(telegramID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.",
	})
}

// HandleMainMenu показывает главное меню.
// Вызывается и командой, и callback "main_menu".
func (h *Handlers) HandleMainMenu(ctx context.Context, b *bot.Bot, update *models.Update) {
	var chatID int64
	switch {
	case update.Message != nil:
		chatID = update.Message.Chat.ID
	case update.CallbackQuery != nil:
		chatID = update.CallbackQuery.From.ID
	default:
		return
	}

	today := time.Now().Format("2006-01-02")
	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "📅 Сегодня", CallbackData: "sched_day:" + today}},
			{{Text: "🐕 Мои собаки", CallbackData: "dogs_list"}},
			{{Text: "👨‍👩‍👧 Семья", CallbackData: "family_info"}},
		},
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "🐾 Что делаем?",
		ReplyMarkup: keyboard,
	})
}

// HandleToday обрабатывает команды /today и /schedules
func (h *Handlers) HandleToday(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, chatID, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	if user.FamilyID == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "🐕 Сначала добавьте собаку: /adddog",
		})
		return
	}

	schedule.SendDay(ctx, b, chatID, h.cb, *user.FamilyID, time.Now())
}

// HandleMyDogs обрабатывает команду /mydogs
func (h *Handlers) HandleMyDogs(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, chatID, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	text, keyboard := dogs.DogsScreen(ctx, h.cb, user)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})
}

// HandleAddDog обрабатывает команду /adddog
func (h *Handlers) HandleAddDog(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	telegramID := update.Message.From.ID

	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateEnteringDogName)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "🐕 Как зовут собаку?",
	})
}

// HandleFamily обрабатывает команду /family
func (h *Handlers) HandleFamily(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, chatID, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	text, keyboard := family.FamilyScreen(ctx, h.cb, user)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})
}

// HandleInvite обрабатывает команду /invite
func (h *Handlers) HandleInvite(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, chatID, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	if user.FamilyID == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "🐕 Сначала добавьте собаку: /adddog",
		})
		return
	}

	code, err := h.familyService.CreateInviteCode(ctx, *user.FamilyID)
	if err != nil {
		h.logger.Error("Failed to create invite code", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Не удалось создать код, попробуйте ещё раз",
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf("🎟 Код приглашения: <code>%s</code>\n\n"+
			"Отправьте его члену семьи — он введёт код через /joinfamily.", code.Code),
		ParseMode: models.ParseModeHTML,
	})
}

// HandleJoinFamily обрабатывает команду /joinfamily
func (h *Handlers) HandleJoinFamily(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	telegramID := update.Message.From.ID

	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateEnteringInviteCode)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "🔑 Введите код приглашения:",
	})
}

// requireUser получает зарегистрированного пользователя из сообщения
func (h *Handlers) requireUser(ctx context.Context, b *bot.Bot, update *models.Update) (*model.User, int64, bool) {
	if update.Message == nil {
		return nil, 0, false
	}
	chatID := update.Message.Chat.ID

	user, err := h.userService.GetByTelegramID(ctx, update.Message.From.ID)
	if err != nil || user == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Пользователь не найден, нажмите /start",
		})
		return nil, 0, false
	}
	return user, chatID, true
}
