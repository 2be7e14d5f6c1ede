package family

import (
	"context"
	"fmt"
	"strings"

	"github.com/Antoshhka/dogcare_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Antoshhka/dogcare_bot/internal/controller/callbacks/common"
	"github.com/Antoshhka/dogcare_bot/internal/controller/callbacks/common/formatting"
	"github.com/Antoshhka/dogcare_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Состояние диалога присоединения, должно совпадать с state.UserState
const (
	StateEnteringInviteCode callbacktypes.UserState = "entering_invite_code"
)

// HandleFamilyInfo показывает состав семьи
func HandleFamilyInfo(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
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

	text, keyboard := FamilyScreen(ctx, h, user)

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// FamilyScreen собирает экран семьи. Используется и командой /family.
func FamilyScreen(ctx context.Context, h *callbacktypes.Handler, user *model.User) (string, *models.InlineKeyboardMarkup) {
	if user.FamilyID == nil {
		keyboard := &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{{Text: "🔑 Присоединиться по коду", CallbackData: "family_join"}},
				{{Text: "🏠 Меню", CallbackData: "main_menu"}},
			},
		}
		return "👨‍👩‍👧 У вас пока нет семьи.\n\nСемья появится автоматически, когда вы добавите собаку (/adddog), либо присоединитесь к существующей по коду приглашения.", keyboard
	}

	members, err := h.FamilyService.Members(ctx, *user.FamilyID)
	if err != nil {
		h.Logger.Error("Failed to get family members", zap.Error(err))
		return "❌ Не удалось загрузить семью, попробуйте ещё раз", nil
	}

	var sb strings.Builder
	sb.WriteString("👨‍👩‍👧 <b>Ваша семья</b>\n\n")
	for i, member := range members {
		name := member.FirstName
		if member.Username != "" {
			name += " (@" + member.Username + ")"
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, name)
	}

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "🎟 Создать код приглашения", CallbackData: "family_invite"}},
			{{Text: "🔑 Присоединиться к другой семье", CallbackData: "family_join"}},
			{{Text: "🏠 Меню", CallbackData: "main_menu"}},
		},
	}

	return sb.String(), keyboard
}

// HandleFamilyInvite выпускает код приглашения
func HandleFamilyInvite(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	user, err := h.UserService.GetByTelegramID(ctx, callback.From.ID)
	if err != nil || user == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Пользователь не найден, нажмите /start")
		return
	}
	if user.FamilyID == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Сначала добавьте собаку: /adddog")
		return
	}

	code, err := h.FamilyService.CreateInviteCode(ctx, *user.FamilyID)
	if err != nil {
		h.Logger.Error("Failed to create invite code", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось создать код, попробуйте ещё раз")
		return
	}

	text := fmt.Sprintf(
		"🎟 Код приглашения в семью:\n\n<code>%s</code>\n\n"+
			"Отправьте его члену семьи — он введёт код через /joinfamily.\n"+
			"Код действует до %s.",
		code.Code,
		formatting.FormatDateTime(*code.ExpiresAt),
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    callback.From.ID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	common.AnswerCallback(ctx, b, callback.ID, "✅ Код создан")
}

// HandleFamilyJoin начинает диалог ввода кода приглашения
func HandleFamilyJoin(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	telegramID := callback.From.ID

	h.StateManager.ClearState(telegramID)
	h.StateManager.SetState(telegramID, StateEnteringInviteCode)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: telegramID,
		Text:   "🔑 Введите код приглашения:",
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}
