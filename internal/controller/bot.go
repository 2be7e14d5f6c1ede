package controller

import (
	"context"

	"github.com/Antoshhka/dogcare_bot/internal/controller/callbacks"
	"github.com/Antoshhka/dogcare_bot/internal/controller/handlers"
	"github.com/Antoshhka/dogcare_bot/internal/controller/state"
	"github.com/Antoshhka/dogcare_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	userService *service.UserService,
	familyService *service.FamilyService,
	dogService *service.DogService,
	scheduleService *service.ScheduleService,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний
	stateManager := state.NewManager()

	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(
		userService,
		familyService,
		dogService,
		scheduleService,
		stateManager,
		logger,
	)

	// Создаём адаптер для callback handlers
	stateAdapter := state.NewAdapter(stateManager)

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(
		userService,
		familyService,
		dogService,
		scheduleService,
		stateAdapter,
		logger,
		cmdHandlers.HandleMainMenu,
	)

	// Командам тоже нужны общие зависимости экранов
	cmdHandlers.SetCallbackHandler(callbackHandler.Handler)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Регистрируем команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/menu", bot.MatchTypeExact, c.handlers.HandleMainMenu)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/today", bot.MatchTypeExact, c.handlers.HandleToday)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/schedules", bot.MatchTypeExact, c.handlers.HandleToday)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mydogs", bot.MatchTypeExact, c.handlers.HandleMyDogs)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/adddog", bot.MatchTypeExact, c.handlers.HandleAddDog)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/family", bot.MatchTypeExact, c.handlers.HandleFamily)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/invite", bot.MatchTypeExact, c.handlers.HandleInvite)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/joinfamily", bot.MatchTypeExact, c.handlers.HandleJoinFamily)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "today", Description: "📅 Расписание на сегодня"},
		{Command: "mydogs", Description: "🐕 Мои собаки"},
		{Command: "adddog", Description: "➕ Добавить собаку"},
		{Command: "family", Description: "👨‍👩‍👧 Моя семья"},
		{Command: "invite", Description: "🎟 Пригласить в семью"},
		{Command: "joinfamily", Description: "🔑 Присоединиться по коду"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
