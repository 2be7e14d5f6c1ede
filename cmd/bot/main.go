package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Antoshhka/dogcare_bot/internal/app"
	"github.com/Antoshhka/dogcare_bot/internal/config"
	"github.com/Antoshhka/dogcare_bot/internal/controller"
	"github.com/Antoshhka/dogcare_bot/internal/repository"
	"github.com/Antoshhka/dogcare_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting dogcare bot",
		zap.String("environment", cfg.Environment))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// База данных
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	// Миграции
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	migrator.Close()

	// Репозитории
	userRepo := repository.NewUserRepository(pool, logger)
	familyRepo := repository.NewFamilyRepository(pool, logger)
	inviteCodeRepo := repository.NewInviteCodeRepository(pool, logger)
	dogRepo := repository.NewDogRepository(pool, logger)
	scheduleRepo := repository.NewScheduleRepository(pool, logger)

	// Сервисы
	userService := service.NewUserService(userRepo, logger)
	familyService := service.NewFamilyService(familyRepo, userRepo, inviteCodeRepo, logger)
	dogService := service.NewDogService(dogRepo, familyService, logger)
	scheduleService := service.NewScheduleService(scheduleRepo, dogRepo, logger)

	// Telegram bot
	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(
		b,
		userService,
		familyService,
		dogService,
		scheduleService,
		logger,
	)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	// Фоновые напоминания
	reminder := app.NewReminder(scheduleRepo, dogRepo, userRepo, b, logger)
	reminder.Start(ctx)
	defer reminder.Stop()

	logger.Info("🐕 Bot is running")
	if err := botController.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot shut down")
}
