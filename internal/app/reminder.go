package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Antoshhka/dogcare_bot/internal/model"
	"github.com/Antoshhka/dogcare_bot/internal/recurrence"
	"github.com/Antoshhka/dogcare_bot/internal/repository"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

const reminderTickInterval = time.Minute

// Reminder фоновый воркер напоминаний: раз в минуту проверяет
// расписания с включённым уведомлением и рассылает сообщения
// членам семьи за notification_minutes до события.
type Reminder struct {
	scheduleRepo *repository.ScheduleRepository
	dogRepo      *repository.DogRepository
	userRepo     *repository.UserRepository
	bot          *bot.Bot
	logger       *zap.Logger
	stopChan     chan struct{}

	// ключ scheduleID:slotIndex:дата, чтобы не напоминать дважды
	sent map[string]time.Time
}

// NewReminder создаёт новый воркер напоминаний
func NewReminder(
	scheduleRepo *repository.ScheduleRepository,
	dogRepo *repository.DogRepository,
	userRepo *repository.UserRepository,
	botInstance *bot.Bot,
	logger *zap.Logger,
) *Reminder {
	return &Reminder{
		scheduleRepo: scheduleRepo,
		dogRepo:      dogRepo,
		userRepo:     userRepo,
		bot:          botInstance,
		logger:       logger,
		stopChan:     make(chan struct{}),
		sent:         make(map[string]time.Time),
	}
}

// Start запускает фоновую рассылку
func (r *Reminder) Start(ctx context.Context) {
	r.logger.Info("Starting reminder worker")
	go r.run(ctx)
}

// Stop останавливает фоновую рассылку
func (r *Reminder) Stop() {
	r.logger.Info("Stopping reminder worker")
	close(r.stopChan)
}

func (r *Reminder) run(ctx context.Context) {
	ticker := time.NewTicker(reminderTickInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			r.tick(ctx, now)
		case <-r.stopChan:
			r.logger.Info("Reminder worker stopped")
			return
		case <-ctx.Done():
			r.logger.Info("Reminder worker cancelled")
			return
		}
	}
}

// tick обрабатывает одну минуту: ищет события, до которых осталось
// ровно notification_minutes, и рассылает напоминания
func (r *Reminder) tick(ctx context.Context, now time.Time) {
	schedules, err := r.scheduleRepo.GetNotificationEnabled(ctx)
	if err != nil {
		r.logger.Error("Failed to load notifiable schedules", zap.Error(err))
		return
	}

	r.pruneSent(now)

	for _, schedule := range schedules {
		occurs, err := recurrence.OccursOn(schedule, now)
		if err != nil || !occurs {
			continue
		}

		instances, err := r.scheduleRepo.GetInstances(ctx, schedule.ID)
		if err != nil {
			r.logger.Error("Failed to load instances",
				zap.Error(err),
				zap.Int64("schedule_id", schedule.ID))
			continue
		}

		for _, inst := range instances {
			if inst.ScheduledTime == nil || inst.IsCompleted {
				continue
			}

			eventTime := inst.ScheduledTime.At(now)
			notifyAt := eventTime.Add(-time.Duration(schedule.Notification.MinutesBefore) * time.Minute)

			// Окно в один тик, прошлое не навёрстываем
			if now.Before(notifyAt) || now.Sub(notifyAt) >= reminderTickInterval {
				continue
			}

			key := fmt.Sprintf("%d:%d:%s", schedule.ID, inst.SlotIndex, now.Format("2006-01-02"))
			if _, ok := r.sent[key]; ok {
				continue
			}
			r.sent[key] = now

			r.notify(ctx, schedule, inst, eventTime)
		}
	}
}

// notify рассылает напоминание всем членам семьи собаки
func (r *Reminder) notify(ctx context.Context, schedule *model.Schedule, inst *model.ScheduleInstance, eventTime time.Time) {
	dog, err := r.dogRepo.GetByID(ctx, schedule.DogID)
	if err != nil || dog == nil {
		r.logger.Error("Failed to get dog for reminder",
			zap.Error(err),
			zap.Int64("dog_id", schedule.DogID))
		return
	}

	members, err := r.userRepo.GetByFamilyID(ctx, dog.FamilyID)
	if err != nil {
		r.logger.Error("Failed to get family members for reminder",
			zap.Error(err),
			zap.Int64("family_id", dog.FamilyID))
		return
	}

	meta := schedule.Type.Meta()
	text := fmt.Sprintf("🔔 %s %s — %s в %s\n%s",
		meta.Icon, meta.Title, dog.Name, eventTime.Format("15:04"), schedule.Description)

	for _, member := range members {
		_, err := r.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: member.TelegramID,
			Text:   text,
		})
		if err != nil {
			r.logger.Warn("Failed to send reminder",
				zap.Error(err),
				zap.Int64("telegram_id", member.TelegramID))
		}
	}

	r.logger.Info("Reminder sent",
		zap.Int64("schedule_id", schedule.ID),
		zap.Int("slot_index", inst.SlotIndex),
		zap.Int("recipients", len(members)))
}

// pruneSent выбрасывает вчерашние ключи
func (r *Reminder) pruneSent(now time.Time) {
	for key, at := range r.sent {
		if now.Sub(at) > 24*time.Hour {
			delete(r.sent, key)
		}
	}
}
