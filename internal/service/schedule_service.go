package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Antoshhka/dogcare_bot/internal/model"
	"github.com/Antoshhka/dogcare_bot/internal/recurrence"
	"github.com/Antoshhka/dogcare_bot/internal/repository"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// instanceStore часть хранилища, отвечающая за экземпляры расписания
type instanceStore interface {
	GetInstanceByID(ctx context.Context, scheduleID, instanceID int64) (*model.ScheduleInstance, error)
	UpdateInstanceCompletion(ctx context.Context, instanceID int64, isCompleted bool, completionTime *time.Time) (int64, error)
}

// ScheduleService владеет определениями расписаний и их экземплярами:
// создание, частичное обновление, переключение выполнения, удаление.
// Никаких повторных попыток: каждая мутация либо проходит, либо
// возвращает различимую ошибку.
type ScheduleService struct {
	scheduleRepo *repository.ScheduleRepository
	instances    instanceStore
	dogRepo      *repository.DogRepository
	logger       *zap.Logger
	now          func() time.Time // подменяется в тестах
}

func NewScheduleService(
	scheduleRepo *repository.ScheduleRepository,
	dogRepo *repository.DogRepository,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		instances:    scheduleRepo,
		dogRepo:      dogRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// ScheduleWithInstances агрегат: определение плюс его экземпляры
type ScheduleWithInstances struct {
	Schedule  *model.Schedule
	Instances []*model.ScheduleInstance
}

// ScheduleUpdate частичное обновление определения.
// nil-поле означает "не менять". Собака не обновляется никогда.
type ScheduleUpdate struct {
	Type         *model.ScheduleType
	Date         *time.Time
	Description  *string
	Repeat       *model.Repeat
	WithTimes    *bool
	Times        []model.TimeSlot // nil = не менять
	Notification *model.Notification
}

// Create валидирует определение через экспандер и сохраняет его
// вместе с экземплярами. Ошибки валидации до базы не доходят.
func (s *ScheduleService) Create(ctx context.Context, schedule *model.Schedule) (*ScheduleWithInstances, error) {
	dog, err := s.dogRepo.GetByID(ctx, schedule.DogID)
	if err != nil {
		return nil, fmt.Errorf("%w: get dog: %v", model.ErrStorage, err)
	}
	if dog == nil {
		return nil, fmt.Errorf("%w: dog %d", model.ErrNotFound, schedule.DogID)
	}

	instances, err := recurrence.Expand(schedule)
	if err != nil {
		return nil, err
	}

	if err := s.scheduleRepo.Create(ctx, schedule, instances); err != nil {
		return nil, fmt.Errorf("%w: create schedule: %v", model.ErrStorage, err)
	}

	s.logger.Info("Schedule created",
		zap.Int64("schedule_id", schedule.ID),
		zap.Int64("dog_id", schedule.DogID),
		zap.String("type", string(schedule.Type)),
		zap.String("repeat", string(schedule.Repeat.Type)),
		zap.Int("instances", len(instances)),
	)

	return &ScheduleWithInstances{Schedule: schedule, Instances: instances}, nil
}

// Update сливает частичное обновление с существующим определением.
// Если менялись тип, повторение или времена, экземпляры пересоздаются
// (их статусы выполнения при этом сбрасываются).
func (s *ScheduleService) Update(ctx context.Context, scheduleID int64, upd ScheduleUpdate) (*ScheduleWithInstances, error) {
	existing, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("%w: get schedule: %v", model.ErrStorage, err)
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: schedule %d", model.ErrNotFound, scheduleID)
	}

	merged, reexpand, err := applyUpdate(existing, upd)
	if err != nil {
		return nil, err
	}

	var instances []*model.ScheduleInstance
	if reexpand {
		instances, err = recurrence.Expand(merged)
		if err != nil {
			return nil, err
		}
	}

	if err := s.scheduleRepo.Update(ctx, merged, instances); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: schedule %d", model.ErrNotFound, scheduleID)
		}
		return nil, fmt.Errorf("%w: update schedule: %v", model.ErrStorage, err)
	}

	if instances == nil {
		instances, err = s.scheduleRepo.GetInstances(ctx, scheduleID)
		if err != nil {
			return nil, fmt.Errorf("%w: get instances: %v", model.ErrStorage, err)
		}
	}

	s.logger.Info("Schedule updated",
		zap.Int64("schedule_id", scheduleID),
		zap.Bool("reexpanded", reexpand),
	)

	return &ScheduleWithInstances{Schedule: merged, Instances: instances}, nil
}

// applyUpdate сливает частичное обновление с определением, не трогая оригинал.
// Возвращает новое определение и признак необходимости пересоздать экземпляры.
func applyUpdate(existing *model.Schedule, upd ScheduleUpdate) (*model.Schedule, bool, error) {
	typ := existing.Type
	date := existing.Date
	description := existing.Description
	repeat := existing.Repeat
	withTimes := existing.WithTimes
	times := append([]model.TimeSlot(nil), existing.Times...)
	notification := existing.Notification

	reexpand := false

	if upd.Type != nil && *upd.Type != typ {
		typ = *upd.Type
		reexpand = true
	}
	if upd.Date != nil {
		date = *upd.Date
	}
	if upd.Description != nil {
		description = *upd.Description
	}

	if upd.Repeat != nil && *upd.Repeat != repeat {
		repeat = *upd.Repeat
		// Уход с daily делает count бессмысленным
		if repeat.Type != model.RepeatDaily {
			repeat.Count = 0
		}
		if err := repeat.Validate(); err != nil {
			return nil, false, err
		}
		// Если слотов стало больше допустимого, лишние отбрасываются с конца
		if max := recurrence.MaxSlots(repeat); len(times) > max {
			times = times[:max]
		}
		reexpand = true
	}

	if upd.Times != nil {
		times = append([]model.TimeSlot(nil), upd.Times...)
		reexpand = true
	}

	if upd.WithTimes != nil && *upd.WithTimes != withTimes {
		withTimes = *upd.WithTimes
		// Отключение выбора времени сбрасывает времена и уведомление
		if !withTimes {
			times = nil
			notification.Enabled = false
		}
		reexpand = true
	}

	if upd.Notification != nil {
		notification = *upd.Notification
		if !withTimes {
			notification.Enabled = false
		}
	}

	merged, err := model.NewSchedule(existing.DogID, typ, date, description, repeat, withTimes, times, notification)
	if err != nil {
		return nil, false, err
	}

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt
	merged.UpdatedAt = existing.UpdatedAt

	return merged, reexpand, nil
}

// ToggleCompletion переключает выполнение ровно одного экземпляра.
// При переходе в "выполнено" фиксируется момент, при обратном — сбрасывается.
func (s *ScheduleService) ToggleCompletion(ctx context.Context, scheduleID, instanceID int64) (*model.ScheduleInstance, error) {
	inst, err := s.instances.GetInstanceByID(ctx, scheduleID, instanceID)
	if err != nil {
		return nil, fmt.Errorf("%w: get instance: %v", model.ErrStorage, err)
	}
	if inst == nil {
		return nil, fmt.Errorf("%w: instance %d of schedule %d", model.ErrNotFound, instanceID, scheduleID)
	}

	inst.IsCompleted = !inst.IsCompleted
	if inst.IsCompleted {
		t := s.now()
		inst.CompletionTime = &t
	} else {
		inst.CompletionTime = nil
	}

	affected, err := s.instances.UpdateInstanceCompletion(ctx, inst.ID, inst.IsCompleted, inst.CompletionTime)
	if err != nil {
		return nil, fmt.Errorf("%w: update completion: %v", model.ErrStorage, err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: instance %d", model.ErrNotFound, instanceID)
	}

	s.logger.Info("Instance completion toggled",
		zap.Int64("schedule_id", scheduleID),
		zap.Int64("instance_id", instanceID),
		zap.Bool("is_completed", inst.IsCompleted),
	)

	return inst, nil
}

// Delete удаляет определение вместе со всеми экземплярами. Необратимо.
func (s *ScheduleService) Delete(ctx context.Context, scheduleID int64) error {
	affected, err := s.scheduleRepo.Delete(ctx, scheduleID)
	if err != nil {
		return fmt.Errorf("%w: delete schedule: %v", model.ErrStorage, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: schedule %d", model.ErrNotFound, scheduleID)
	}

	s.logger.Info("Schedule deleted", zap.Int64("schedule_id", scheduleID))
	return nil
}

// Info возвращает агрегат по ID
func (s *ScheduleService) Info(ctx context.Context, scheduleID int64) (*ScheduleWithInstances, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("%w: get schedule: %v", model.ErrStorage, err)
	}
	if schedule == nil {
		return nil, fmt.Errorf("%w: schedule %d", model.ErrNotFound, scheduleID)
	}

	instances, err := s.scheduleRepo.GetInstances(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("%w: get instances: %v", model.ErrStorage, err)
	}

	return &ScheduleWithInstances{Schedule: schedule, Instances: instances}, nil
}

// ListForFamilyOnDate возвращает агрегаты, активные в указанный день,
// по всем собакам семьи
func (s *ScheduleService) ListForFamilyOnDate(ctx context.Context, familyID int64, day time.Time) ([]*ScheduleWithInstances, error) {
	schedules, err := s.scheduleRepo.GetByFamilyID(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("%w: list schedules: %v", model.ErrStorage, err)
	}

	var result []*ScheduleWithInstances
	for _, schedule := range schedules {
		occurs, err := recurrence.OccursOn(schedule, day)
		if err != nil {
			return nil, err
		}
		if !occurs {
			continue
		}

		instances, err := s.scheduleRepo.GetInstances(ctx, schedule.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: get instances: %v", model.ErrStorage, err)
		}

		result = append(result, &ScheduleWithInstances{Schedule: schedule, Instances: instances})
	}

	return result, nil
}
