package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Antoshhka/dogcare_bot/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ScheduleRepository управляет расписаниями и их экземплярами в базе данных.
// Времена определения не хранятся отдельно: они восстанавливаются из
// экземпляров по slot_index, поэтому порядок ввода сохраняется.
type ScheduleRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewScheduleRepository создаёт новый репозиторий
func NewScheduleRepository(pool *pgxpool.Pool, logger *zap.Logger) *ScheduleRepository {
	return &ScheduleRepository{pool: pool, logger: logger}
}

// Create создаёт расписание вместе с экземплярами в одной транзакции
func (r *ScheduleRepository) Create(ctx context.Context, schedule *model.Schedule, instances []*model.ScheduleInstance) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO schedules (dog_id, type, date, description, repeat_type, repeat_count,
			with_times, notification_enabled, notification_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	var repeatCount *int
	if schedule.Repeat.Type == model.RepeatDaily {
		repeatCount = &schedule.Repeat.Count
	}

	err = tx.QueryRow(
		ctx,
		query,
		schedule.DogID,
		schedule.Type,
		schedule.Date,
		schedule.Description,
		schedule.Repeat.Type,
		repeatCount,
		schedule.WithTimes,
		schedule.Notification.Enabled,
		schedule.Notification.MinutesBefore,
	).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}

	if err := insertInstances(ctx, tx, schedule.ID, instances); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// insertInstances вставляет экземпляры расписания в порядке slot_index
func insertInstances(ctx context.Context, tx pgx.Tx, scheduleID int64, instances []*model.ScheduleInstance) error {
	query := `
		INSERT INTO schedule_instances (schedule_id, slot_index, hour, minute)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	for _, inst := range instances {
		inst.ScheduleID = scheduleID

		var hour, minute *int
		if inst.ScheduledTime != nil {
			hour = &inst.ScheduledTime.Hour
			minute = &inst.ScheduledTime.Minute
		}

		err := tx.QueryRow(ctx, query, scheduleID, inst.SlotIndex, hour, minute).
			Scan(&inst.ID, &inst.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert schedule instance: %w", err)
		}
	}

	return nil
}

// Update обновляет определение расписания и заменяет набор экземпляров.
// dog_id не обновляется: собака неизменяема после создания.
func (r *ScheduleRepository) Update(ctx context.Context, schedule *model.Schedule, instances []*model.ScheduleInstance) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE schedules
		SET type = $2, date = $3, description = $4, repeat_type = $5, repeat_count = $6,
			with_times = $7, notification_enabled = $8, notification_minutes = $9, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	var repeatCount *int
	if schedule.Repeat.Type == model.RepeatDaily {
		repeatCount = &schedule.Repeat.Count
	}

	err = tx.QueryRow(
		ctx,
		query,
		schedule.ID,
		schedule.Type,
		schedule.Date,
		schedule.Description,
		schedule.Repeat.Type,
		repeatCount,
		schedule.WithTimes,
		schedule.Notification.Enabled,
		schedule.Notification.MinutesBefore,
	).Scan(&schedule.UpdatedAt)

	if err == pgx.ErrNoRows {
		return pgx.ErrNoRows
	}
	if err != nil {
		return fmt.Errorf("update schedule: %w", err)
	}

	if instances != nil {
		_, err = tx.Exec(ctx, `DELETE FROM schedule_instances WHERE schedule_id = $1`, schedule.ID)
		if err != nil {
			return fmt.Errorf("delete old schedule instances: %w", err)
		}

		if err := insertInstances(ctx, tx, schedule.ID, instances); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetByID получает расписание по ID вместе с его временами
func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*model.Schedule, error) {
	query := `
		SELECT id, dog_id, type, date, description, repeat_type, repeat_count,
			with_times, notification_enabled, notification_minutes, created_at, updated_at
		FROM schedules
		WHERE id = $1
	`

	schedule, err := scanScheduleRow(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get schedule by id: %w", err)
	}

	if err := r.loadTimes(ctx, schedule); err != nil {
		return nil, err
	}

	return schedule, nil
}

// GetByFamilyID получает все расписания собак семьи
func (r *ScheduleRepository) GetByFamilyID(ctx context.Context, familyID int64) ([]*model.Schedule, error) {
	query := `
		SELECT s.id, s.dog_id, s.type, s.date, s.description, s.repeat_type, s.repeat_count,
			s.with_times, s.notification_enabled, s.notification_minutes, s.created_at, s.updated_at
		FROM schedules s
		JOIN dogs d ON d.id = s.dog_id
		WHERE d.family_id = $1
		ORDER BY s.date, s.id
	`

	rows, err := r.pool.Query(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("get schedules by family: %w", err)
	}
	defer rows.Close()

	var schedules []*model.Schedule
	for rows.Next() {
		schedule, err := scanScheduleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, schedule)
	}

	for _, schedule := range schedules {
		if err := r.loadTimes(ctx, schedule); err != nil {
			return nil, err
		}
	}

	return schedules, nil
}

// GetByDogID получает все расписания собаки
func (r *ScheduleRepository) GetByDogID(ctx context.Context, dogID int64) ([]*model.Schedule, error) {
	query := `
		SELECT id, dog_id, type, date, description, repeat_type, repeat_count,
			with_times, notification_enabled, notification_minutes, created_at, updated_at
		FROM schedules
		WHERE dog_id = $1
		ORDER BY date, id
	`

	rows, err := r.pool.Query(ctx, query, dogID)
	if err != nil {
		return nil, fmt.Errorf("get schedules by dog: %w", err)
	}
	defer rows.Close()

	var schedules []*model.Schedule
	for rows.Next() {
		schedule, err := scanScheduleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, schedule)
	}

	for _, schedule := range schedules {
		if err := r.loadTimes(ctx, schedule); err != nil {
			return nil, err
		}
	}

	return schedules, nil
}

// GetNotificationEnabled получает все расписания с включённым напоминанием.
// Используется фоновым воркером напоминаний.
func (r *ScheduleRepository) GetNotificationEnabled(ctx context.Context) ([]*model.Schedule, error) {
	query := `
		SELECT id, dog_id, type, date, description, repeat_type, repeat_count,
			with_times, notification_enabled, notification_minutes, created_at, updated_at
		FROM schedules
		WHERE notification_enabled = true
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get notifiable schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*model.Schedule
	for rows.Next() {
		schedule, err := scanScheduleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, schedule)
	}

	for _, schedule := range schedules {
		if err := r.loadTimes(ctx, schedule); err != nil {
			return nil, err
		}
	}

	return schedules, nil
}

// GetInstances получает экземпляры расписания в порядке ввода времён
func (r *ScheduleRepository) GetInstances(ctx context.Context, scheduleID int64) ([]*model.ScheduleInstance, error) {
	query := `
		SELECT id, schedule_id, slot_index, hour, minute, is_completed, completion_time, created_at
		FROM schedule_instances
		WHERE schedule_id = $1
		ORDER BY slot_index
	`

	rows, err := r.pool.Query(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("get schedule instances: %w", err)
	}
	defer rows.Close()

	var instances []*model.ScheduleInstance
	for rows.Next() {
		inst, err := scanInstance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule instance: %w", err)
		}
		instances = append(instances, inst)
	}

	return instances, nil
}

// GetInstanceByID получает один экземпляр расписания
func (r *ScheduleRepository) GetInstanceByID(ctx context.Context, scheduleID, instanceID int64) (*model.ScheduleInstance, error) {
	query := `
		SELECT id, schedule_id, slot_index, hour, minute, is_completed, completion_time, created_at
		FROM schedule_instances
		WHERE id = $1 AND schedule_id = $2
	`

	inst, err := scanInstance(r.pool.QueryRow(ctx, query, instanceID, scheduleID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get schedule instance by id: %w", err)
	}

	return inst, nil
}

// UpdateInstanceCompletion записывает статус выполнения экземпляра
func (r *ScheduleRepository) UpdateInstanceCompletion(ctx context.Context, instanceID int64, isCompleted bool, completionTime *time.Time) (int64, error) {
	query := `
		UPDATE schedule_instances
		SET is_completed = $2, completion_time = $3
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, instanceID, isCompleted, completionTime)
	if err != nil {
		return 0, fmt.Errorf("update instance completion: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Delete удаляет расписание, экземпляры удаляются каскадом
func (r *ScheduleRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query := `DELETE FROM schedules WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete schedule: %w", err)
	}

	return tag.RowsAffected(), nil
}

// loadTimes восстанавливает Times определения из экземпляров
func (r *ScheduleRepository) loadTimes(ctx context.Context, schedule *model.Schedule) error {
	if !schedule.WithTimes {
		schedule.Times = nil
		return nil
	}

	query := `
		SELECT hour, minute
		FROM schedule_instances
		WHERE schedule_id = $1 AND hour IS NOT NULL
		ORDER BY slot_index
	`

	rows, err := r.pool.Query(ctx, query, schedule.ID)
	if err != nil {
		return fmt.Errorf("load schedule times: %w", err)
	}
	defer rows.Close()

	var times []model.TimeSlot
	for rows.Next() {
		var ts model.TimeSlot
		if err := rows.Scan(&ts.Hour, &ts.Minute); err != nil {
			return fmt.Errorf("scan schedule time: %w", err)
		}
		times = append(times, ts)
	}

	schedule.Times = times
	return nil
}

// scanScheduleRow разбирает строку расписания
func scanScheduleRow(row pgx.Row) (*model.Schedule, error) {
	schedule := &model.Schedule{}
	var repeatCount *int

	err := row.Scan(
		&schedule.ID,
		&schedule.DogID,
		&schedule.Type,
		&schedule.Date,
		&schedule.Description,
		&schedule.Repeat.Type,
		&repeatCount,
		&schedule.WithTimes,
		&schedule.Notification.Enabled,
		&schedule.Notification.MinutesBefore,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if repeatCount != nil {
		schedule.Repeat.Count = *repeatCount
	}

	return schedule, nil
}

// scanInstance разбирает строку экземпляра
func scanInstance(row pgx.Row) (*model.ScheduleInstance, error) {
	inst := &model.ScheduleInstance{}
	var hour, minute *int

	err := row.Scan(
		&inst.ID,
		&inst.ScheduleID,
		&inst.SlotIndex,
		&hour,
		&minute,
		&inst.IsCompleted,
		&inst.CompletionTime,
		&inst.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if hour != nil && minute != nil {
		inst.ScheduledTime = &model.TimeSlot{Hour: *hour, Minute: *minute}
	}

	return inst, nil
}
