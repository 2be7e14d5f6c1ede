package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Antoshhka/dogcare_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func baseSchedule() *model.Schedule {
	return &model.Schedule{
		ID:          10,
		DogID:       3,
		Type:        model.ScheduleTypeMeal,
		Date:        time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		Description: "Кормление",
		Repeat:      model.Repeat{Type: model.RepeatDaily, Count: 3},
		WithTimes:   true,
		Times: []model.TimeSlot{
			{Hour: 8}, {Hour: 13, Minute: 30}, {Hour: 19},
		},
		Notification: model.Notification{Enabled: true, MinutesBefore: 10},
		CreatedAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
	}
}

func TestApplyUpdate_Empty(t *testing.T) {
	existing := baseSchedule()

	merged, reexpand, err := applyUpdate(existing, ScheduleUpdate{})
	require.NoError(t, err)

	assert.False(t, reexpand)
	assert.Equal(t, existing.ID, merged.ID)
	assert.Equal(t, existing.DogID, merged.DogID)
	assert.Equal(t, existing.Type, merged.Type)
	assert.Equal(t, existing.Description, merged.Description)
	assert.Equal(t, existing.Repeat, merged.Repeat)
	assert.Equal(t, existing.Times, merged.Times)
	assert.Equal(t, existing.Notification, merged.Notification)
	assert.Equal(t, existing.CreatedAt, merged.CreatedAt)
}

func TestApplyUpdate_DoesNotMutateExisting(t *testing.T) {
	existing := baseSchedule()
	newRepeat := model.Repeat{Type: model.RepeatWeekly}

	_, _, err := applyUpdate(existing, ScheduleUpdate{Repeat: &newRepeat})
	require.NoError(t, err)

	// Оригинал не тронут
	assert.Equal(t, model.Repeat{Type: model.RepeatDaily, Count: 3}, existing.Repeat)
	assert.Len(t, existing.Times, 3)
}

func TestApplyUpdate_TypeChangeReexpands(t *testing.T) {
	newType := model.ScheduleTypeWalk

	merged, reexpand, err := applyUpdate(baseSchedule(), ScheduleUpdate{Type: &newType})
	require.NoError(t, err)

	assert.True(t, reexpand)
	assert.Equal(t, model.ScheduleTypeWalk, merged.Type)
}

func TestApplyUpdate_SameTypeNoReexpand(t *testing.T) {
	sameType := model.ScheduleTypeMeal

	_, reexpand, err := applyUpdate(baseSchedule(), ScheduleUpdate{Type: &sameType})
	require.NoError(t, err)
	assert.False(t, reexpand)
}

func TestApplyUpdate_DescriptionOnly(t *testing.T) {
	desc := "Корм для щенков"

	merged, reexpand, err := applyUpdate(baseSchedule(), ScheduleUpdate{Description: &desc})
	require.NoError(t, err)

	assert.False(t, reexpand)
	assert.Equal(t, desc, merged.Description)
}

func TestApplyUpdate_RepeatAwayFromDaily(t *testing.T) {
	// Кратность обнуляется, времена усекаются до одного слота с конца
	newRepeat := model.Repeat{Type: model.RepeatWeekly}

	merged, reexpand, err := applyUpdate(baseSchedule(), ScheduleUpdate{Repeat: &newRepeat})
	require.NoError(t, err)

	assert.True(t, reexpand)
	assert.Equal(t, model.Repeat{Type: model.RepeatWeekly}, merged.Repeat)
	require.Len(t, merged.Times, 1)
	assert.Equal(t, model.TimeSlot{Hour: 8}, merged.Times[0])
}

func TestApplyUpdate_CountReduction(t *testing.T) {
	newRepeat := model.Repeat{Type: model.RepeatDaily, Count: 2}

	merged, reexpand, err := applyUpdate(baseSchedule(), ScheduleUpdate{Repeat: &newRepeat})
	require.NoError(t, err)

	assert.True(t, reexpand)
	require.Len(t, merged.Times, 2)
	assert.Equal(t, model.TimeSlot{Hour: 8}, merged.Times[0])
	assert.Equal(t, model.TimeSlot{Hour: 13, Minute: 30}, merged.Times[1])
}

func TestApplyUpdate_TimesReplacement(t *testing.T) {
	newTimes := []model.TimeSlot{{Hour: 7}, {Hour: 12}, {Hour: 20}}

	merged, reexpand, err := applyUpdate(baseSchedule(), ScheduleUpdate{Times: newTimes})
	require.NoError(t, err)

	assert.True(t, reexpand)
	assert.Equal(t, newTimes, merged.Times)
}

func TestApplyUpdate_DisableWithTimes(t *testing.T) {
	// Отключение выбора времени сбрасывает времена и выключает уведомление
	off := false

	merged, reexpand, err := applyUpdate(baseSchedule(), ScheduleUpdate{WithTimes: &off})
	require.NoError(t, err)

	assert.True(t, reexpand)
	assert.False(t, merged.WithTimes)
	assert.Empty(t, merged.Times)
	assert.False(t, merged.Notification.Enabled)
}

func TestApplyUpdate_NotificationForcedOffWithoutTimes(t *testing.T) {
	off := false
	notif := model.Notification{Enabled: true, MinutesBefore: 30}

	merged, _, err := applyUpdate(baseSchedule(), ScheduleUpdate{
		WithTimes:    &off,
		Notification: &notif,
	})
	require.NoError(t, err)

	assert.False(t, merged.Notification.Enabled)
}

func TestApplyUpdate_NotificationOffsetChange(t *testing.T) {
	notif := model.Notification{Enabled: true, MinutesBefore: 60}

	merged, reexpand, err := applyUpdate(baseSchedule(), ScheduleUpdate{Notification: &notif})
	require.NoError(t, err)

	assert.False(t, reexpand)
	assert.Equal(t, notif, merged.Notification)
}

func TestApplyUpdate_InvalidRepeat(t *testing.T) {
	bad := model.Repeat{Type: model.RepeatDaily, Count: 9}

	_, _, err := applyUpdate(baseSchedule(), ScheduleUpdate{Repeat: &bad})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestApplyUpdate_InvalidTimes(t *testing.T) {
	_, _, err := applyUpdate(baseSchedule(), ScheduleUpdate{
		Times: []model.TimeSlot{{Hour: 8}, {Hour: 26}, {Hour: 19}},
	})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestApplyUpdate_DogNeverChanges(t *testing.T) {
	newType := model.ScheduleTypeHospital
	desc := "Плановый осмотр"

	merged, _, err := applyUpdate(baseSchedule(), ScheduleUpdate{
		Type:        &newType,
		Description: &desc,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), merged.DogID)
}

func TestApplyUpdate_DateChange(t *testing.T) {
	newDate := time.Date(2026, 9, 5, 14, 30, 0, 0, time.UTC)

	merged, reexpand, err := applyUpdate(baseSchedule(), ScheduleUpdate{Date: &newDate})
	require.NoError(t, err)

	// Смена даты экземпляры не пересоздаёт, но день нормализуется
	assert.False(t, reexpand)
	assert.Equal(t, time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), merged.Date)
}

// fakeInstanceStore хранилище экземпляров в памяти для тестов переключения
type fakeInstanceStore struct {
	inst     *model.ScheduleInstance
	affected int64
	getErr   error
	updErr   error
}

func (f *fakeInstanceStore) GetInstanceByID(_ context.Context, _, _ int64) (*model.ScheduleInstance, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.inst == nil {
		return nil, nil
	}
	c := *f.inst
	return &c, nil
}

func (f *fakeInstanceStore) UpdateInstanceCompletion(_ context.Context, _ int64, isCompleted bool, completionTime *time.Time) (int64, error) {
	if f.updErr != nil {
		return 0, f.updErr
	}
	if f.affected == 0 {
		return 0, nil
	}
	f.inst.IsCompleted = isCompleted
	f.inst.CompletionTime = completionTime
	return f.affected, nil
}

var toggleNow = time.Date(2026, 8, 31, 14, 15, 0, 0, time.UTC)

func toggleService(store *fakeInstanceStore) *ScheduleService {
	return &ScheduleService{
		instances: store,
		logger:    zap.NewNop(),
		now:       func() time.Time { return toggleNow },
	}
}

func TestToggleCompletion_SetsCompletionTime(t *testing.T) {
	store := &fakeInstanceStore{
		inst:     &model.ScheduleInstance{ID: 5, ScheduleID: 10, SlotIndex: 1},
		affected: 1,
	}

	inst, err := toggleService(store).ToggleCompletion(context.Background(), 10, 5)
	require.NoError(t, err)

	assert.True(t, inst.IsCompleted)
	require.NotNil(t, inst.CompletionTime)
	assert.Equal(t, toggleNow, *inst.CompletionTime)
}

func TestToggleCompletion_ClearsCompletionTime(t *testing.T) {
	done := toggleNow.Add(-time.Hour)
	store := &fakeInstanceStore{
		inst: &model.ScheduleInstance{
			ID: 5, ScheduleID: 10,
			IsCompleted:    true,
			CompletionTime: &done,
		},
		affected: 1,
	}

	inst, err := toggleService(store).ToggleCompletion(context.Background(), 10, 5)
	require.NoError(t, err)

	assert.False(t, inst.IsCompleted)
	assert.Nil(t, inst.CompletionTime)
}

func TestToggleCompletion_DoubleToggleRoundTrips(t *testing.T) {
	store := &fakeInstanceStore{
		inst:     &model.ScheduleInstance{ID: 5, ScheduleID: 10},
		affected: 1,
	}
	svc := toggleService(store)

	_, err := svc.ToggleCompletion(context.Background(), 10, 5)
	require.NoError(t, err)
	inst, err := svc.ToggleCompletion(context.Background(), 10, 5)
	require.NoError(t, err)

	assert.False(t, inst.IsCompleted)
	assert.Nil(t, inst.CompletionTime)
	// Момент выполнения непустой ровно пока экземпляр выполнен
	assert.False(t, store.inst.IsCompleted)
	assert.Nil(t, store.inst.CompletionTime)
}

func TestToggleCompletion_MissingInstance(t *testing.T) {
	store := &fakeInstanceStore{}

	_, err := toggleService(store).ToggleCompletion(context.Background(), 10, 5)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestToggleCompletion_NoRowsAffected(t *testing.T) {
	store := &fakeInstanceStore{
		inst: &model.ScheduleInstance{ID: 5, ScheduleID: 10},
	}

	_, err := toggleService(store).ToggleCompletion(context.Background(), 10, 5)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestToggleCompletion_StorageError(t *testing.T) {
	store := &fakeInstanceStore{getErr: errors.New("connection reset")}

	_, err := toggleService(store).ToggleCompletion(context.Background(), 10, 5)
	assert.ErrorIs(t, err, model.ErrStorage)
}
