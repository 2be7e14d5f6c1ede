package flow

import (
	"testing"
	"time"

	"github.com/Antoshhka/dogcare_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

func testDog() *model.Dog {
	return &model.Dog{ID: 1, FamilyID: 1, Name: "Рекс", Gender: model.DogGenderMale}
}

// доводит мастер до третьего шага
func flowAtDetails(t *testing.T) *Flow {
	t.Helper()
	f := New(testDate)
	require.NoError(t, f.SelectDog(testDog()))
	require.NoError(t, f.SelectType(model.ScheduleTypeMeal))
	return f
}

func TestNew(t *testing.T) {
	f := New(testDate)

	assert.Equal(t, StepDog, f.Step)
	assert.Nil(t, f.Dog)
	assert.Equal(t, model.RepeatNone, f.Details.Repeat.Type)
	assert.False(t, f.Details.WithTimes)
}

func TestSelectDog(t *testing.T) {
	f := New(testDate)

	require.NoError(t, f.SelectDog(testDog()))
	assert.Equal(t, StepType, f.Step)

	// Повторный выбор с неверного шага отклоняется
	err := f.SelectDog(testDog())
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestSelectDog_Nil(t *testing.T) {
	f := New(testDate)
	assert.ErrorIs(t, f.SelectDog(nil), model.ErrValidation)
}

func TestSelectType(t *testing.T) {
	f := New(testDate)
	require.NoError(t, f.SelectDog(testDog()))

	require.NoError(t, f.SelectType(model.ScheduleTypeWalk))
	assert.Equal(t, StepDetails, f.Step)
	assert.Equal(t, model.ScheduleTypeWalk, f.Type)
}

func TestSelectType_Unknown(t *testing.T) {
	f := New(testDate)
	require.NoError(t, f.SelectDog(testDog()))

	assert.ErrorIs(t, f.SelectType("breakfast"), model.ErrValidation)
}

func TestSelectType_WrongStep(t *testing.T) {
	f := New(testDate)
	assert.ErrorIs(t, f.SelectType(model.ScheduleTypeMeal), model.ErrValidation)
}

func TestBack_ClearsStepSelection(t *testing.T) {
	f := flowAtDetails(t)
	require.NoError(t, f.SetRepeat(model.RepeatDaily))

	// Назад с деталей: тип и детали сбрасываются
	require.NoError(t, f.Back())
	assert.Equal(t, StepType, f.Step)
	assert.Empty(t, f.Type)
	assert.Equal(t, model.RepeatNone, f.Details.Repeat.Type)

	// Назад с выбора типа: собака сбрасывается
	require.NoError(t, f.Back())
	assert.Equal(t, StepDog, f.Step)
	assert.Nil(t, f.Dog)

	// С первого шага возвращаться некуда
	assert.ErrorIs(t, f.Back(), model.ErrValidation)
}

func TestSetRepeat_DailyDefaultsCount(t *testing.T) {
	f := flowAtDetails(t)

	require.NoError(t, f.SetRepeat(model.RepeatDaily))
	assert.Equal(t, 1, f.Details.Repeat.Count)
}

func TestSetRepeat_AwayFromDailyTruncatesTimes(t *testing.T) {
	f := flowAtDetails(t)
	require.NoError(t, f.SetRepeat(model.RepeatDaily))
	require.NoError(t, f.SetCount(3))
	require.NoError(t, f.ToggleWithTimes())
	require.NoError(t, f.AddTime(model.TimeSlot{Hour: 8}))
	require.NoError(t, f.AddTime(model.TimeSlot{Hour: 13}))
	require.NoError(t, f.AddTime(model.TimeSlot{Hour: 19}))

	require.NoError(t, f.SetRepeat(model.RepeatWeekly))

	assert.Equal(t, 0, f.Details.Repeat.Count)
	// Остаётся первый введённый слот
	require.Len(t, f.Details.Times, 1)
	assert.Equal(t, 8, f.Details.Times[0].Hour)
}

func TestSetCount_ReductionTruncatesFromEnd(t *testing.T) {
	f := flowAtDetails(t)
	require.NoError(t, f.SetRepeat(model.RepeatDaily))
	require.NoError(t, f.SetCount(3))
	require.NoError(t, f.ToggleWithTimes())
	require.NoError(t, f.AddTime(model.TimeSlot{Hour: 8}))
	require.NoError(t, f.AddTime(model.TimeSlot{Hour: 13}))
	require.NoError(t, f.AddTime(model.TimeSlot{Hour: 19}))

	require.NoError(t, f.SetCount(2))

	require.Len(t, f.Details.Times, 2)
	assert.Equal(t, 8, f.Details.Times[0].Hour)
	assert.Equal(t, 13, f.Details.Times[1].Hour)
}

func TestSetCount_WithoutDaily(t *testing.T) {
	f := flowAtDetails(t)
	assert.ErrorIs(t, f.SetCount(2), model.ErrValidation)
}

func TestSetCount_OutOfRange(t *testing.T) {
	f := flowAtDetails(t)
	require.NoError(t, f.SetRepeat(model.RepeatDaily))

	assert.ErrorIs(t, f.SetCount(0), model.ErrValidation)
	assert.ErrorIs(t, f.SetCount(6), model.ErrValidation)
}

func TestToggleWithTimes_DisableClearsTimesAndNotification(t *testing.T) {
	f := flowAtDetails(t)
	require.NoError(t, f.ToggleWithTimes())
	require.NoError(t, f.AddTime(model.TimeSlot{Hour: 9, Minute: 30}))
	require.NoError(t, f.SetNotification(true, 10))

	require.NoError(t, f.ToggleWithTimes())

	assert.False(t, f.Details.WithTimes)
	assert.Empty(t, f.Details.Times)
	assert.False(t, f.Details.Notification.Enabled)
}

func TestAddTime_RequiresWithTimes(t *testing.T) {
	f := flowAtDetails(t)
	assert.ErrorIs(t, f.AddTime(model.TimeSlot{Hour: 9}), model.ErrValidation)
}

func TestAddTime_RejectsBeyondMaxSlots(t *testing.T) {
	f := flowAtDetails(t)
	require.NoError(t, f.ToggleWithTimes())
	require.NoError(t, f.AddTime(model.TimeSlot{Hour: 9}))

	err := f.AddTime(model.TimeSlot{Hour: 12})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestAddTime_InvalidSlot(t *testing.T) {
	f := flowAtDetails(t)
	require.NoError(t, f.ToggleWithTimes())

	assert.ErrorIs(t, f.AddTime(model.TimeSlot{Hour: 24}), model.ErrValidation)
	assert.ErrorIs(t, f.AddTime(model.TimeSlot{Hour: 10, Minute: 60}), model.ErrValidation)
}

func TestMissingSlots(t *testing.T) {
	f := flowAtDetails(t)
	assert.Equal(t, 0, f.MissingSlots())

	require.NoError(t, f.SetRepeat(model.RepeatDaily))
	require.NoError(t, f.SetCount(3))
	require.NoError(t, f.ToggleWithTimes())
	assert.Equal(t, 3, f.MissingSlots())

	require.NoError(t, f.AddTime(model.TimeSlot{Hour: 8}))
	assert.Equal(t, 2, f.MissingSlots())
}

func TestSetNotification_RequiresWithTimes(t *testing.T) {
	f := flowAtDetails(t)

	assert.ErrorIs(t, f.SetNotification(true, 10), model.ErrValidation)

	// Выключить можно всегда
	require.NoError(t, f.SetNotification(false, 0))
}

func TestSetNotification_InvalidOffset(t *testing.T) {
	f := flowAtDetails(t)
	require.NoError(t, f.ToggleWithTimes())

	assert.ErrorIs(t, f.SetNotification(true, 15), model.ErrValidation)
}

func TestBuild_IncompleteTimes(t *testing.T) {
	f := flowAtDetails(t)
	require.NoError(t, f.SetRepeat(model.RepeatDaily))
	require.NoError(t, f.SetCount(2))
	require.NoError(t, f.ToggleWithTimes())
	require.NoError(t, f.AddTime(model.TimeSlot{Hour: 8}))

	_, err := f.Build()
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestBuild_WrongStep(t *testing.T) {
	f := New(testDate)
	_, err := f.Build()
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestBuild_Complete(t *testing.T) {
	f := flowAtDetails(t)
	require.NoError(t, f.SetRepeat(model.RepeatDaily))
	require.NoError(t, f.SetCount(2))
	require.NoError(t, f.ToggleWithTimes())
	require.NoError(t, f.AddTime(model.TimeSlot{Hour: 19}))
	require.NoError(t, f.AddTime(model.TimeSlot{Hour: 8, Minute: 30}))
	require.NoError(t, f.SetNotification(true, 30))
	require.NoError(t, f.SetDescription("Корм для щенков"))

	schedule, err := f.Build()
	require.NoError(t, err)

	assert.Equal(t, int64(1), schedule.DogID)
	assert.Equal(t, model.ScheduleTypeMeal, schedule.Type)
	assert.Equal(t, testDate, schedule.Date)
	assert.Equal(t, "Корм для щенков", schedule.Description)
	assert.Equal(t, model.Repeat{Type: model.RepeatDaily, Count: 2}, schedule.Repeat)
	assert.True(t, schedule.WithTimes)
	// Порядок ввода сохраняется
	require.Len(t, schedule.Times, 2)
	assert.Equal(t, model.TimeSlot{Hour: 19}, schedule.Times[0])
	assert.Equal(t, model.TimeSlot{Hour: 8, Minute: 30}, schedule.Times[1])
	assert.True(t, schedule.Notification.Enabled)
	assert.Equal(t, 30, schedule.Notification.MinutesBefore)
}

func TestBuild_DefaultDescription(t *testing.T) {
	f := flowAtDetails(t)

	schedule, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, "Кормление", schedule.Description)
}

func TestReset(t *testing.T) {
	f := flowAtDetails(t)
	require.NoError(t, f.SetRepeat(model.RepeatDaily))

	f.Reset()

	assert.Equal(t, StepDog, f.Step)
	assert.Nil(t, f.Dog)
	assert.Empty(t, f.Type)
	assert.Equal(t, model.RepeatNone, f.Details.Repeat.Type)
	assert.Equal(t, testDate, f.Date)
}
