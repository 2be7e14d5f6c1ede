package recurrence

import (
	"testing"
	"time"

	"github.com/Antoshhka/dogcare_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxSlots(t *testing.T) {
	tests := []struct {
		name   string
		repeat model.Repeat
		want   int
	}{
		{"none", model.Repeat{Type: model.RepeatNone}, 1},
		{"weekly", model.Repeat{Type: model.RepeatWeekly}, 1},
		{"monthly", model.Repeat{Type: model.RepeatMonthly}, 1},
		{"daily once", model.Repeat{Type: model.RepeatDaily, Count: 1}, 1},
		{"daily three times", model.Repeat{Type: model.RepeatDaily, Count: 3}, 3},
		{"daily max", model.Repeat{Type: model.RepeatDaily, Count: 5}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxSlots(tt.repeat))
		})
	}
}

func TestExpand_WithoutTimes(t *testing.T) {
	s := &model.Schedule{
		ID:        7,
		Repeat:    model.Repeat{Type: model.RepeatDaily, Count: 3},
		WithTimes: false,
	}

	instances, err := Expand(s)
	require.NoError(t, err)
	require.Len(t, instances, 1)
	assert.Equal(t, int64(7), instances[0].ScheduleID)
	assert.Equal(t, 0, instances[0].SlotIndex)
	assert.Nil(t, instances[0].ScheduledTime)
}

func TestExpand_PreservesInsertionOrder(t *testing.T) {
	// Времена заданы не по возрастанию, порядок должен сохраниться
	times := []model.TimeSlot{
		{Hour: 19, Minute: 0},
		{Hour: 8, Minute: 30},
		{Hour: 13, Minute: 15},
	}
	s := &model.Schedule{
		ID:        1,
		Repeat:    model.Repeat{Type: model.RepeatDaily, Count: 3},
		WithTimes: true,
		Times:     times,
	}

	instances, err := Expand(s)
	require.NoError(t, err)
	require.Len(t, instances, 3)

	for i, inst := range instances {
		assert.Equal(t, i, inst.SlotIndex)
		require.NotNil(t, inst.ScheduledTime)
		assert.Equal(t, times[i], *inst.ScheduledTime)
	}
}

func TestExpand_IncompleteTimes(t *testing.T) {
	s := &model.Schedule{
		Repeat:    model.Repeat{Type: model.RepeatDaily, Count: 3},
		WithTimes: true,
		Times:     []model.TimeSlot{{Hour: 8}, {Hour: 12}},
	}

	_, err := Expand(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Contains(t, err.Error(), "2 of 3")
}

func TestExpand_TooManyTimes(t *testing.T) {
	s := &model.Schedule{
		Repeat:    model.Repeat{Type: model.RepeatWeekly},
		WithTimes: true,
		Times:     []model.TimeSlot{{Hour: 8}, {Hour: 12}},
	}

	_, err := Expand(s)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestExpand_Deterministic(t *testing.T) {
	s := &model.Schedule{
		Repeat:    model.Repeat{Type: model.RepeatDaily, Count: 2},
		WithTimes: true,
		Times:     []model.TimeSlot{{Hour: 9}, {Hour: 21}},
	}

	first, err := Expand(s)
	require.NoError(t, err)
	second, err := Expand(s)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].SlotIndex, second[i].SlotIndex)
		assert.Equal(t, *first[i].ScheduledTime, *second[i].ScheduledTime)
	}
}

func TestOccursOn_None(t *testing.T) {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	s := &model.Schedule{
		Date:   date,
		Repeat: model.Repeat{Type: model.RepeatNone},
	}

	occurs, err := OccursOn(s, date)
	require.NoError(t, err)
	assert.True(t, occurs)

	occurs, err = OccursOn(s, date.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.False(t, occurs)
}

func TestOccursOn_Daily(t *testing.T) {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	s := &model.Schedule{
		Date:   date,
		Repeat: model.Repeat{Type: model.RepeatDaily, Count: 2},
	}

	for _, offset := range []int{0, 1, 10, 365} {
		occurs, err := OccursOn(s, date.AddDate(0, 0, offset))
		require.NoError(t, err)
		assert.True(t, occurs, "day +%d", offset)
	}

	// До опорной даты расписание не активно
	occurs, err := OccursOn(s, date.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.False(t, occurs)
}

func TestOccursOn_Weekly(t *testing.T) {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC) // понедельник
	s := &model.Schedule{
		Date:   date,
		Repeat: model.Repeat{Type: model.RepeatWeekly},
	}

	occurs, err := OccursOn(s, date.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.True(t, occurs)

	occurs, err = OccursOn(s, date.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.False(t, occurs)
}

func TestOccursOn_Monthly(t *testing.T) {
	date := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	s := &model.Schedule{
		Date:   date,
		Repeat: model.Repeat{Type: model.RepeatMonthly},
	}

	occurs, err := OccursOn(s, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, occurs)

	occurs, err = OccursOn(s, time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, occurs)
}

func TestOccursOn_DifferentTimeZone(t *testing.T) {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	s := &model.Schedule{
		Date:   date,
		Repeat: model.Repeat{Type: model.RepeatNone},
	}

	// 01.09 02:00 в UTC+5 — это ещё 31.08 в зоне опорной даты
	zone := time.FixedZone("UTC+5", 5*60*60)
	occurs, err := OccursOn(s, time.Date(2026, 9, 1, 2, 0, 0, 0, zone))
	require.NoError(t, err)
	assert.True(t, occurs)

	// 31.08 03:00 в UTC+5 — это ещё 30.08 по UTC
	occurs, err = OccursOn(s, time.Date(2026, 8, 31, 3, 0, 0, 0, zone))
	require.NoError(t, err)
	assert.False(t, occurs)
}

func TestOccurrencesBetween_EmptyWindow(t *testing.T) {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	s := &model.Schedule{
		Date:   date,
		Repeat: model.Repeat{Type: model.RepeatDaily, Count: 1},
	}

	occ, err := OccurrencesBetween(s, date.AddDate(0, 0, 5), date)
	require.NoError(t, err)
	assert.Empty(t, occ)
}

func TestOccurrencesBetween_DailyWindow(t *testing.T) {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	s := &model.Schedule{
		Date:   date,
		Repeat: model.Repeat{Type: model.RepeatDaily, Count: 1},
	}

	occ, err := OccurrencesBetween(s, date, date.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.Len(t, occ, 7)
}
