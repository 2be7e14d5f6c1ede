package formatting

import (
	"testing"
	"time"

	"github.com/Antoshhka/dogcare_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFormatRepeat(t *testing.T) {
	tests := []struct {
		repeat model.Repeat
		want   string
	}{
		{model.Repeat{Type: model.RepeatNone}, "Без повторения"},
		{model.Repeat{Type: model.RepeatDaily, Count: 1}, "Ежедневно"},
		{model.Repeat{Type: model.RepeatDaily, Count: 2}, "Ежедневно, 2 раза в день"},
		{model.Repeat{Type: model.RepeatDaily, Count: 5}, "Ежедневно, 5 раз в день"},
		{model.Repeat{Type: model.RepeatWeekly}, "Еженедельно"},
		{model.Repeat{Type: model.RepeatMonthly}, "Ежемесячно"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRepeat(tt.repeat))
	}
}

func TestFormatTimes(t *testing.T) {
	assert.Equal(t, "без времени", FormatTimes(nil))

	// Порядок ввода сохраняется, без сортировки
	times := []model.TimeSlot{{Hour: 19}, {Hour: 8, Minute: 30}}
	assert.Equal(t, "19:00, 08:30", FormatTimes(times))
}

func TestFormatInstanceLine(t *testing.T) {
	schedule := &model.Schedule{Type: model.ScheduleTypeMeal, Description: "Кормление"}

	completed := &model.ScheduleInstance{
		ScheduledTime: &model.TimeSlot{Hour: 8},
		IsCompleted:   true,
	}
	assert.Equal(t, "✅ 08:00 🍽 Кормление", FormatInstanceLine(schedule, completed))

	untimed := &model.ScheduleInstance{}
	assert.Equal(t, "⬜️ — 🍽 Кормление", FormatInstanceLine(schedule, untimed))
}

func TestFormatNotificationOffset(t *testing.T) {
	assert.Equal(t, "в момент события", FormatNotificationOffset(0))
	assert.Equal(t, "за 10 мин", FormatNotificationOffset(10))
	assert.Equal(t, "за 30 мин", FormatNotificationOffset(30))
	assert.Equal(t, "за 1 ч", FormatNotificationOffset(60))
}

func TestFormatDateWithWeekday(t *testing.T) {
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "31.08.2026 (Понедельник)", FormatDateWithWeekday(monday))
}

func TestPluralizeTimes(t *testing.T) {
	assert.Equal(t, "раз", PluralizeTimes(1))
	assert.Equal(t, "раза", PluralizeTimes(2))
	assert.Equal(t, "раза", PluralizeTimes(4))
	assert.Equal(t, "раз", PluralizeTimes(5))
}

func TestPluralizeDogs(t *testing.T) {
	assert.Equal(t, "собака", PluralizeDogs(1))
	assert.Equal(t, "собаки", PluralizeDogs(3))
	assert.Equal(t, "собак", PluralizeDogs(7))
	assert.Equal(t, "собак", PluralizeDogs(11))
	assert.Equal(t, "собака", PluralizeDogs(21))
}

func TestPluralizeYears(t *testing.T) {
	assert.Equal(t, "год", PluralizeYears(1))
	assert.Equal(t, "года", PluralizeYears(2))
	assert.Equal(t, "лет", PluralizeYears(5))
	assert.Equal(t, "лет", PluralizeYears(12))
}
