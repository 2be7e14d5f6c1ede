package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleTypeMeta(t *testing.T) {
	for _, typ := range AllScheduleTypes {
		meta := typ.Meta()
		assert.NotEmpty(t, meta.Title, "title for %s", typ)
		assert.NotEmpty(t, meta.Icon, "icon for %s", typ)
		assert.NotEmpty(t, meta.Color, "color for %s", typ)
	}

	// Неизвестный тип трактуется как "другое"
	assert.Equal(t, ScheduleTypeOther.Meta(), ScheduleType("surprise").Meta())
}

func TestScheduleTypeIsValid(t *testing.T) {
	for _, typ := range AllScheduleTypes {
		assert.True(t, typ.IsValid(), "%s", typ)
	}
	assert.False(t, ScheduleType("").IsValid())
	assert.False(t, ScheduleType("breakfast").IsValid())
}

func TestRepeatValidate(t *testing.T) {
	tests := []struct {
		name    string
		repeat  Repeat
		wantErr bool
	}{
		{"none", Repeat{Type: RepeatNone}, false},
		{"weekly", Repeat{Type: RepeatWeekly}, false},
		{"monthly", Repeat{Type: RepeatMonthly}, false},
		{"daily min", Repeat{Type: RepeatDaily, Count: 1}, false},
		{"daily max", Repeat{Type: RepeatDaily, Count: 5}, false},
		{"daily zero count", Repeat{Type: RepeatDaily}, true},
		{"daily over max", Repeat{Type: RepeatDaily, Count: 6}, true},
		{"count without daily", Repeat{Type: RepeatWeekly, Count: 2}, true},
		{"unknown type", Repeat{Type: "yearly"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.repeat.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeSlotValidate(t *testing.T) {
	assert.NoError(t, TimeSlot{Hour: 0, Minute: 0}.Validate())
	assert.NoError(t, TimeSlot{Hour: 23, Minute: 59}.Validate())
	assert.ErrorIs(t, TimeSlot{Hour: -1}.Validate(), ErrValidation)
	assert.ErrorIs(t, TimeSlot{Hour: 24}.Validate(), ErrValidation)
	assert.ErrorIs(t, TimeSlot{Hour: 10, Minute: 60}.Validate(), ErrValidation)
}

func TestTimeSlotString(t *testing.T) {
	assert.Equal(t, "08:05", TimeSlot{Hour: 8, Minute: 5}.String())
	assert.Equal(t, "23:59", TimeSlot{Hour: 23, Minute: 59}.String())
}

func TestTimeSlotAt(t *testing.T) {
	day := time.Date(2026, 8, 31, 15, 42, 7, 0, time.UTC)

	got := TimeSlot{Hour: 9, Minute: 30}.At(day)
	assert.Equal(t, time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC), got)
}

func TestNotificationValidate(t *testing.T) {
	for _, m := range NotificationMinutes {
		assert.NoError(t, Notification{Enabled: true, MinutesBefore: m}.Validate())
	}
	assert.ErrorIs(t, Notification{MinutesBefore: 15}.Validate(), ErrValidation)
	assert.ErrorIs(t, Notification{MinutesBefore: -10}.Validate(), ErrValidation)
}

func TestNewSchedule(t *testing.T) {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	s, err := NewSchedule(1, ScheduleTypeWalk, date, "Вечерняя прогулка",
		Repeat{Type: RepeatNone}, true, []TimeSlot{{Hour: 18}}, Notification{Enabled: true, MinutesBefore: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(1), s.DogID)
	assert.Equal(t, ScheduleTypeWalk, s.Type)
	assert.Equal(t, "Вечерняя прогулка", s.Description)
	assert.True(t, s.WithTimes)
	assert.True(t, s.Notification.Enabled)
}

func TestNewSchedule_TruncatesDate(t *testing.T) {
	dirty := time.Date(2026, 8, 31, 17, 25, 43, 999, time.UTC)

	s, err := NewSchedule(1, ScheduleTypeMeal, dirty, "",
		Repeat{Type: RepeatNone}, false, nil, Notification{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), s.Date)
}

func TestNewSchedule_DefaultDescription(t *testing.T) {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	s, err := NewSchedule(1, ScheduleTypeBath, date, "",
		Repeat{Type: RepeatNone}, false, nil, Notification{})
	require.NoError(t, err)
	assert.Equal(t, "Купание", s.Description)
}

func TestNewSchedule_Invalid(t *testing.T) {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		fn   func() (*Schedule, error)
	}{
		{"no dog", func() (*Schedule, error) {
			return NewSchedule(0, ScheduleTypeMeal, date, "", Repeat{Type: RepeatNone}, false, nil, Notification{})
		}},
		{"unknown type", func() (*Schedule, error) {
			return NewSchedule(1, "breakfast", date, "", Repeat{Type: RepeatNone}, false, nil, Notification{})
		}},
		{"zero date", func() (*Schedule, error) {
			return NewSchedule(1, ScheduleTypeMeal, time.Time{}, "", Repeat{Type: RepeatNone}, false, nil, Notification{})
		}},
		{"bad repeat", func() (*Schedule, error) {
			return NewSchedule(1, ScheduleTypeMeal, date, "", Repeat{Type: RepeatDaily}, false, nil, Notification{})
		}},
		{"bad notification offset", func() (*Schedule, error) {
			return NewSchedule(1, ScheduleTypeMeal, date, "", Repeat{Type: RepeatNone}, true,
				[]TimeSlot{{Hour: 8}}, Notification{Enabled: true, MinutesBefore: 45})
		}},
		{"bad time slot", func() (*Schedule, error) {
			return NewSchedule(1, ScheduleTypeMeal, date, "", Repeat{Type: RepeatNone}, true,
				[]TimeSlot{{Hour: 25}}, Notification{})
		}},
		{"times without time selection", func() (*Schedule, error) {
			return NewSchedule(1, ScheduleTypeMeal, date, "", Repeat{Type: RepeatNone}, false,
				[]TimeSlot{{Hour: 8}}, Notification{})
		}},
		{"notification without time selection", func() (*Schedule, error) {
			return NewSchedule(1, ScheduleTypeMeal, date, "", Repeat{Type: RepeatNone}, false,
				nil, Notification{Enabled: true, MinutesBefore: 10})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn()
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
