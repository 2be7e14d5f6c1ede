package model

import (
	"fmt"
	"time"
)

// ScheduleType категория события в расписании собаки
type ScheduleType string

const (
	ScheduleTypeMeal     ScheduleType = "meal"
	ScheduleTypeWalk     ScheduleType = "walk"
	ScheduleTypeSnack    ScheduleType = "snack"
	ScheduleTypeBath     ScheduleType = "bath"
	ScheduleTypeHospital ScheduleType = "hospital"
	ScheduleTypeOther    ScheduleType = "other"
)

// AllScheduleTypes порядок показа типов в интерфейсе
var AllScheduleTypes = []ScheduleType{
	ScheduleTypeMeal,
	ScheduleTypeWalk,
	ScheduleTypeSnack,
	ScheduleTypeBath,
	ScheduleTypeHospital,
	ScheduleTypeOther,
}

// ScheduleTypeMeta презентационные метаданные типа
type ScheduleTypeMeta struct {
	Title              string
	Icon               string
	Color              string // hex, используется в маркерах календаря и карточке дня
	DefaultDescription string
}

// Meta возвращает метаданные типа. Switch покрывает все варианты,
// неизвестный тип трактуется как "другое".
func (t ScheduleType) Meta() ScheduleTypeMeta {
	switch t {
	case ScheduleTypeMeal:
		return ScheduleTypeMeta{Title: "Еда", Icon: "🍽", Color: "#FF6B6B", DefaultDescription: "Кормление"}
	case ScheduleTypeWalk:
		return ScheduleTypeMeta{Title: "Прогулка", Icon: "🦮", Color: "#4ECDC4", DefaultDescription: "Прогулка"}
	case ScheduleTypeSnack:
		return ScheduleTypeMeta{Title: "Лакомство", Icon: "🦴", Color: "#FFD93D", DefaultDescription: "Лакомство"}
	case ScheduleTypeBath:
		return ScheduleTypeMeta{Title: "Купание", Icon: "🛁", Color: "#6C5CE7", DefaultDescription: "Купание"}
	case ScheduleTypeHospital:
		return ScheduleTypeMeta{Title: "Ветеринар", Icon: "🏥", Color: "#A8E6CF", DefaultDescription: "Визит к ветеринару"}
	case ScheduleTypeOther:
		return ScheduleTypeMeta{Title: "Другое", Icon: "📝", Color: "#95A5A6", DefaultDescription: ""}
	default:
		return ScheduleTypeMeta{Title: "Другое", Icon: "📝", Color: "#95A5A6", DefaultDescription: ""}
	}
}

// IsValid проверяет что тип из известного набора
func (t ScheduleType) IsValid() bool {
	switch t {
	case ScheduleTypeMeal, ScheduleTypeWalk, ScheduleTypeSnack,
		ScheduleTypeBath, ScheduleTypeHospital, ScheduleTypeOther:
		return true
	}
	return false
}

// RepeatType вид повторения расписания
type RepeatType string

const (
	RepeatNone    RepeatType = "none"
	RepeatDaily   RepeatType = "daily"
	RepeatWeekly  RepeatType = "weekly"
	RepeatMonthly RepeatType = "monthly"
)

const (
	MinDailyCount = 1
	MaxDailyCount = 5
)

// Repeat правило повторения. Count имеет смысл только при Type == daily.
type Repeat struct {
	Type  RepeatType `json:"type"`
	Count int        `json:"count,omitempty"` // 1-5, только для daily
}

// Validate проверяет связку тип/кратность
func (r Repeat) Validate() error {
	switch r.Type {
	case RepeatDaily:
		if r.Count < MinDailyCount || r.Count > MaxDailyCount {
			return fmt.Errorf("%w: daily count must be between %d and %d, got %d",
				ErrValidation, MinDailyCount, MaxDailyCount, r.Count)
		}
	case RepeatNone, RepeatWeekly, RepeatMonthly:
		if r.Count != 0 {
			return fmt.Errorf("%w: count is only allowed for daily repeat", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown repeat type %q", ErrValidation, r.Type)
	}
	return nil
}

// TimeSlot время одного запланированного события в пределах дня
type TimeSlot struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Validate проверяет границы часов и минут
func (ts TimeSlot) Validate() error {
	if ts.Hour < 0 || ts.Hour > 23 {
		return fmt.Errorf("%w: hour must be 0-23, got %d", ErrValidation, ts.Hour)
	}
	if ts.Minute < 0 || ts.Minute > 59 {
		return fmt.Errorf("%w: minute must be 0-59, got %d", ErrValidation, ts.Minute)
	}
	return nil
}

func (ts TimeSlot) String() string {
	return fmt.Sprintf("%02d:%02d", ts.Hour, ts.Minute)
}

// At привязывает слот к конкретному дню
func (ts TimeSlot) At(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), ts.Hour, ts.Minute, 0, 0, day.Location())
}

// NotificationMinutes допустимые значения "за сколько минут напомнить"
var NotificationMinutes = []int{0, 10, 30, 60}

// Notification настройка напоминания
type Notification struct {
	Enabled       bool `json:"enabled"`
	MinutesBefore int  `json:"minutes_before"` // 0, 10, 30 или 60
}

// Validate проверяет значение смещения
func (n Notification) Validate() error {
	for _, m := range NotificationMinutes {
		if n.MinutesBefore == m {
			return nil
		}
	}
	return fmt.Errorf("%w: notification offset must be one of 0/10/30/60, got %d",
		ErrValidation, n.MinutesBefore)
}

// Schedule определение расписания: что, для какой собаки, когда и как повторяется.
// Экземпляры (ScheduleInstance) порождаются из определения экспандером.
type Schedule struct {
	ID           int64        `json:"id"`
	DogID        int64        `json:"dog_id"` // неизменяем после создания
	Type         ScheduleType `json:"type"`
	Date         time.Time    `json:"date"` // опорная дата, только день
	Description  string       `json:"description"`
	Repeat       Repeat       `json:"repeat"`
	WithTimes    bool         `json:"with_times"` // включён ли выбор времени
	Times        []TimeSlot   `json:"times"`      // порядок ввода сохраняется, не сортируется
	Notification Notification `json:"notification"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewSchedule собирает валидное определение расписания.
// Невалидные комбинации (уведомление без времени, count без daily и т.п.)
// отбрасываются здесь, а не на совести вызывающего кода.
func NewSchedule(
	dogID int64,
	typ ScheduleType,
	date time.Time,
	description string,
	repeat Repeat,
	withTimes bool,
	times []TimeSlot,
	notification Notification,
) (*Schedule, error) {
	if dogID <= 0 {
		return nil, fmt.Errorf("%w: dog is not selected", ErrValidation)
	}
	if !typ.IsValid() {
		return nil, fmt.Errorf("%w: unknown schedule type %q", ErrValidation, typ)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is not selected", ErrValidation)
	}
	if err := repeat.Validate(); err != nil {
		return nil, err
	}
	if err := notification.Validate(); err != nil {
		return nil, err
	}
	for _, ts := range times {
		if err := ts.Validate(); err != nil {
			return nil, err
		}
	}

	if !withTimes {
		if len(times) > 0 {
			return nil, fmt.Errorf("%w: time slots are set but time selection is disabled", ErrValidation)
		}
		if notification.Enabled {
			return nil, fmt.Errorf("%w: notification requires time selection", ErrValidation)
		}
	}

	if description == "" {
		description = typ.Meta().DefaultDescription
	}

	return &Schedule{
		DogID:        dogID,
		Type:         typ,
		Date:         time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()),
		Description:  description,
		Repeat:       repeat,
		WithTimes:    withTimes,
		Times:        times,
		Notification: notification,
	}, nil
}

// ScheduleInstance один конкретный экземпляр расписания.
// Статус выполнения переключается независимо по каждому экземпляру.
type ScheduleInstance struct {
	ID             int64      `json:"id"`
	ScheduleID     int64      `json:"schedule_id"`
	SlotIndex      int        `json:"slot_index"`      // позиция в порядке ввода времён
	ScheduledTime  *TimeSlot  `json:"scheduled_time"`  // nil = без конкретного времени
	IsCompleted    bool       `json:"is_completed"`
	CompletionTime *time.Time `json:"completion_time"` // заполнено только пока IsCompleted
	CreatedAt      time.Time  `json:"created_at"`
}
