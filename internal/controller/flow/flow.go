package flow

import (
	"fmt"
	"time"

	"github.com/Antoshhka/dogcare_bot/internal/model"
	"github.com/Antoshhka/dogcare_bot/internal/recurrence"
)

// Step этап мастера создания расписания
type Step int

const (
	StepDog     Step = iota // выбор собаки
	StepType                // выбор типа события
	StepDetails             // детали: повторение, времена, уведомление, описание
)

// Details накопленные детали третьего шага
type Details struct {
	Description  string
	Repeat       model.Repeat
	WithTimes    bool
	Times        []model.TimeSlot
	Notification model.Notification
}

// Flow состояние мастера создания расписания: выбор собаки, типа и деталей.
// Каждый переход валидируется; собрать расписание из незавершённого
// состояния нельзя. Flow не знает ни про Telegram, ни про хранилище.
type Flow struct {
	Date    time.Time
	Step    Step
	Dog     *model.Dog
	Type    model.ScheduleType
	Details Details
}

// New начинает мастер для указанной даты
func New(date time.Time) *Flow {
	return &Flow{
		Date:    date,
		Step:    StepDog,
		Details: defaultDetails(),
	}
}

func defaultDetails() Details {
	return Details{
		Repeat: model.Repeat{Type: model.RepeatNone},
	}
}

// SelectDog фиксирует собаку и переводит мастер к выбору типа
func (f *Flow) SelectDog(dog *model.Dog) error {
	if f.Step != StepDog {
		return fmt.Errorf("%w: dog is already selected", model.ErrValidation)
	}
	if dog == nil {
		return fmt.Errorf("%w: dog is not selected", model.ErrValidation)
	}
	f.Dog = dog
	f.Step = StepType
	return nil
}

// SelectType фиксирует тип события и переводит мастер к деталям
func (f *Flow) SelectType(typ model.ScheduleType) error {
	if f.Step != StepType {
		return fmt.Errorf("%w: unexpected step for type selection", model.ErrValidation)
	}
	if !typ.IsValid() {
		return fmt.Errorf("%w: unknown schedule type %q", model.ErrValidation, typ)
	}
	f.Type = typ
	f.Step = StepDetails
	return nil
}

// Back возвращает мастер на предыдущий шаг, сбрасывая выбор текущего.
// С первого шага возвращаться некуда.
func (f *Flow) Back() error {
	switch f.Step {
	case StepType:
		f.Dog = nil
		f.Step = StepDog
	case StepDetails:
		f.Type = ""
		f.Details = defaultDetails()
		f.Step = StepType
	default:
		return fmt.Errorf("%w: nowhere to go back from the first step", model.ErrValidation)
	}
	return nil
}

// SetDescription задаёт описание. Пустое описание допустимо:
// при сборке подставится описание по умолчанию для типа.
func (f *Flow) SetDescription(text string) error {
	if f.Step != StepDetails {
		return fmt.Errorf("%w: details are not being edited", model.ErrValidation)
	}
	f.Details.Description = text
	return nil
}

// SetRepeat меняет вид повторения. Уход с daily обнуляет кратность
// и усекает времена до одного слота; переход на daily начинает с кратности 1.
func (f *Flow) SetRepeat(typ model.RepeatType) error {
	if f.Step != StepDetails {
		return fmt.Errorf("%w: details are not being edited", model.ErrValidation)
	}

	repeat := model.Repeat{Type: typ}
	if typ == model.RepeatDaily {
		repeat.Count = model.MinDailyCount
	}
	if err := repeat.Validate(); err != nil {
		return err
	}

	f.Details.Repeat = repeat
	f.truncateTimes()
	return nil
}

// SetCount задаёт кратность daily-повторения. Уменьшение кратности
// отбрасывает лишние времена с конца, введённые ранее сохраняются.
func (f *Flow) SetCount(count int) error {
	if f.Step != StepDetails {
		return fmt.Errorf("%w: details are not being edited", model.ErrValidation)
	}
	if f.Details.Repeat.Type != model.RepeatDaily {
		return fmt.Errorf("%w: count is only allowed for daily repeat", model.ErrValidation)
	}

	repeat := model.Repeat{Type: model.RepeatDaily, Count: count}
	if err := repeat.Validate(); err != nil {
		return err
	}

	f.Details.Repeat = repeat
	f.truncateTimes()
	return nil
}

func (f *Flow) truncateTimes() {
	if max := recurrence.MaxSlots(f.Details.Repeat); len(f.Details.Times) > max {
		f.Details.Times = f.Details.Times[:max]
	}
}

// ToggleWithTimes переключает выбор времени. Отключение сбрасывает
// введённые времена и выключает уведомление.
func (f *Flow) ToggleWithTimes() error {
	if f.Step != StepDetails {
		return fmt.Errorf("%w: details are not being edited", model.ErrValidation)
	}

	f.Details.WithTimes = !f.Details.WithTimes
	if !f.Details.WithTimes {
		f.Details.Times = nil
		f.Details.Notification.Enabled = false
	}
	return nil
}

// AddTime добавляет слот времени в конец. Порядок ввода сохраняется.
func (f *Flow) AddTime(slot model.TimeSlot) error {
	if f.Step != StepDetails {
		return fmt.Errorf("%w: details are not being edited", model.ErrValidation)
	}
	if !f.Details.WithTimes {
		return fmt.Errorf("%w: time selection is disabled", model.ErrValidation)
	}
	if err := slot.Validate(); err != nil {
		return err
	}
	if max := recurrence.MaxSlots(f.Details.Repeat); len(f.Details.Times) >= max {
		return fmt.Errorf("%w: all %d time slots are already set", model.ErrValidation, max)
	}

	f.Details.Times = append(f.Details.Times, slot)
	return nil
}

// MissingSlots сколько времён ещё нужно ввести до полной конфигурации.
// При выключенном выборе времени всегда ноль.
func (f *Flow) MissingSlots() int {
	if !f.Details.WithTimes {
		return 0
	}
	missing := recurrence.MaxSlots(f.Details.Repeat) - len(f.Details.Times)
	if missing < 0 {
		return 0
	}
	return missing
}

// SetNotification настраивает напоминание. Включить его можно
// только при включённом выборе времени.
func (f *Flow) SetNotification(enabled bool, minutesBefore int) error {
	if f.Step != StepDetails {
		return fmt.Errorf("%w: details are not being edited", model.ErrValidation)
	}
	if enabled && !f.Details.WithTimes {
		return fmt.Errorf("%w: notification requires time selection", model.ErrValidation)
	}

	n := model.Notification{Enabled: enabled, MinutesBefore: minutesBefore}
	if err := n.Validate(); err != nil {
		return err
	}

	f.Details.Notification = n
	return nil
}

// Build собирает определение расписания из накопленного состояния.
// Незавершённый мастер (не тот шаг, не все времена) собрать нельзя.
func (f *Flow) Build() (*model.Schedule, error) {
	if f.Step != StepDetails {
		return nil, fmt.Errorf("%w: the wizard is not finished", model.ErrValidation)
	}
	if f.Dog == nil {
		return nil, fmt.Errorf("%w: dog is not selected", model.ErrValidation)
	}
	if missing := f.MissingSlots(); missing > 0 {
		return nil, fmt.Errorf("%w: %d time slot(s) are not set", model.ErrValidation, missing)
	}

	return model.NewSchedule(
		f.Dog.ID,
		f.Type,
		f.Date,
		f.Details.Description,
		f.Details.Repeat,
		f.Details.WithTimes,
		f.Details.Times,
		f.Details.Notification,
	)
}

// Reset возвращает мастер в начальное состояние, сохраняя дату
func (f *Flow) Reset() {
	f.Step = StepDog
	f.Dog = nil
	f.Type = ""
	f.Details = defaultDetails()
}
