// Package recurrence разворачивает определение расписания в конкретные
// экземпляры и даты. Все функции чистые и детерминированные.
package recurrence

import (
	"fmt"
	"time"

	"github.com/Antoshhka/dogcare_bot/internal/model"
	"github.com/teambition/rrule-go"
)

// MaxSlots сколько времён подразумевает правило повторения за один период:
// none/weekly/monthly — одно, daily — count
func MaxSlots(r model.Repeat) int {
	if r.Type == model.RepeatDaily {
		return r.Count
	}
	return 1
}

// Expand превращает определение в упорядоченный набор экземпляров.
// Порядок экземпляров повторяет порядок ввода времён, без сортировки.
func Expand(s *model.Schedule) ([]*model.ScheduleInstance, error) {
	if !s.WithTimes {
		// Без выбора времени расписание всегда даёт ровно один экземпляр
		return []*model.ScheduleInstance{
			{ScheduleID: s.ID, SlotIndex: 0, ScheduledTime: nil},
		}, nil
	}

	need := MaxSlots(s.Repeat)
	if len(s.Times) != need {
		return nil, fmt.Errorf("%w: incomplete time configuration: have %d of %d time slots",
			model.ErrValidation, len(s.Times), need)
	}

	instances := make([]*model.ScheduleInstance, 0, need)
	for i, ts := range s.Times {
		t := ts
		instances = append(instances, &model.ScheduleInstance{
			ScheduleID:    s.ID,
			SlotIndex:     i,
			ScheduledTime: &t,
		})
	}
	return instances, nil
}

// rule строит RRULE для повторяющегося расписания
func rule(s *model.Schedule) (*rrule.RRule, error) {
	var freq rrule.Frequency
	switch s.Repeat.Type {
	case model.RepeatDaily:
		freq = rrule.DAILY
	case model.RepeatWeekly:
		freq = rrule.WEEKLY
	case model.RepeatMonthly:
		freq = rrule.MONTHLY
	default:
		return nil, fmt.Errorf("%w: repeat type %q has no recurrence rule",
			model.ErrValidation, s.Repeat.Type)
	}

	return rrule.NewRRule(rrule.ROption{
		Freq:    freq,
		Dtstart: s.Date,
	})
}

// OccurrencesBetween возвращает дни, в которые расписание активно
// внутри окна [from, to] включительно
func OccurrencesBetween(s *model.Schedule, from, to time.Time) ([]time.Time, error) {
	if to.Before(from) {
		return nil, nil
	}

	if s.Repeat.Type == model.RepeatNone {
		if s.Date.Before(from) || s.Date.After(to) {
			return nil, nil
		}
		return []time.Time{s.Date}, nil
	}

	r, err := rule(s)
	if err != nil {
		return nil, err
	}
	return r.Between(from, to, true), nil
}

// OccursOn активно ли расписание в указанный день.
// День приводится к зоне опорной даты, иначе границы суток
// съезжают на смещение между зонами.
func OccursOn(s *model.Schedule, day time.Time) (bool, error) {
	day = day.In(s.Date.Location())
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.Date.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	occ, err := OccurrencesBetween(s, dayStart, dayEnd)
	if err != nil {
		return false, err
	}
	return len(occ) > 0, nil
}
