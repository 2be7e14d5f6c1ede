package formatting

import (
	"fmt"
	"strings"

	"github.com/Antoshhka/dogcare_bot/internal/model"
)

// FormatRepeat форматирует правило повторения
func FormatRepeat(r model.Repeat) string {
	switch r.Type {
	case model.RepeatNone:
		return "Без повторения"
	case model.RepeatDaily:
		if r.Count == 1 {
			return "Ежедневно"
		}
		return fmt.Sprintf("Ежедневно, %d %s в день", r.Count, PluralizeTimes(r.Count))
	case model.RepeatWeekly:
		return "Еженедельно"
	case model.RepeatMonthly:
		return "Ежемесячно"
	default:
		return string(r.Type)
	}
}

// FormatTimes форматирует времена слотов в порядке ввода
func FormatTimes(times []model.TimeSlot) string {
	if len(times) == 0 {
		return "без времени"
	}
	parts := make([]string, len(times))
	for i, ts := range times {
		parts[i] = ts.String()
	}
	return strings.Join(parts, ", ")
}

// FormatScheduleInfo форматирует карточку определения расписания
func FormatScheduleInfo(schedule *model.Schedule, dog *model.Dog) string {
	meta := schedule.Type.Meta()

	timesLine := ""
	if schedule.WithTimes {
		timesLine = fmt.Sprintf("\n🕐 Время: %s", FormatTimes(schedule.Times))
	}

	notifLine := ""
	if schedule.Notification.Enabled {
		notifLine = fmt.Sprintf("\n🔔 Напоминание: %s", FormatNotificationOffset(schedule.Notification.MinutesBefore))
	}

	return fmt.Sprintf(
		"%s <b>%s</b>\n\n"+
			"🐕 Собака: %s\n"+
			"📅 Дата: %s\n"+
			"🔁 Повторение: %s%s%s\n"+
			"📝 %s",
		meta.Icon,
		meta.Title,
		dog.Name,
		FormatDateWithWeekday(schedule.Date),
		FormatRepeat(schedule.Repeat),
		timesLine,
		notifLine,
		schedule.Description,
	)
}

// FormatInstanceLine форматирует строку одного экземпляра в списке дня
func FormatInstanceLine(schedule *model.Schedule, inst *model.ScheduleInstance) string {
	meta := schedule.Type.Meta()

	check := "⬜️"
	if inst.IsCompleted {
		check = "✅"
	}

	timeStr := "—"
	if inst.ScheduledTime != nil {
		timeStr = inst.ScheduledTime.String()
	}

	return fmt.Sprintf("%s %s %s %s", check, timeStr, meta.Icon, schedule.Description)
}

// PluralizeTimes возвращает правильное склонение слова "раз"
func PluralizeTimes(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "раз"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "раза"
	}
	return "раз"
}

// PluralizeSchedules возвращает правильное склонение слова "расписание"
func PluralizeSchedules(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "расписание"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "расписания"
	}
	return "расписаний"
}

// PluralizeDogs возвращает правильное склонение слова "собака"
func PluralizeDogs(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "собака"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "собаки"
	}
	return "собак"
}

// PluralizeYears возвращает правильное склонение слова "год"
func PluralizeYears(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "год"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "года"
	}
	return "лет"
}
