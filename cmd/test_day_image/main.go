package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Antoshhka/dogcare_bot/internal/controller/callbacks/common"
	"github.com/Antoshhka/dogcare_bot/internal/model"
)

func main() {
	// Создаем тестовые данные
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	rex := &model.Dog{ID: 1, FamilyID: 1, Name: "Рекс", Gender: model.DogGenderMale}
	bella := &model.Dog{ID: 2, FamilyID: 1, Name: "Белла", Gender: model.DogGenderFemale}

	meals := &model.Schedule{
		ID:          1,
		DogID:       rex.ID,
		Type:        model.ScheduleTypeMeal,
		Date:        today,
		Description: "Кормление",
		Repeat:      model.Repeat{Type: model.RepeatDaily, Count: 3},
		WithTimes:   true,
	}
	walk := &model.Schedule{
		ID:          2,
		DogID:       bella.ID,
		Type:        model.ScheduleTypeWalk,
		Date:        today,
		Description: "Вечерняя прогулка",
		Repeat:      model.Repeat{Type: model.RepeatNone},
		WithTimes:   true,
	}
	bath := &model.Schedule{
		ID:          3,
		DogID:       rex.ID,
		Type:        model.ScheduleTypeBath,
		Date:        today,
		Description: "Купание",
		Repeat:      model.Repeat{Type: model.RepeatNone},
	}

	completedAt := today.Add(8 * time.Hour)

	items := []common.DayItem{
		{
			Schedule: meals,
			Dog:      rex,
			Instance: &model.ScheduleInstance{
				ID: 1, ScheduleID: 1, SlotIndex: 0,
				ScheduledTime:  &model.TimeSlot{Hour: 8, Minute: 0},
				IsCompleted:    true,
				CompletionTime: &completedAt,
			},
		},
		{
			Schedule: meals,
			Dog:      rex,
			Instance: &model.ScheduleInstance{
				ID: 2, ScheduleID: 1, SlotIndex: 1,
				ScheduledTime: &model.TimeSlot{Hour: 13, Minute: 30},
			},
		},
		{
			Schedule: meals,
			Dog:      rex,
			Instance: &model.ScheduleInstance{
				ID: 3, ScheduleID: 1, SlotIndex: 2,
				ScheduledTime: &model.TimeSlot{Hour: 19, Minute: 0},
			},
		},
		{
			Schedule: walk,
			Dog:      bella,
			Instance: &model.ScheduleInstance{
				ID: 4, ScheduleID: 2, SlotIndex: 0,
				ScheduledTime: &model.TimeSlot{Hour: 18, Minute: 0},
			},
		},
		{
			Schedule: bath,
			Dog:      rex,
			Instance: &model.ScheduleInstance{
				ID: 5, ScheduleID: 3, SlotIndex: 0,
			},
		},
	}

	imageData, err := common.GenerateDayImage(today, items)
	if err != nil {
		fmt.Printf("Ошибка генерации: %v\n", err)
		os.Exit(1)
	}

	filename := "test_day.png"
	if err := os.WriteFile(filename, imageData, 0644); err != nil {
		fmt.Printf("Ошибка записи: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Карточка дня сохранена в %s (%d байт)\n", filename, len(imageData))
}
