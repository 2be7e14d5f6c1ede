package state

import (
	"github.com/Antoshhka/dogcare_bot/internal/controller/flow"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Состояния для регистрации собаки
	StateEnteringDogName      UserState = "entering_dog_name"
	StateEnteringDogBreed     UserState = "entering_dog_breed"
	StateEnteringDogGender    UserState = "entering_dog_gender"
	StateEnteringDogBirthDate UserState = "entering_dog_birth_date"

	// Состояния для присоединения к семье
	StateEnteringInviteCode UserState = "entering_invite_code"

	// Состояния мастера создания расписания
	StateEnteringDescription UserState = "entering_description"
	StateEnteringCustomTime  UserState = "entering_custom_time"

	// Правка существующего расписания
	StateEditingScheduleDescription UserState = "editing_schedule_description"
)

// UserData хранит временные данные пользователя во время диалога.
// Мастер создания расписания хранится типизированно, остальные
// диалоги складывают промежуточные значения в Data.
type UserData struct {
	State UserState
	Flow  *flow.Flow
	Data  map[string]interface{}
}
