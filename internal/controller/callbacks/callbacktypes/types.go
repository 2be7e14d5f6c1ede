package callbacktypes

import (
	"context"

	"github.com/Antoshhka/dogcare_bot/internal/controller/flow"
	"github.com/Antoshhka/dogcare_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

// StateManager интерфейс для управления состоянием пользователей.
// Мастер создания расписания хранится типизированно, отдельно от Data.
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	SetState(telegramID int64, state UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
	GetAllData(telegramID int64) map[string]interface{}
	GetFlow(telegramID int64) *flow.Flow
	SetFlow(telegramID int64, f *flow.Flow)
	ClearFlow(telegramID int64)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService     *service.UserService
	FamilyService   *service.FamilyService
	DogService      *service.DogService
	ScheduleService *service.ScheduleService
	StateManager    StateManager
	Logger          *zap.Logger

	// Функция-хэндлер главного меню из основного контроллера
	HandleMainMenu func(ctx context.Context, b *bot.Bot, update *models.Update)
}
