package handlers

import (
	"github.com/Antoshhka/dogcare_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Antoshhka/dogcare_bot/internal/controller/state"
	"github.com/Antoshhka/dogcare_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService     *service.UserService
	familyService   *service.FamilyService
	dogService      *service.DogService
	scheduleService *service.ScheduleService
	stateManager    *state.Manager
	logger          *zap.Logger

	// Общая сумка зависимостей callback-обработчиков, выставляется контроллером
	cb *callbacktypes.Handler
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	familyService *service.FamilyService,
	dogService *service.DogService,
	scheduleService *service.ScheduleService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:     userService,
		familyService:   familyService,
		dogService:      dogService,
		scheduleService: scheduleService,
		stateManager:    stateManager,
		logger:          logger,
	}
}

// SetCallbackHandler связывает команды с зависимостями callback-обработчиков
func (h *Handlers) SetCallbackHandler(cb *callbacktypes.Handler) {
	h.cb = cb
}
