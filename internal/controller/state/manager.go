package state

import (
	"sync"

	"github.com/Antoshhka/dogcare_bot/internal/controller/flow"
)

// Manager управляет состояниями пользователей
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
	}
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState устанавливает состояние пользователя
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData := sm.ensure(telegramID)
	userData.State = state

	// Пустая запись без мастера и данных не нужна
	if state == StateNone && userData.Flow == nil && len(userData.Data) == 0 {
		delete(sm.states, telegramID)
	}
}

// GetFlow получает активный мастер создания расписания пользователя
func (sm *Manager) GetFlow(telegramID int64) *flow.Flow {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.Flow
	}
	return nil
}

// SetFlow привязывает мастер создания расписания к пользователю
func (sm *Manager) SetFlow(telegramID int64, f *flow.Flow) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.ensure(telegramID).Flow = f
}

// ClearFlow завершает мастер, не трогая остальные данные диалога
func (sm *Manager) ClearFlow(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if userData, exists := sm.states[telegramID]; exists {
		userData.Flow = nil
		if userData.State == StateNone && len(userData.Data) == 0 {
			delete(sm.states, telegramID)
		}
	}
}

// GetData получает временные данные пользователя
func (sm *Manager) GetData(telegramID int64, key string) (interface{}, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		value, ok := userData.Data[key]
		return value, ok
	}
	return nil, false
}

// SetData устанавливает временные данные пользователя
func (sm *Manager) SetData(telegramID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.ensure(telegramID).Data[key] = value
}

// ClearState очищает состояние, мастер и данные пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

// GetAllData получает все временные данные пользователя
func (sm *Manager) GetAllData(telegramID int64) map[string]interface{} {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		// Возвращаем копию, чтобы избежать race condition
		dataCopy := make(map[string]interface{})
		for k, v := range userData.Data {
			dataCopy[k] = v
		}
		return dataCopy
	}
	return nil
}

// ensure возвращает запись пользователя, создавая её при необходимости.
// Вызывается только под write-lock.
func (sm *Manager) ensure(telegramID int64) *UserData {
	if _, exists := sm.states[telegramID]; !exists {
		sm.states[telegramID] = &UserData{
			State: StateNone,
			Data:  make(map[string]interface{}),
		}
	}
	return sm.states[telegramID]
}
