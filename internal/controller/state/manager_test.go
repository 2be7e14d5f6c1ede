package state

import (
	"testing"
	"time"

	"github.com/Antoshhka/dogcare_bot/internal/controller/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_States(t *testing.T) {
	sm := NewManager()

	assert.Equal(t, StateNone, sm.GetState(1))

	sm.SetState(1, StateEnteringDogName)
	assert.Equal(t, StateEnteringDogName, sm.GetState(1))
	assert.Equal(t, StateNone, sm.GetState(2))

	sm.ClearState(1)
	assert.Equal(t, StateNone, sm.GetState(1))
}

func TestManager_Data(t *testing.T) {
	sm := NewManager()

	_, ok := sm.GetData(1, "dog_name")
	assert.False(t, ok)

	sm.SetData(1, "dog_name", "Рекс")
	value, ok := sm.GetData(1, "dog_name")
	require.True(t, ok)
	assert.Equal(t, "Рекс", value)

	all := sm.GetAllData(1)
	assert.Equal(t, map[string]interface{}{"dog_name": "Рекс"}, all)

	// Копия не влияет на хранимые данные
	all["dog_name"] = "Белла"
	value, _ = sm.GetData(1, "dog_name")
	assert.Equal(t, "Рекс", value)
}

func TestManager_Flow(t *testing.T) {
	sm := NewManager()
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, sm.GetFlow(1))

	f := flow.New(date)
	sm.SetFlow(1, f)
	assert.Same(t, f, sm.GetFlow(1))

	sm.ClearFlow(1)
	assert.Nil(t, sm.GetFlow(1))
}

func TestManager_ClearFlowKeepsDialogState(t *testing.T) {
	sm := NewManager()
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	sm.SetState(1, StateEnteringInviteCode)
	sm.SetFlow(1, flow.New(date))

	sm.ClearFlow(1)

	assert.Nil(t, sm.GetFlow(1))
	assert.Equal(t, StateEnteringInviteCode, sm.GetState(1))
}

func TestManager_ClearStateDropsEverything(t *testing.T) {
	sm := NewManager()
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	sm.SetState(1, StateEnteringDescription)
	sm.SetData(1, "key", "value")
	sm.SetFlow(1, flow.New(date))

	sm.ClearState(1)

	assert.Equal(t, StateNone, sm.GetState(1))
	assert.Nil(t, sm.GetFlow(1))
	_, ok := sm.GetData(1, "key")
	assert.False(t, ok)
}

func TestManager_ResetStateKeepsFlow(t *testing.T) {
	sm := NewManager()
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	f := flow.New(date)
	sm.SetFlow(1, f)
	sm.SetState(1, StateEnteringCustomTime)

	sm.SetState(1, StateNone)

	assert.Same(t, f, sm.GetFlow(1))
}
