package screen_test

import (
	"encoding/json"
	"testing"

	"github.com/ERRORIK404/calculator_screen/internal/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_JSON(t *testing.T) {
	event := screen.DivisionByZeroError
	data, err := json.Marshal(screen.State{Display: "1/0", Event: &event})
	require.NoError(t, err)
	assert.JSONEq(t, `{"display":"1/0","history_open":false,"histories":[],"event":"division_by_zero"}`, string(data))

	var state screen.State
	require.NoError(t, json.Unmarshal(data, &state))
	require.NotNil(t, state.Event)
	assert.Equal(t, screen.DivisionByZeroError, *state.Event)

	data, err = json.Marshal(screen.State{Display: "7"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "event")
}

func TestViewEvent_UnmarshalUnknown(t *testing.T) {
	var e screen.ViewEvent
	assert.Error(t, e.UnmarshalText([]byte("boom")))
	assert.Equal(t, "ViewEvent(9)", screen.ViewEvent(9).String())
}
