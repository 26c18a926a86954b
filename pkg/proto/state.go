package proto

import (
	"fmt"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ERRORIK404/calculator_screen/internal/screen"
	"github.com/ERRORIK404/calculator_screen/pkg/history"
)

// StateToStruct encodes a screen state as the Struct the service returns.
func StateToStruct(state screen.State) (*structpb.Struct, error) {
	histories := make([]any, 0, len(state.Histories))
	for _, item := range state.Histories {
		histories = append(histories, map[string]any{
			"expression": item.Expression,
			"result":     strconv.Itoa(item.Result),
		})
	}

	fields := map[string]any{
		"display":      state.Display,
		"history_open": state.HistoryOpen,
		"histories":    histories,
	}
	if state.Event != nil {
		fields["event"] = state.Event.String()
	}
	return structpb.NewStruct(fields)
}

// StateFromStruct decodes what StateToStruct produced.
func StateFromStruct(s *structpb.Struct) (screen.State, error) {
	var state screen.State
	fields := s.GetFields()

	state.Display = fields["display"].GetStringValue()
	state.HistoryOpen = fields["history_open"].GetBoolValue()

	state.Histories = []history.Item{}
	for _, v := range fields["histories"].GetListValue().GetValues() {
		item := v.GetStructValue().GetFields()
		result, err := strconv.Atoi(item["result"].GetStringValue())
		if err != nil {
			return state, fmt.Errorf("failed to decode history result: %w", err)
		}
		state.Histories = append(state.Histories, history.Item{
			Expression: item["expression"].GetStringValue(),
			Result:     result,
		})
	}

	if v, ok := fields["event"]; ok {
		var event screen.ViewEvent
		if err := event.UnmarshalText([]byte(v.GetStringValue())); err != nil {
			return state, fmt.Errorf("failed to decode state: %w", err)
		}
		state.Event = &event
	}
	return state, nil
}
