package parsero

import (
	"context"

	"github.com/cloudwego/eino/components/model"
	einoschema "github.com/cloudwego/eino/schema"
)

// Helper procedures used across tests

// makeTrackingAction creates an Action that records its execution.
func makeTrackingAction(name string, tracker *[]string) ActionFunc {
	return func(ctx Context, s State) (State, error) {
		*tracker = append(*tracker, name)
		return s, nil
	}
}

// makeTrackingCheck creates a Check that records its execution and returns
// a fixed next step.
func makeTrackingCheck(name, next string, tracker *[]string) CheckFunc {
	return func(ctx Context, s State) (string, error) {
		*tracker = append(*tracker, name)
		return next, nil
	}
}

// setOutput creates an Action that writes one output field.
func setOutput(key string, value any) ActionFunc {
	return func(ctx Context, s State) (State, error) {
		s.Output[key] = value
		return s, nil
	}
}

// fakeModel is a canned chat model for procedure bodies under test.
type fakeModel struct {
	reply string
}

var _ model.BaseChatModel = (*fakeModel)(nil)

func (m *fakeModel) Generate(_ context.Context, _ []*einoschema.Message, _ ...model.Option) (*einoschema.Message, error) {
	return einoschema.AssistantMessage(m.reply, nil), nil
}

func (m *fakeModel) Stream(_ context.Context, _ []*einoschema.Message, _ ...model.Option) (*einoschema.StreamReader[*einoschema.Message], error) {
	return einoschema.StreamReaderFromArray([]*einoschema.Message{
		einoschema.AssistantMessage(m.reply, nil),
	}), nil
}
