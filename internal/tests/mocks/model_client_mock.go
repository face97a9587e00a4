package mocks

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"ollamachat/internal/llm/ollama"
)

type ModelClientMock struct {
	ListModelsFunc func(ctx context.Context) ([]string, error)
	GenerateFunc   func(ctx context.Context, model, prompt string) (*schema.StreamReader[ollama.Fragment], error)
	ChatFunc       func(ctx context.Context, model string, messages []*schema.Message) (*schema.StreamReader[ollama.Fragment], error)
}

func (m *ModelClientMock) ListModels(ctx context.Context) ([]string, error) {
	if m.ListModelsFunc != nil {
		return m.ListModelsFunc(ctx)
	}
	return []string{}, nil
}

func (m *ModelClientMock) Generate(ctx context.Context, model, prompt string) (*schema.StreamReader[ollama.Fragment], error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, model, prompt)
	}
	return StreamOf(ollama.Fragment{Done: true}), nil
}

func (m *ModelClientMock) Chat(ctx context.Context, model string, messages []*schema.Message) (*schema.StreamReader[ollama.Fragment], error) {
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, model, messages)
	}
	return StreamOf(ollama.Fragment{Done: true}), nil
}

// StreamOf returns a finished stream yielding frags in order.
func StreamOf(frags ...ollama.Fragment) *schema.StreamReader[ollama.Fragment] {
	return schema.StreamReaderFromArray(frags)
}
