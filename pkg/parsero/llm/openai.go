// Package llm constructs chat models for use inside procedure bodies.
//
// The engine itself never calls a model; procedure bodies do, through the
// ModelSet on their Context. This package only covers construction of
// OpenAI-compatible models (including OpenAI-compatible gateways, ollama
// fronts, and proxy endpoints that speak the same protocol).
package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// Config describes an OpenAI-compatible chat model endpoint.
type Config struct {
	// APIKey authenticates against the endpoint. Required.
	APIKey string
	// BaseURL overrides the endpoint, e.g. an OpenAI-compatible gateway.
	// Empty means the provider default.
	BaseURL string
	// Model is the model identifier, e.g. "gpt-4o-mini". Required.
	Model string
	// MaxTokens caps the completion length when > 0.
	MaxTokens int
	// Temperature is applied when >= 0; pass a negative value to use the
	// provider default.
	Temperature float32
}

// NewOpenAI builds a chat model from the config.
func NewOpenAI(ctx context.Context, cfg Config) (model.BaseChatModel, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm: api key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("llm: model name is required")
	}

	mc := &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
	}
	if cfg.MaxTokens > 0 {
		maxTokens := cfg.MaxTokens
		mc.MaxTokens = &maxTokens
	}
	if cfg.Temperature >= 0 {
		temperature := cfg.Temperature
		mc.Temperature = &temperature
	}

	m, err := openai.NewChatModel(ctx, mc)
	if err != nil {
		return nil, fmt.Errorf("llm: create chat model: %w", err)
	}
	return m, nil
}
