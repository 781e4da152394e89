package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"

	"github.com/dohr-michael/ellie/internal/config"
)

// Drivers lists the supported provider drivers.
var Drivers = []string{"openai", "anthropic", "gemini", "mistral", "ollama"}

// CreateModel creates a model.ToolCallingChatModel from a provider config.
func CreateModel(ctx context.Context, cfg config.ProviderConfig) (model.ToolCallingChatModel, error) {
	driver := strings.ToLower(cfg.Driver)
	switch driver {
	case "openai", "anthropic", "gemini", "mistral":
		auth, err := ResolveAuth(cfg)
		if err != nil {
			return nil, fmt.Errorf("resolve auth: %w", err)
		}
		switch driver {
		case "openai":
			return NewOpenAI(ctx, cfg, auth)
		case "anthropic":
			return NewAnthropic(ctx, cfg, auth)
		case "gemini":
			return NewGemini(ctx, cfg, auth)
		default:
			return NewMistral(ctx, cfg, auth)
		}
	case "ollama":
		return NewOllama(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown driver: %s", cfg.Driver)
	}
}

// optionFloat32 reads a numeric option as a float32 pointer.
// JSON numbers decode as float64.
func optionFloat32(opts map[string]any, key string) *float32 {
	v, ok := opts[key].(float64)
	if !ok {
		return nil
	}
	f := float32(v)
	return &f
}
