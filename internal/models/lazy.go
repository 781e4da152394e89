package models

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// lazyModel defers provider creation, and so credential checks, to the
// first model call.
type lazyModel struct {
	registry *Registry
	name     string
	tools    []*schema.ToolInfo
}

// Lazy returns a chat model that resolves the named provider from registry
// on first use. An empty name means the registry default.
func Lazy(registry *Registry, name string) model.ToolCallingChatModel {
	if name == "" {
		name = registry.DefaultName()
	}
	return &lazyModel{registry: registry, name: name}
}

func (m *lazyModel) resolve(ctx context.Context) (model.ToolCallingChatModel, error) {
	if m.name == "" {
		return nil, fmt.Errorf("no default model configured")
	}
	inner, err := m.registry.Get(ctx, m.name)
	if err != nil {
		return nil, fmt.Errorf("model %q: %w", m.name, err)
	}
	if len(m.tools) == 0 {
		return inner, nil
	}
	return inner.WithTools(m.tools)
}

// Generate resolves the provider and delegates.
func (m *lazyModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	inner, err := m.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return inner.Generate(ctx, input, opts...)
}

// Stream resolves the provider and delegates.
func (m *lazyModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	inner, err := m.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return inner.Stream(ctx, input, opts...)
}

// WithTools returns a copy bound to tools. Binding happens on resolve.
func (m *lazyModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	bound := make([]*schema.ToolInfo, len(tools))
	copy(bound, tools)
	return &lazyModel{registry: m.registry, name: m.name, tools: bound}, nil
}

// IsCallbacksEnabled reports that the wrapped drivers emit their own callbacks.
func (m *lazyModel) IsCallbacksEnabled() bool {
	return true
}
