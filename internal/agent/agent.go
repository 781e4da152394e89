// Package agent bridges Ellie to the Eino ADK reasoning loop.
package agent

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
)

// Name is the ADK agent name.
const Name = "ellie"

// Options configures optional agent behavior.
type Options struct {
	MaxIterations  int // 0 = ADK default
	MaxToolRetries int // 0 = DefaultMaxToolRetries
}

// Agent owns the ADK runner and the per-turn tool recovery budget.
type Agent struct {
	runner   *adk.Runner
	recovery *ToolRecovery
}

// New creates a streaming ChatModelAgent with the given tools registered.
// The persona is not part of the agent: it travels with each turn's messages,
// so switching modes never rebuilds the agent.
func New(ctx context.Context, chatModel model.ToolCallingChatModel, tools []tool.InvokableTool, opts Options) (*Agent, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("agent: chat model is required")
	}

	recovery := NewToolRecovery(opts.MaxToolRetries)

	cfg := &adk.ChatModelAgentConfig{
		Name:          Name,
		Description:   "Ellie, a persona-switching personal assistant",
		Model:         chatModel,
		MaxIterations: opts.MaxIterations,
		Middlewares: []adk.AgentMiddleware{
			{WrapToolCall: recovery.Middleware()},
		},
	}

	// Register tools with the agent (enables ReAct loop in ADK)
	if len(tools) > 0 {
		baseTools := make([]tool.BaseTool, len(tools))
		for i, t := range tools {
			baseTools[i] = t
		}
		cfg.ToolsConfig.Tools = baseTools
	}

	chatAgent, err := adk.NewChatModelAgent(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("agent: create: %w", err)
	}

	runner := adk.NewRunner(ctx, adk.RunnerConfig{
		Agent:           chatAgent,
		EnableStreaming: true,
	})

	return &Agent{runner: runner, recovery: recovery}, nil
}

// Run starts one turn. Each call gets a fresh tool retry budget.
func (a *Agent) Run(ctx context.Context, messages []adk.Message, opts ...adk.AgentRunOption) *adk.AsyncIterator[*adk.AgentEvent] {
	a.recovery.Reset()
	return a.runner.Run(ctx, messages, opts...)
}

var _ Runner = (*Agent)(nil)
