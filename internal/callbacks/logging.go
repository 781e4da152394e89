// Package callbacks provides Eino callback handlers that report model and
// tool activity as structured log records.
package callbacks

import (
	"context"
	"log/slog"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	ub "github.com/cloudwego/eino/utils/callbacks"

	"github.com/dohr-michael/ellie/internal/sessions"
)

const maxPayloadLog = 500

// NewLoggingHandler creates a callback handler that logs model calls and tool
// invocations at debug level. A nil logger means slog.Default().
func NewLoggingHandler(logger *slog.Logger) callbacks.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	log := func(ctx context.Context, level slog.Level, msg string, attrs ...any) {
		if sid := sessions.IDFromContext(ctx); sid != "" {
			attrs = append(attrs, "session_id", sid)
		}
		logger.Log(ctx, level, msg, attrs...)
	}

	modelHandler := &ub.ModelCallbackHandler{
		OnStart: func(ctx context.Context, info *callbacks.RunInfo, input *model.CallbackInput) context.Context {
			log(ctx, slog.LevelDebug, "llm request", "model", info.Name, "messages", len(input.Messages))
			return ctx
		},
		OnEnd: func(ctx context.Context, info *callbacks.RunInfo, output *model.CallbackOutput) context.Context {
			attrs := []any{"model", info.Name}
			if output.Message != nil && output.Message.ResponseMeta != nil && output.Message.ResponseMeta.Usage != nil {
				usage := output.Message.ResponseMeta.Usage
				attrs = append(attrs, "tokens_in", usage.PromptTokens, "tokens_out", usage.CompletionTokens)
			}
			log(ctx, slog.LevelDebug, "llm response", attrs...)
			return ctx
		},
		OnError: func(ctx context.Context, info *callbacks.RunInfo, err error) context.Context {
			log(ctx, slog.LevelWarn, "llm error", "model", info.Name, "error", err)
			return ctx
		},
	}

	toolHandler := &ub.ToolCallbackHandler{
		OnStart: func(ctx context.Context, info *callbacks.RunInfo, input *tool.CallbackInput) context.Context {
			log(ctx, slog.LevelDebug, "tool call", "tool", info.Name, "args", truncatePayload(input.ArgumentsInJSON, maxPayloadLog))
			return ctx
		},
		OnEnd: func(ctx context.Context, info *callbacks.RunInfo, output *tool.CallbackOutput) context.Context {
			log(ctx, slog.LevelDebug, "tool result", "tool", info.Name, "result", truncatePayload(output.Response, maxPayloadLog))
			return ctx
		},
		OnError: func(ctx context.Context, info *callbacks.RunInfo, err error) context.Context {
			log(ctx, slog.LevelWarn, "tool error", "tool", info.Name, "error", err)
			return ctx
		},
	}

	return ub.NewHandlerHelper().
		ChatModel(modelHandler).
		Tool(toolHandler).
		Handler()
}

// Install registers the logging handler for every Eino component.
func Install(logger *slog.Logger) {
	callbacks.AppendGlobalHandlers(NewLoggingHandler(logger))
}

func truncatePayload(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "... (truncated)"
}
