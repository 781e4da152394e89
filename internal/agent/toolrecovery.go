package agent

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cloudwego/eino/compose"
)

// DefaultMaxToolRetries is how many failures a tool may have in one turn
// before its error is propagated and the turn ends.
const DefaultMaxToolRetries = 3

// ToolRecovery turns tool errors into textual tool results so the model can
// correct its arguments. Failures are counted per tool name and the counters
// are cleared at the start of every turn and after a successful call.
type ToolRecovery struct {
	maxRetries int

	mu     sync.Mutex
	counts map[string]int
}

// NewToolRecovery creates a recovery middleware. maxRetries <= 0 means
// DefaultMaxToolRetries.
func NewToolRecovery(maxRetries int) *ToolRecovery {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxToolRetries
	}
	return &ToolRecovery{
		maxRetries: maxRetries,
		counts:     make(map[string]int),
	}
}

// Reset clears every failure counter.
func (r *ToolRecovery) Reset() {
	r.mu.Lock()
	clear(r.counts)
	r.mu.Unlock()
}

// Middleware returns the Eino tool middleware.
func (r *ToolRecovery) Middleware() compose.ToolMiddleware {
	return compose.ToolMiddleware{
		Invokable: func(next compose.InvokableToolEndpoint) compose.InvokableToolEndpoint {
			return func(ctx context.Context, input *compose.ToolInput) (*compose.ToolOutput, error) {
				out, err := next(ctx, input)
				if err == nil {
					r.mu.Lock()
					delete(r.counts, input.Name)
					r.mu.Unlock()
					// Chat completion APIs reject tool messages with empty content.
					if out != nil && out.Result == "" {
						out.Result = "[OK]"
					}
					return out, nil
				}

				r.mu.Lock()
				r.counts[input.Name]++
				count := r.counts[input.Name]
				r.mu.Unlock()

				if count >= r.maxRetries {
					slog.Error("tool failed, retry budget exhausted",
						"tool", input.Name,
						"attempt", count,
						"max", r.maxRetries,
						"error", err,
					)
					return nil, err
				}

				slog.Warn("tool failed, returning error to model",
					"tool", input.Name,
					"attempt", count,
					"max", r.maxRetries,
					"error", err,
				)
				return &compose.ToolOutput{Result: formatToolError(input.Name, count, r.maxRetries, err)}, nil
			}
		},
	}
}

// formatToolError builds the textual error message sent back to the model.
func formatToolError(toolName string, attempt, maxRetries int, err error) string {
	return fmt.Sprintf(
		`[TOOL_ERROR] %s failed (attempt %d/%d): %s
Check the arguments and call the tool again, or tell the user what went wrong.`,
		toolName, attempt, maxRetries, err,
	)
}
