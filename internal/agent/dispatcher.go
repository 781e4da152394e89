package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"

	"github.com/dohr-michael/ellie/internal/config"
	"github.com/dohr-michael/ellie/internal/persona"
)

// Runner starts one agent turn and yields its events.
type Runner interface {
	Run(ctx context.Context, messages []adk.Message, opts ...adk.AgentRunOption) *adk.AsyncIterator[*adk.AgentEvent]
}

// TurnResult summarizes a completed turn.
type TurnResult struct {
	Content   string   // assistant text printed during the turn
	ToolCalls []string // tools invoked, in order
}

// Dispatcher combines the active persona with user input, submits it to the
// agent, and streams assistant text to a writer.
type Dispatcher struct {
	runner      Runner
	personas    *persona.Registry
	promptStyle string
}

// NewDispatcher creates a Dispatcher. An empty promptStyle means system.
func NewDispatcher(runner Runner, personas *persona.Registry, promptStyle string) *Dispatcher {
	if promptStyle == "" {
		promptStyle = config.PromptStyleSystem
	}
	return &Dispatcher{
		runner:      runner,
		personas:    personas,
		promptStyle: promptStyle,
	}
}

// Messages builds the outbound message list for one turn.
// In system style the persona is a distinct system message; in inline style
// it is prepended to the user text as "<persona>\n\nUser: <input>".
func (d *Dispatcher) Messages(mode persona.Mode, input string) []adk.Message {
	instruction := d.personas.Instruction(mode)
	if d.promptStyle == config.PromptStyleInline {
		return []adk.Message{
			schema.UserMessage(instruction + "\n\nUser: " + input),
		}
	}
	return []adk.Message{
		schema.SystemMessage(instruction),
		schema.UserMessage(input),
	}
}

// Dispatch runs one turn and writes every assistant fragment to w as it
// arrives. Tool events are not printed. The first agent error ends the turn.
func (d *Dispatcher) Dispatch(ctx context.Context, mode persona.Mode, input string, w io.Writer) (TurnResult, error) {
	var result TurnResult
	var content strings.Builder

	iter := d.runner.Run(ctx, d.Messages(mode, input))
	for {
		event, ok := iter.Next()
		if !ok {
			break
		}

		if event.Err != nil {
			result.Content = content.String()
			return result, fmt.Errorf("agent: %w", event.Err)
		}

		if event.Output == nil || event.Output.MessageOutput == nil {
			continue
		}
		mv := event.Output.MessageOutput

		if mv.Role == schema.Tool {
			if mv.ToolName != "" {
				result.ToolCalls = append(result.ToolCalls, mv.ToolName)
			}
			// Release the stream without reading it.
			if mv.IsStreaming && mv.MessageStream != nil {
				mv.MessageStream.Close()
			}
			continue
		}

		if mv.IsStreaming {
			if mv.MessageStream == nil {
				continue
			}
			if err := writeStream(mv.MessageStream, w, &content); err != nil {
				result.Content = content.String()
				return result, fmt.Errorf("agent stream: %w", err)
			}
			continue
		}

		if mv.Message != nil && mv.Message.Content != "" {
			if _, err := io.WriteString(w, mv.Message.Content); err != nil {
				return result, err
			}
			content.WriteString(mv.Message.Content)
		}
	}

	result.Content = content.String()
	slog.Debug("turn complete", "mode", mode, "chars", content.Len(), "tools", result.ToolCalls)
	return result, nil
}

func writeStream(stream *schema.StreamReader[*schema.Message], w io.Writer, content *strings.Builder) error {
	defer stream.Close()
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if chunk == nil || chunk.Content == "" {
			continue
		}
		if _, err := io.WriteString(w, chunk.Content); err != nil {
			return err
		}
		content.WriteString(chunk.Content)
	}
}
