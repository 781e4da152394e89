package agent

import (
	"bytes"
	"context"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/dohr-michael/ellie/internal/config"
	"github.com/dohr-michael/ellie/internal/persona"
)

// scriptedModel answers every request with the same assistant text.
type scriptedModel struct {
	reply string
	seen  [][]*schema.Message
}

func (m *scriptedModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.seen = append(m.seen, input)
	return schema.AssistantMessage(m.reply, nil), nil
}

func (m *scriptedModel) Stream(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	m.seen = append(m.seen, input)
	return schema.StreamReaderFromArray([]*schema.Message{
		schema.AssistantMessage(m.reply, nil),
	}), nil
}

func (m *scriptedModel) WithTools(_ []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return m, nil
}

func TestNew_RequiresModel(t *testing.T) {
	if _, err := New(context.Background(), nil, nil, Options{}); err == nil {
		t.Fatal("expected error for nil chat model")
	}
}

func TestAgent_DispatchEndToEnd(t *testing.T) {
	ctx := context.Background()
	m := &scriptedModel{reply: "Pack light."}

	ag, err := New(ctx, m, nil, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	d := NewDispatcher(ag, persona.Default(), config.PromptStyleSystem)
	var out bytes.Buffer
	res, err := d.Dispatch(ctx, persona.Travel, "tips for Lisbon?", &out)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if out.String() != "Pack light." || res.Content != "Pack light." {
		t.Errorf("unexpected output %q / %q", out.String(), res.Content)
	}

	if len(m.seen) == 0 {
		t.Fatal("model was never called")
	}
	var sawPersona, sawInput bool
	for _, msg := range m.seen[0] {
		if msg.Role == schema.System && msg.Content == persona.Default().Instruction(persona.Travel) {
			sawPersona = true
		}
		if msg.Role == schema.User && msg.Content == "tips for Lisbon?" {
			sawInput = true
		}
	}
	if !sawPersona || !sawInput {
		t.Errorf("model input missing persona or user text: %+v", m.seen[0])
	}
}
