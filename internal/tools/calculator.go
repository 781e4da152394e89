package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

// CalculatorTool adds two numbers.
type CalculatorTool struct{}

// NewCalculatorTool creates a new calculator tool.
func NewCalculatorTool() *CalculatorTool {
	return &CalculatorTool{}
}

// CalculatorSpec returns the model-facing description of the calculator tool.
func CalculatorSpec() ToolSpec {
	return ToolSpec{
		Name:        "calculator",
		Description: "Add two numbers and return their sum.",
		Parameters: map[string]ParamSpec{
			"a": {
				Type:        "number",
				Description: "First number",
				Required:    true,
			},
			"b": {
				Type:        "number",
				Description: "Second number",
				Required:    true,
			},
		},
	}
}

type calculatorInput struct {
	A *float64 `json:"a"`
	B *float64 `json:"b"`
}

// Info returns the tool info for Eino registration.
func (t *CalculatorTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return toolSpecToToolInfo(CalculatorSpec()), nil
}

// InvokableRun returns "The sum of a and b is a+b".
func (t *CalculatorTool) InvokableRun(_ context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	var input calculatorInput
	if err := json.Unmarshal([]byte(argumentsInJSON), &input); err != nil {
		return "", fmt.Errorf("calculator: parse input: %w", err)
	}
	if input.A == nil || input.B == nil {
		return "", fmt.Errorf("calculator: both a and b are required")
	}

	a, b := *input.A, *input.B
	slog.Info("calculator called", "a", a, "b", b)
	return Sum(a, b), nil
}

// Sum formats the addition of a and b.
func Sum(a, b float64) string {
	return fmt.Sprintf("The sum of %s and %s is %s", formatNumber(a), formatNumber(b), formatNumber(a+b))
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var _ tool.InvokableTool = (*CalculatorTool)(nil)
