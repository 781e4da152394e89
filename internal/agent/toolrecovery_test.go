package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/cloudwego/eino/compose"
)

// fakeEndpoint returns a canned result.
func fakeEndpoint(result string) compose.InvokableToolEndpoint {
	return func(_ context.Context, _ *compose.ToolInput) (*compose.ToolOutput, error) {
		return &compose.ToolOutput{Result: result}, nil
	}
}

// failingEndpoint always returns the given error.
func failingEndpoint(err error) compose.InvokableToolEndpoint {
	return func(_ context.Context, _ *compose.ToolInput) (*compose.ToolOutput, error) {
		return nil, err
	}
}

func TestToolRecovery_PassesSuccessThrough(t *testing.T) {
	wrapped := NewToolRecovery(0).Middleware().Invokable(fakeEndpoint("The sum of 2 and 3 is 5"))

	out, err := wrapped(context.Background(), &compose.ToolInput{Name: "calculator"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Result != "The sum of 2 and 3 is 5" {
		t.Fatalf("unexpected result %q", out.Result)
	}
}

func TestToolRecovery_ConvertsErrorToResult(t *testing.T) {
	wrapped := NewToolRecovery(3).Middleware().Invokable(failingEndpoint(errors.New("calculator: both a and b are required")))

	out, err := wrapped(context.Background(), &compose.ToolInput{Name: "calculator"})
	if err != nil {
		t.Fatalf("expected nil error on first attempt, got: %v", err)
	}
	if !strings.Contains(out.Result, "[TOOL_ERROR]") {
		t.Fatalf("expected TOOL_ERROR marker, got: %s", out.Result)
	}
	if !strings.Contains(out.Result, "attempt 1/3") {
		t.Fatalf("expected attempt 1/3, got: %s", out.Result)
	}
	if !strings.Contains(out.Result, "both a and b are required") {
		t.Fatalf("expected error text in result, got: %s", out.Result)
	}
}

func TestToolRecovery_PropagatesAfterMaxRetries(t *testing.T) {
	origErr := errors.New("parse input")
	wrapped := NewToolRecovery(2).Middleware().Invokable(failingEndpoint(origErr))
	input := &compose.ToolInput{Name: "web_search"}

	if _, err := wrapped(context.Background(), input); err != nil {
		t.Fatalf("attempt 1: expected recovery, got error: %v", err)
	}
	_, err := wrapped(context.Background(), input)
	if !errors.Is(err, origErr) {
		t.Fatalf("attempt 2: expected original error, got: %v", err)
	}
}

func TestToolRecovery_TracksPerToolName(t *testing.T) {
	wrapped := NewToolRecovery(2).Middleware().Invokable(failingEndpoint(errors.New("fail")))

	if _, err := wrapped(context.Background(), &compose.ToolInput{Name: "calculator"}); err != nil {
		t.Fatalf("calculator attempt 1: %v", err)
	}
	if _, err := wrapped(context.Background(), &compose.ToolInput{Name: "calculator"}); err == nil {
		t.Fatal("calculator attempt 2: expected propagated error")
	}

	out, err := wrapped(context.Background(), &compose.ToolInput{Name: "web_search"})
	if err != nil {
		t.Fatalf("web_search: expected recovery, got error: %v", err)
	}
	if !strings.Contains(out.Result, "[TOOL_ERROR]") {
		t.Fatal("web_search: expected TOOL_ERROR marker")
	}
}

func TestToolRecovery_ResetStartsFreshBudget(t *testing.T) {
	recovery := NewToolRecovery(2)
	wrapped := recovery.Middleware().Invokable(failingEndpoint(errors.New("fail")))
	input := &compose.ToolInput{Name: "calculator"}

	if _, err := wrapped(context.Background(), input); err != nil {
		t.Fatal(err)
	}
	recovery.Reset()
	out, err := wrapped(context.Background(), input)
	if err != nil {
		t.Fatalf("expected recovery after reset, got %v", err)
	}
	if !strings.Contains(out.Result, "attempt 1/2") {
		t.Fatalf("expected counter to restart, got %s", out.Result)
	}
}

func TestToolRecovery_SuccessClearsCounter(t *testing.T) {
	recovery := NewToolRecovery(2)
	mw := recovery.Middleware()
	failing := mw.Invokable(failingEndpoint(errors.New("fail")))
	ok := mw.Invokable(fakeEndpoint("done"))
	input := &compose.ToolInput{Name: "calculator"}

	if _, err := failing(context.Background(), input); err != nil {
		t.Fatal(err)
	}
	if _, err := ok(context.Background(), input); err != nil {
		t.Fatal(err)
	}
	if _, err := failing(context.Background(), input); err != nil {
		t.Fatalf("a success should reset the consecutive failure count, got %v", err)
	}
}

func TestToolRecovery_DefaultMaxRetries(t *testing.T) {
	wrapped := NewToolRecovery(0).Middleware().Invokable(failingEndpoint(errors.New("fail")))
	input := &compose.ToolInput{Name: "test"}

	for i := 0; i < DefaultMaxToolRetries-1; i++ {
		out, err := wrapped(context.Background(), input)
		if err != nil {
			t.Fatalf("attempt %d: expected recovery, got error: %v", i+1, err)
		}
		if !strings.Contains(out.Result, fmt.Sprintf("attempt %d/%d", i+1, DefaultMaxToolRetries)) {
			t.Fatalf("attempt %d: wrong attempt number in result: %s", i+1, out.Result)
		}
	}

	if _, err := wrapped(context.Background(), input); err == nil {
		t.Fatal("expected propagated error after max retries")
	}
}

func TestToolRecovery_ConcurrentSafe(t *testing.T) {
	recovery := NewToolRecovery(100)
	wrapped := recovery.Middleware().Invokable(failingEndpoint(errors.New("fail")))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _ = wrapped(context.Background(), &compose.ToolInput{Name: fmt.Sprintf("tool_%d", n%5)})
			if n%10 == 0 {
				recovery.Reset()
			}
		}(i)
	}
	wg.Wait()
}

func TestToolRecovery_EmptyResultGuard(t *testing.T) {
	wrapped := NewToolRecovery(0).Middleware().Invokable(fakeEndpoint(""))

	out, err := wrapped(context.Background(), &compose.ToolInput{Name: "web_search"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Result != "[OK]" {
		t.Fatalf("expected [OK] for empty result, got %q", out.Result)
	}
}

func TestFormatToolError(t *testing.T) {
	msg := formatToolError("calculator", 1, 3, errors.New("calculator: parse input: bad json"))
	expected := `[TOOL_ERROR] calculator failed (attempt 1/3): calculator: parse input: bad json
Check the arguments and call the tool again, or tell the user what went wrong.`
	if msg != expected {
		t.Fatalf("unexpected message:\ngot:  %s\nwant: %s", msg, expected)
	}
}
