package chat

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dohr-michael/ellie/internal/agent"
	"github.com/dohr-michael/ellie/internal/persona"
	"github.com/dohr-michael/ellie/internal/sessions"
)

type dispatchCall struct {
	mode  persona.Mode
	input string
}

type fakeDispatcher struct {
	calls []dispatchCall
	reply string
	errOn map[string]error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, mode persona.Mode, input string, w io.Writer) (agent.TurnResult, error) {
	f.calls = append(f.calls, dispatchCall{mode: mode, input: input})
	if err, ok := f.errOn[input]; ok {
		return agent.TurnResult{}, err
	}
	_, _ = io.WriteString(w, f.reply)
	return agent.TurnResult{Content: f.reply}, nil
}

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	return NewConsole(strings.NewReader(input), &out, NewStyle(false)), &out
}

func TestSelector_AcceptedTokens(t *testing.T) {
	tests := []struct {
		input string
		want  persona.Mode
		title string
	}{
		{"1\n", persona.Travel, "Travel Ellie"},
		{"2\n", persona.Fitness, "Fitness Ellie"},
		{"  3  \n", persona.Study, "Study Ellie"},
		{"4\n", persona.Chat, "Chat Ellie"},
	}
	for _, tt := range tests {
		console, out := newTestConsole(tt.input)
		mode, err := NewSelector(console, persona.Default()).Select()
		if err != nil {
			t.Fatalf("Select(%q): %v", tt.input, err)
		}
		if mode != tt.want {
			t.Errorf("Select(%q) = %q, want %q", tt.input, mode, tt.want)
		}
		if !strings.Contains(out.String(), "Perfect! You are now talking to "+tt.title+".") {
			t.Errorf("missing confirmation for %q in %q", tt.input, out.String())
		}
	}
}

func TestSelector_MenuText(t *testing.T) {
	console, out := newTestConsole("4\n")
	if _, err := NewSelector(console, persona.Default()).Select(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Which Ellie do you want to use today?\n\n",
		"1. ✈️ Travel Ellie\n",
		"2. 🧘‍♀️ Fitness Ellie\n",
		"3. 📚 Study Ellie\n",
		"4. 💬 Chat Ellie\n\n",
		"* If at any point you want to change Ellies just type '/mode' ",
		"Please Enter 1, 2, 3, 4, or 'quit' to QUIT: ",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("menu missing %q", want)
		}
	}
}

func TestSelector_InvalidRepromptsWithoutLimit(t *testing.T) {
	input := strings.Repeat("5\n", 20) + "travel\n0\n\n2\n"
	console, out := newTestConsole(input)
	mode, err := NewSelector(console, persona.Default()).Select()
	if err != nil {
		t.Fatal(err)
	}
	if mode != persona.Fitness {
		t.Errorf("expected fitness, got %q", mode)
	}
	if got := strings.Count(out.String(), invalidChoice); got != 23 {
		t.Errorf("expected 23 invalid-choice messages, got %d", got)
	}
	if got := strings.Count(out.String(), "Which Ellie do you want to use today?"); got != 1 {
		t.Errorf("menu should render once, got %d", got)
	}
}

func TestSelector_QuitCaseInsensitive(t *testing.T) {
	for _, input := range []string{"quit\n", "QUIT\n", " Quit \n"} {
		console, out := newTestConsole(input)
		_, err := NewSelector(console, persona.Default()).Select()
		if !errors.Is(err, ErrQuit) {
			t.Fatalf("Select(%q): expected ErrQuit, got %v", input, err)
		}
		if !strings.Contains(out.String(), goodbye) {
			t.Errorf("Select(%q): missing goodbye", input)
		}
	}
}

func TestSelector_EOFQuits(t *testing.T) {
	console, _ := newTestConsole("9\n")
	if _, err := NewSelector(console, persona.Default()).Select(); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit at end of input, got %v", err)
	}
}

func TestSelector_Idempotent(t *testing.T) {
	console, _ := newTestConsole("3\n3\n")
	sel := NewSelector(console, persona.Default())
	first, err := sel.Select()
	if err != nil {
		t.Fatal(err)
	}
	second, err := sel.Select()
	if err != nil {
		t.Fatal(err)
	}
	if first != second || first != persona.Study {
		t.Errorf("expected study twice, got %q and %q", first, second)
	}
}

func newTestLoop(input string, d Dispatcher) (*Loop, *bytes.Buffer) {
	console, out := newTestConsole(input)
	loop := NewLoop(LoopConfig{
		Console:    console,
		Selector:   NewSelector(console, persona.Default()),
		Dispatcher: d,
	})
	return loop, out
}

func TestLoop_QuitDoesNotDispatch(t *testing.T) {
	d := &fakeDispatcher{}
	loop, out := newTestLoop("1\nQuit\nnever sent\n", d)
	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(d.calls) != 0 {
		t.Fatalf("expected no dispatch, got %v", d.calls)
	}
	if !strings.Contains(out.String(), "Welcome! I'm Ellie, your AI assistant. Type 'quit' to exit.") {
		t.Error("missing welcome banner")
	}
	if !strings.HasSuffix(out.String(), "You: Goodbye!\n") {
		t.Errorf("quit should print a farewell, got %q", out.String())
	}
	if loop.Session().Status != sessions.SessionClosed {
		t.Error("session should be closed after the loop")
	}
}

func TestLoop_ModeSwitchDoesNotDispatch(t *testing.T) {
	d := &fakeDispatcher{reply: "ok"}
	loop, out := newTestLoop("1\nhello\n/MODE please\n3\nexplain recursion\nquit\n", d)
	if err := loop.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	want := []dispatchCall{
		{persona.Travel, "hello"},
		{persona.Study, "explain recursion"},
	}
	if len(d.calls) != len(want) {
		t.Fatalf("expected %d dispatches, got %v", len(want), d.calls)
	}
	for i := range want {
		if d.calls[i] != want[i] {
			t.Errorf("call %d = %+v, want %+v", i, d.calls[i], want[i])
		}
	}
	if !strings.Contains(out.String(), "Switching Ellies…") {
		t.Error("missing switch notice")
	}
	if !strings.Contains(out.String(), "\nEllie: ok\n") {
		t.Errorf("missing streamed reply in %q", out.String())
	}
	if loop.Session().Mode() != persona.Study || loop.Session().Switches() != 1 {
		t.Errorf("unexpected session state mode=%q switches=%d", loop.Session().Mode(), loop.Session().Switches())
	}
}

func TestLoop_QuitFromModeSwitchEndsProgram(t *testing.T) {
	d := &fakeDispatcher{}
	loop, _ := newTestLoop("2\n/mode\nquit\nhello\n", d)
	if err := loop.Run(context.Background()); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
	if len(d.calls) != 0 {
		t.Fatalf("expected no dispatch, got %v", d.calls)
	}
}

func TestLoop_QuitAtStart(t *testing.T) {
	loop, _ := newTestLoop("quit\n", &fakeDispatcher{})
	if err := loop.Run(context.Background()); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
	if loop.Session() != nil {
		t.Error("no session should start before a mode is chosen")
	}
}

// Blank input is never sent to the model, unlike the Python prototype which
// submitted it as an empty user message.
func TestLoop_EmptyLinesSkipped(t *testing.T) {
	d := &fakeDispatcher{}
	loop, _ := newTestLoop("4\n\n   \nhi\n", d)
	if err := loop.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(d.calls) != 1 || d.calls[0].input != "hi" {
		t.Fatalf("expected one dispatch of hi, got %v", d.calls)
	}
}

func TestLoop_FailedTurnContinues(t *testing.T) {
	d := &fakeDispatcher{
		reply: "fine",
		errOn: map[string]error{"boom": errors.New("provider down")},
	}
	console, out := newTestConsole("1\nboom\nagain\nquit\n")
	loop := NewLoop(LoopConfig{
		Console:       console,
		Selector:      NewSelector(console, persona.Default()),
		Dispatcher:    d,
		DescribeError: func(err error) string { return "described: " + err.Error() },
	})

	if err := loop.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(d.calls) != 2 {
		t.Fatalf("expected the loop to continue after an error, got %v", d.calls)
	}
	if !strings.Contains(out.String(), "[error] described: provider down") {
		t.Errorf("missing inline error in %q", out.String())
	}
	turns := loop.Session().Turns()
	if len(turns) != 2 || !turns[0].Failed || turns[1].Failed {
		t.Errorf("unexpected turns %+v", turns)
	}
}

func TestLoop_OnSessionCalled(t *testing.T) {
	var got *sessions.Session
	console, _ := newTestConsole("3\nquit\n")
	loop := NewLoop(LoopConfig{
		Console:    console,
		Selector:   NewSelector(console, persona.Default()),
		Dispatcher: &fakeDispatcher{},
		OnSession:  func(s *sessions.Session) { got = s },
	})
	if err := loop.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Mode() != persona.Study {
		t.Fatalf("OnSession not called with the study session: %+v", got)
	}
}

func TestStyle_PlainWhenDisabled(t *testing.T) {
	st := NewStyle(false)
	if st.User("You: ") != "You: " || st.Error("[error] x") != "[error] x" {
		t.Error("disabled style must not alter text")
	}
	if NewStyle(true).Assistant("") != "" {
		t.Error("empty text should stay empty")
	}
}
