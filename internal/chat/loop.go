package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/dohr-michael/ellie/internal/agent"
	"github.com/dohr-michael/ellie/internal/persona"
	"github.com/dohr-michael/ellie/internal/sessions"
)

const modeKeyword = "/mode"

// Dispatcher submits one user turn to the model.
type Dispatcher interface {
	Dispatch(ctx context.Context, mode persona.Mode, input string, w io.Writer) (agent.TurnResult, error)
}

// LoopConfig wires a Loop.
type LoopConfig struct {
	Console    *Console
	Selector   *Selector
	Dispatcher Dispatcher
	// DescribeError turns a failed turn into the text shown to the user.
	// Nil means err.Error().
	DescribeError func(error) string
	// OnSession is called once the first mode is chosen, before any turn.
	OnSession func(*sessions.Session)
}

// Loop is the interactive read-dispatch-print cycle.
type Loop struct {
	console    *Console
	selector   *Selector
	dispatcher Dispatcher
	describe   func(error) string
	onSession  func(*sessions.Session)

	session *sessions.Session
}

// NewLoop creates a Loop.
func NewLoop(cfg LoopConfig) *Loop {
	describe := cfg.DescribeError
	if describe == nil {
		describe = func(err error) string { return err.Error() }
	}
	return &Loop{
		console:    cfg.Console,
		selector:   cfg.Selector,
		dispatcher: cfg.Dispatcher,
		describe:   describe,
		onSession:  cfg.OnSession,
	}
}

// Session returns the current session, or nil before the first selection.
func (l *Loop) Session() *sessions.Session {
	return l.session
}

// Run greets the user, asks for a mode, then handles turns until the user
// types quit or input ends. It returns ErrQuit if the user quits from the
// mode selector. A failed turn is reported inline and does not stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	l.greet()

	mode, err := l.selector.Select()
	if err != nil {
		return err
	}
	l.session = sessions.New(mode)
	defer l.session.Close()
	if l.onSession != nil {
		l.onSession(l.session)
	}
	ctx = sessions.ContextWithID(ctx, l.session.ID)
	slog.Debug("session started", "session_id", l.session.ID, "mode", mode)

	st := l.console.Style()
	for {
		l.console.Print("\n")
		input, err := l.console.Prompt(st.User("You: "))
		if errors.Is(err, io.EOF) {
			l.console.Println("")
			return nil
		}
		if err != nil {
			return err
		}

		lower := strings.ToLower(input)
		switch {
		case input == "":
			continue
		case lower == quitKeyword:
			l.console.Println("Goodbye!")
			return nil
		case strings.HasPrefix(lower, modeKeyword):
			l.console.Println("\nSwitching Ellies…\n")
			mode, err := l.selector.Select()
			if err != nil {
				return err
			}
			l.session.SetMode(mode)
			slog.Debug("mode switched", "session_id", l.session.ID, "mode", mode)
			continue
		}

		l.turn(ctx, input)
	}
}

func (l *Loop) turn(ctx context.Context, input string) {
	st := l.console.Style()
	l.console.Print("\n" + st.Assistant("Ellie: "))

	res, err := l.dispatcher.Dispatch(ctx, l.session.Mode(), input, l.console.Out())
	l.console.Println("")
	if err != nil {
		slog.Error("turn failed", "session_id", l.session.ID, "mode", l.session.Mode(), "error", err)
		l.console.Println(st.Error("[error] " + l.describe(err)))
		l.session.RecordTurn(res.ToolCalls, true)
		return
	}
	l.session.RecordTurn(res.ToolCalls, false)
}

func (l *Loop) greet() {
	st := l.console.Style()
	l.console.Println("\n\n" + st.Heading("Welcome! I'm Ellie, your AI assistant.") + " Type 'quit' to exit.")
	l.console.Println("Type '/mode' at any time to switch which Ellie you’re using.")
	l.console.Println("Lets Chat!")
}
