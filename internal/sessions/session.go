// Package sessions tracks the state of one interactive chat run.
package sessions

import (
	"time"

	"github.com/google/uuid"

	"github.com/dohr-michael/ellie/internal/persona"
)

// SessionStatus represents the lifecycle state of a session.
type SessionStatus string

const (
	SessionActive SessionStatus = "active"
	SessionClosed SessionStatus = "closed"
)

// Turn records one dispatched user message. Content is not retained.
type Turn struct {
	Mode      persona.Mode
	ToolCalls []string
	Failed    bool
	At        time.Time
}

// Session is owned by the chat loop and only touched from its goroutine.
// The current mode is its single piece of mutable conversational state.
type Session struct {
	ID        string
	CreatedAt time.Time
	Status    SessionStatus

	mode     persona.Mode
	switches int
	turns    []Turn
}

// New starts a session in the given mode.
func New(mode persona.Mode) *Session {
	return &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Status:    SessionActive,
		mode:      mode,
	}
}

// Mode returns the current mode.
func (s *Session) Mode() persona.Mode {
	return s.mode
}

// SetMode replaces the current mode. Reselecting the same mode is allowed
// and still counts as a switch.
func (s *Session) SetMode(mode persona.Mode) {
	s.mode = mode
	s.switches++
}

// Switches returns how many times the mode was changed after start.
func (s *Session) Switches() int {
	return s.switches
}

// RecordTurn appends a turn outcome for the current mode.
func (s *Session) RecordTurn(toolCalls []string, failed bool) {
	s.turns = append(s.turns, Turn{
		Mode:      s.mode,
		ToolCalls: toolCalls,
		Failed:    failed,
		At:        time.Now(),
	})
}

// Turns returns a copy of the recorded turns.
func (s *Session) Turns() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Close marks the session closed.
func (s *Session) Close() {
	s.Status = SessionClosed
}
