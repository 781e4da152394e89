package sessions

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/dohr-michael/ellie/internal/persona"
)

func TestNew(t *testing.T) {
	s := New(persona.Travel)
	if _, err := uuid.Parse(s.ID); err != nil {
		t.Errorf("expected uuid id, got %q", s.ID)
	}
	if s.Mode() != persona.Travel {
		t.Errorf("expected travel, got %q", s.Mode())
	}
	if s.Status != SessionActive {
		t.Errorf("expected active, got %q", s.Status)
	}
	if s.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if New(persona.Travel).ID == s.ID {
		t.Error("session ids must be unique")
	}
}

func TestSetMode(t *testing.T) {
	s := New(persona.Chat)
	s.SetMode(persona.Study)
	s.SetMode(persona.Study)
	if s.Mode() != persona.Study {
		t.Errorf("expected study, got %q", s.Mode())
	}
	if s.Switches() != 2 {
		t.Errorf("expected 2 switches, got %d", s.Switches())
	}
}

func TestRecordTurn(t *testing.T) {
	s := New(persona.Fitness)
	s.RecordTurn([]string{"web_search"}, false)
	s.SetMode(persona.Chat)
	s.RecordTurn(nil, true)

	turns := s.Turns()
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Mode != persona.Fitness || turns[0].ToolCalls[0] != "web_search" || turns[0].Failed {
		t.Errorf("unexpected first turn %+v", turns[0])
	}
	if turns[1].Mode != persona.Chat || !turns[1].Failed {
		t.Errorf("unexpected second turn %+v", turns[1])
	}

	turns[0].Mode = persona.Study
	if s.Turns()[0].Mode != persona.Fitness {
		t.Error("Turns must return a copy")
	}
}

func TestClose(t *testing.T) {
	s := New(persona.Chat)
	s.Close()
	if s.Status != SessionClosed {
		t.Errorf("expected closed, got %q", s.Status)
	}
}

func TestContextID(t *testing.T) {
	if IDFromContext(context.Background()) != "" {
		t.Error("expected empty id on bare context")
	}
	ctx := ContextWithID(context.Background(), "abc")
	if IDFromContext(ctx) != "abc" {
		t.Errorf("expected abc, got %q", IDFromContext(ctx))
	}
}
