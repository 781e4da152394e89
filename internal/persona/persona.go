// Package persona holds the closed set of Ellie modes and the instruction text
// each one sends to the model.
package persona

import (
	"fmt"
	"strings"
)

// Mode identifies one Ellie persona.
type Mode string

const (
	Travel  Mode = "travel"
	Fitness Mode = "fitness"
	Study   Mode = "study"
	Chat    Mode = "chat"
)

// Modes returns every mode in menu order.
func Modes() []Mode {
	return []Mode{Travel, Fitness, Study, Chat}
}

// Valid reports whether m belongs to the closed set of modes.
func (m Mode) Valid() bool {
	switch m {
	case Travel, Fitness, Study, Chat:
		return true
	}
	return false
}

// FromChoice maps a menu token ("1".."4") to its mode.
func FromChoice(choice string) (Mode, bool) {
	switch choice {
	case "1":
		return Travel, true
	case "2":
		return Fitness, true
	case "3":
		return Study, true
	case "4":
		return Chat, true
	}
	return "", false
}

// Persona is the immutable description of a mode.
type Persona struct {
	Mode        Mode
	Title       string
	Icon        string
	Instruction string
}

const travelInstruction = `You are Travel Ellie, an organized, fun, practical travel planner. ` +
	`You help with all things trips: flights, itineraries, packing, budgets, and recommendations. ` +
	`You speak clearly and specifically, and you like making checklists, day plans, and night plans. ` +
	`You can access real-time information by calling the ` + "`web_search`" + ` tool whenever ` +
	`the user asks about locations, activities, flights, events, weather, or news. ` +
	`Always use tools when needed.`

const fitnessInstruction = `You are Fitness Ellie, a supportive and realistic fitness and wellness coach. ` +
	`You help with workouts, nutrition, routines, habit-building, and period-aware training. ` +
	`Your tone is never harsh, always big-sister encouraging. ` +
	`You can use the ` + "`web_search`" + ` tool to look up exercises, fitness research, ` +
	`nutrition info, or trends when helpful. Always use tools if the user asks ` +
	`for latest data or factual information.`

const studyInstruction = `You are Study Ellie, a focused but kind study coach. ` +
	`You help with breaking down assignments, creating study schedules, and explaining concepts. ` +
	`You know the user is balancing life and studies, so keep things calm and structured. ` +
	`Use the ` + "`web_search`" + ` tool for researching topics, definitions, scholarly info, ` +
	`news, or anything requiring external information.`

const chatInstruction = `You are Chat Ellie, a warm, emotionally intelligent friend. ` +
	`You help the user process feelings, relationships, decisions, and everyday life. ` +
	`You validate emotions, ask gentle questions, and avoid sounding robotic. ` +
	`If the user asks for factual information, news, or anything requiring ` +
	`external knowledge, you MUST call the ` + "`web_search`" + ` tool before answering.`

func builtin() map[Mode]Persona {
	return map[Mode]Persona{
		Travel:  {Mode: Travel, Title: "Travel Ellie", Icon: "✈️", Instruction: travelInstruction},
		Fitness: {Mode: Fitness, Title: "Fitness Ellie", Icon: "🧘‍♀️", Instruction: fitnessInstruction},
		Study:   {Mode: Study, Title: "Study Ellie", Icon: "📚", Instruction: studyInstruction},
		Chat:    {Mode: Chat, Title: "Chat Ellie", Icon: "💬", Instruction: chatInstruction},
	}
}

// Registry maps every mode to its persona. It is never mutated after
// construction and is safe to share.
type Registry struct {
	personas map[Mode]Persona
}

// Default returns the registry of built-in personas.
func Default() *Registry {
	return &Registry{personas: builtin()}
}

// Get returns the persona for m. An unknown mode is a programming error:
// the selector only ever yields modes from Modes().
func (r *Registry) Get(m Mode) Persona {
	p, ok := r.personas[m]
	if !ok {
		panic(fmt.Sprintf("persona: unknown mode %q", string(m)))
	}
	return p
}

// Instruction returns the instruction text for m.
func (r *Registry) Instruction(m Mode) string {
	return r.Get(m).Instruction
}

// Title returns the display title for m, e.g. "Travel Ellie".
func (r *Registry) Title(m Mode) string {
	return r.Get(m).Title
}

// All returns the personas in menu order.
func (r *Registry) All() []Persona {
	modes := Modes()
	out := make([]Persona, 0, len(modes))
	for _, m := range modes {
		out = append(out, r.Get(m))
	}
	return out
}

// Summary returns the first sentence of the instruction, for listings.
func (p Persona) Summary() string {
	s := strings.TrimSpace(p.Instruction)
	if i := strings.Index(s, ". "); i >= 0 {
		return s[:i+1]
	}
	return s
}
