package chat

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dohr-michael/ellie/internal/persona"
)

const (
	quitKeyword   = "quit"
	selectPrompt  = "Please Enter 1, 2, 3, 4, or 'quit' to QUIT: "
	invalidChoice = "Invalid choice, please type 1, 2, 3, 4 or quit."
	goodbye       = "Goodbye! Exiting program."
)

// Selector asks the user which persona to talk to.
type Selector struct {
	console  *Console
	personas *persona.Registry
}

// NewSelector creates a Selector reading from console.
func NewSelector(console *Console, personas *persona.Registry) *Selector {
	return &Selector{console: console, personas: personas}
}

// Select renders the menu and blocks until a valid choice is made.
// It returns ErrQuit when the user types quit or input ends.
func (s *Selector) Select() (persona.Mode, error) {
	s.printMenu()

	for {
		choice, err := s.console.Prompt(selectPrompt)
		if errors.Is(err, io.EOF) {
			s.console.Println("")
			s.console.Println(goodbye)
			return "", ErrQuit
		}
		if err != nil {
			return "", err
		}

		if mode, ok := persona.FromChoice(choice); ok {
			s.console.Println(fmt.Sprintf("\nPerfect! You are now talking to %s. \n", s.personas.Title(mode)))
			slog.Debug("mode selected", "mode", mode)
			return mode, nil
		}

		if strings.EqualFold(choice, quitKeyword) {
			s.console.Println(goodbye)
			return "", ErrQuit
		}

		s.console.Println(invalidChoice)
	}
}

func (s *Selector) printMenu() {
	st := s.console.Style()
	s.console.Println(st.Heading("Which Ellie do you want to use today?") + "\n")
	all := s.personas.All()
	for i, p := range all {
		line := fmt.Sprintf("%d. %s %s", i+1, p.Icon, p.Title)
		if i == len(all)-1 {
			line += "\n"
		}
		s.console.Println(line)
	}
	s.console.Println("")
	s.console.Println(st.Hint("* If at any point you want to change Ellies just type '/mode' "))
}
