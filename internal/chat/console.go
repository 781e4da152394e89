// Package chat implements Ellie's terminal interaction: the mode selector
// and the chat loop.
package chat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrQuit is returned when the user asks to leave the program from the mode
// selector. Callers should exit successfully.
var ErrQuit = errors.New("chat: quit requested")

// Console is a line-oriented terminal shared by the selector and the loop.
type Console struct {
	in    *bufio.Scanner
	out   io.Writer
	style Style
}

// NewConsole wraps in and out. Both the selector and the loop must read
// through the same Console so buffered input is not lost.
func NewConsole(in io.Reader, out io.Writer, style Style) *Console {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Console{in: scanner, out: out, style: style}
}

// Out returns the output writer.
func (c *Console) Out() io.Writer {
	return c.out
}

// Style returns the console style.
func (c *Console) Style() Style {
	return c.style
}

// Prompt writes prompt and reads one trimmed line.
// It returns io.EOF when input is exhausted.
func (c *Console) Prompt(prompt string) (string, error) {
	c.Print(prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// Print writes s without a trailing newline.
func (c *Console) Print(s string) {
	_, _ = io.WriteString(c.out, s)
}

// Println writes s followed by a newline.
func (c *Console) Println(s string) {
	_, _ = io.WriteString(c.out, s+"\n")
}
