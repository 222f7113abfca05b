package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Prompter asks the operator one question and returns the trimmed answer
type Prompter interface {
	Ask(question string) (string, error)
}

// Console prompts on a terminal. Each Ask reads exactly one line and nothing more,
// so no input is held between questions.
type Console struct {
	in  io.Reader
	out io.Writer
}

// NewConsole creates a Console prompter
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: in, out: out}
}

// Ask prints the question and blocks until Enter
func (c *Console) Ask(question string) (string, error) {
	fmt.Fprintf(c.out, "\n%s ", color.CyanString("➡️  %s", question))

	var line strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := c.in.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				break
			}
			line.WriteByte(buf[0])
		}
		if errors.Is(err, io.EOF) {
			if line.Len() == 0 {
				return "", fmt.Errorf("no answer to %q: %w", question, io.ErrUnexpectedEOF)
			}
			break
		}
		if err != nil {
			return "", fmt.Errorf("read answer: %w", err)
		}
	}

	return strings.TrimSpace(line.String()), nil
}

// Scripted answers questions from a fixed list, echoing each exchange
type Scripted struct {
	answers []string
	out     io.Writer
	asked   int
}

// NewScripted creates a Scripted prompter. out may be nil.
func NewScripted(out io.Writer, answers ...string) *Scripted {
	return &Scripted{answers: answers, out: out}
}

// Ask returns the next scripted answer
func (s *Scripted) Ask(question string) (string, error) {
	if s.asked >= len(s.answers) {
		return "", fmt.Errorf("no scripted answer for %q", question)
	}
	answer := strings.TrimSpace(s.answers[s.asked])
	s.asked++
	if s.out != nil {
		fmt.Fprintf(s.out, "\n%s %s\n", color.CyanString("➡️  %s", question), answer)
	}
	return answer, nil
}

// Asked returns how many questions were answered
func (s *Scripted) Asked() int {
	return s.asked
}
