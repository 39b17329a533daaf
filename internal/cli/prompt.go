package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("aborted")

// Prompter asks the user for a field value.
type Prompter interface {
	// Prompt shows label and returns the entered value. def is offered as
	// the editable default.
	Prompt(label, def string) (string, error)
	Close() error
}

// ReadlinePrompter prompts on the terminal.
type ReadlinePrompter struct {
	rl *readline.Instance
}

// NewReadlinePrompter creates a terminal prompter.
func NewReadlinePrompter() (*ReadlinePrompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}
	return &ReadlinePrompter{rl: rl}, nil
}

// Prompt reads one line with def pre-filled.
func (p *ReadlinePrompter) Prompt(label, def string) (string, error) {
	p.rl.SetPrompt(label + ": ")
	line, err := p.rl.ReadlineWithDefault(def)
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", ErrAborted
	}
	if err != nil {
		return "", fmt.Errorf("readline error: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Close restores the terminal.
func (p *ReadlinePrompter) Close() error {
	return p.rl.Close()
}

// ScriptedPrompter answers prompts from a fixed list. An empty answer keeps
// the default, as pressing enter would on a terminal.
type ScriptedPrompter struct {
	Answers []string
	// Labels records every label that was prompted for.
	Labels []string
}

// Prompt returns the next answer.
func (p *ScriptedPrompter) Prompt(label, def string) (string, error) {
	p.Labels = append(p.Labels, label)
	if len(p.Answers) == 0 {
		return "", ErrAborted
	}
	answer := p.Answers[0]
	p.Answers = p.Answers[1:]
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

func (p *ScriptedPrompter) Close() error { return nil }
