// Package prompt decides whether suggested values are applied silently,
// skipped, or confirmed interactively. A small decision table over the
// prompt mode and a per-field safety classification drives every prompt in
// the create flow; side-effecting actions are never auto-accepted.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Mode controls how suggestions are handled.
type Mode string

const (
	ModeYes  Mode = "yes"  // Accept every suggestion silently.
	ModeNo   Mode = "no"   // Skip every suggestion, never prompt.
	ModeAuto Mode = "auto" // Accept safe suggestions, skip side-effecting ones.
	ModeAsk  Mode = "ask"  // Confirm every suggestion interactively.
)

// ParseMode validates a mode string from the CLI.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeYes, ModeNo, ModeAuto, ModeAsk:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid prompt mode %q: must be one of ask, yes, no, auto", s)
	}
}

// Safety classifies a suggestible field.
type Safety int

const (
	// Safe fields only affect metadata (identity, URLs) and may be
	// auto-accepted.
	Safe Safety = iota

	// Unsafe fields trigger side effects (git init, venv creation) and
	// require explicit confirmation even in auto mode.
	Unsafe
)

// Action is the outcome of the decision table.
type Action int

const (
	Accept Action = iota
	Skip
	Ask
)

// Decide maps (mode, safety) to an action.
func Decide(mode Mode, safety Safety) Action {
	switch mode {
	case ModeYes:
		return Accept
	case ModeNo:
		return Skip
	case ModeAuto:
		if safety == Safe {
			return Accept
		}
		return Skip
	default: // ModeAsk
		return Ask
	}
}

// Prompter resolves suggestions against the decision table, reading
// interactive confirmations from an injected reader.
type Prompter struct {
	mode Mode
	in   *bufio.Reader
	out  io.Writer
}

// New creates a Prompter for one run.
func New(mode Mode, in io.Reader, out io.Writer) *Prompter {
	return &Prompter{mode: mode, in: bufio.NewReader(in), out: out}
}

// Mode returns the prompt mode the Prompter was created with.
func (p *Prompter) Mode() Mode { return p.mode }

// Confirm resolves one suggestion. In ask mode the user is shown the
// message and only an explicit "Y" accepts.
func (p *Prompter) Confirm(message string, safety Safety) bool {
	switch Decide(p.mode, safety) {
	case Accept:
		return true
	case Skip:
		return false
	default:
		fmt.Fprintf(p.out, "%s (Y/n): ", message)
		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		return strings.TrimSpace(line) == "Y"
	}
}
