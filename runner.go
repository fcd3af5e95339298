package gambit

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/gambit/pkg/domain"
)

// Target is what a Runner drives. *Machine satisfies it.
type Target interface {
	Dispatch(ctx context.Context, ev domain.Event) (*domain.Step, error)
	Current() string
	Terminal() bool
}

// LineParser turns one input line into an event.
type LineParser func(line string) (domain.Event, error)

// Runner feeds events read line by line from Input into a Target.
// This allows scripted sessions and easy testing of any chart.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Parse    LineParser
}

// NewRunner creates a Runner using ParseLine.
// Input and Output must be set before Run.
func NewRunner(in io.Reader, out io.Writer) *Runner {
	return &Runner{Input: in, Output: out, Parse: ParseLine}
}

// ParseLine reads "NAME [payload]": the first word is the event name and the rest
// of the line, if any, is a string payload.
func ParseLine(line string) (domain.Event, error) {
	name, payload, _ := strings.Cut(strings.TrimSpace(line), " ")
	if name == "" {
		return domain.Event{}, fmt.Errorf("empty event")
	}
	if payload = strings.TrimSpace(payload); payload == "" {
		return domain.NewEvent(name, nil), nil
	}
	return domain.NewEvent(name, payload), nil
}

// Run executes the loop until the input ends, the target reaches a terminal state
// or the user types exit. Rejected events are reported and skipped.
func (r *Runner) Run(ctx context.Context, t Target) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	parse := r.Parse
	if parse == nil {
		parse = ParseLine
	}

	lines := bufio.NewScanner(r.Input)
	for !t.Terminal() {
		if !r.Headless {
			fmt.Fprintf(r.Output, "[%s] > ", t.Current())
		}
		if !lines.Scan() {
			break
		}
		line := strings.TrimSpace(lines.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		ev, err := parse(line)
		if err != nil {
			fmt.Fprintf(r.Output, "error: %v\n", err)
			continue
		}

		step, err := t.Dispatch(ctx, ev)
		if step == nil {
			if errors.Is(err, domain.ErrUnknownEvent) || errors.Is(err, domain.ErrReservedEvent) {
				fmt.Fprintf(r.Output, "error: %v\n", err)
				continue
			}
			return fmt.Errorf("dispatch error: %w", err)
		}
		if err != nil {
			fmt.Fprintf(r.Output, "warning: %v\n", err)
		}
		if r.Headless {
			continue
		}
		if step.Matched {
			fmt.Fprintf(r.Output, "%s -[%s]-> %s\n", step.From, ev.Name, step.To)
		} else {
			fmt.Fprintf(r.Output, "%s: no transition for %s\n", step.From, ev.Name)
		}
	}
	if err := lines.Err(); err != nil {
		return fmt.Errorf("input error: %w", err)
	}
	return nil
}
