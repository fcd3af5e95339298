package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/gambit/pkg/domain"
)

// Replay feeds a game script into g, one line at a time, until the input ends or
// the game is over. Blank lines and lines starting with "#" are skipped.
// Lines that parse but match no transition are reported on w and skipped.
func Replay(ctx context.Context, g *Game, r io.Reader, w io.Writer) error {
	lines := bufio.NewScanner(r)
	n := 0
	for !g.Terminal() && lines.Scan() {
		n++
		line := strings.TrimSpace(lines.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		events, err := ParseLine(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		for _, ev := range events {
			step, err := g.Dispatch(ctx, ev)
			if err != nil {
				return fmt.Errorf("line %d: %w", n, err)
			}
			report(w, step)
		}
	}
	if err := lines.Err(); err != nil {
		return fmt.Errorf("input error: %w", err)
	}
	return nil
}

func report(w io.Writer, step *domain.Step) {
	if w == nil {
		return
	}
	label := step.Event.Name
	if sq, ok := step.Event.Payload.(string); ok {
		label += " " + sq
	}
	if !step.Matched {
		fmt.Fprintf(w, "%s: no transition for %s\n", step.From, label)
		return
	}
	fmt.Fprintf(w, "%s -[%s]-> %s\n", step.From, label, step.To)
}
