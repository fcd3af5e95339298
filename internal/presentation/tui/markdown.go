package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/gambit/pkg/chart"
	"github.com/aretw0/gambit/pkg/domain"
)

// Describe writes a markdown summary of a compiled chart: its states, events and
// transition table.
func Describe[D any](title string, c *chart.Compiled[D]) string {
	def := c.Definition()

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "Initial state: `%s`\n\n", def.Initial)

	sb.WriteString("## States\n\n")
	for _, name := range c.StateNames() {
		depth := len(c.Path(name)) - 1
		kind := "leaf"
		switch {
		case c.IsCompound(name):
			kind = "compound"
		case c.Terminal(name):
			kind = "terminal"
		}
		fmt.Fprintf(&sb, "%s- `%s` (%s)\n", strings.Repeat("  ", depth), name, kind)
	}

	events := slices.Clone(def.Events)
	slices.Sort(events)
	sb.WriteString("\n## Events\n\n")
	for _, ev := range events {
		fmt.Fprintf(&sb, "- `%s`\n", ev)
	}

	sb.WriteString("\n## Transitions\n\n")
	sb.WriteString("| From | Event | Guard | To | Action |\n")
	sb.WriteString("|------|-------|-------|----|--------|\n")
	for _, tr := range def.Transitions {
		event := tr.Event
		if event == domain.EventInit {
			event = "_" + event + "_"
		}
		if !tr.Guarded() {
			fmt.Fprintf(&sb, "| %s | %s | | %s | %s |\n", tr.From, event, tr.To, tr.ActionName)
			continue
		}
		for _, g := range tr.Guards {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n", tr.From, event, g.Label, g.To, g.ActionName)
		}
	}
	return sb.String()
}
