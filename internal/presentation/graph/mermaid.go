package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/gambit/pkg/chart"
	"github.com/aretw0/gambit/pkg/domain"
)

// GraphOverlay contains runtime data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
}

// GenerateMermaid produces a Mermaid state diagram of a compiled chart.
// Compound states are drawn as nested blocks whose [*] arrow is the init
// transition. Guarded transitions get one arrow per branch, labelled
// "EVENT [guard] / action". Terminal leaves point to [*].
func GenerateMermaid[D any](c *chart.Compiled[D], overlay *GraphOverlay) string {
	def := c.Definition()

	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")
	fmt.Fprintf(&sb, "    [*] --> %s\n", sanitizeMermaidID(def.Initial))

	inits := make(map[string]chart.Transition[D])
	for _, tr := range def.Transitions {
		if tr.Event == domain.EventInit {
			inits[tr.From] = tr
		}
	}
	for _, node := range def.States {
		writeState(&sb, c, node, inits, 1)
	}

	for _, tr := range def.Transitions {
		if tr.Event == domain.EventInit {
			continue
		}
		from := sanitizeMermaidID(tr.From)
		if !tr.Guarded() {
			fmt.Fprintf(&sb, "    %s --> %s : %s\n", from, sanitizeMermaidID(tr.To), label(tr.Event, "", tr.ActionName))
			continue
		}
		for _, g := range tr.Guards {
			fmt.Fprintf(&sb, "    %s --> %s : %s\n", from, sanitizeMermaidID(g.To), label(tr.Event, g.Label, g.ActionName))
		}
	}

	for _, name := range c.StateNames() {
		if !c.IsCompound(name) && c.Terminal(name) {
			fmt.Fprintf(&sb, "    %s --> [*]\n", sanitizeMermaidID(name))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for contrast on both light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000\n")

		seen := make(map[string]bool)
		for _, s := range overlay.VisitedStates {
			id := sanitizeMermaidID(s)
			if id == "" || seen[id] || !c.Has(s) {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s visited\n", id)
		}
		if overlay.CurrentState != "" && c.Has(overlay.CurrentState) {
			fmt.Fprintf(&sb, "    class %s current\n", sanitizeMermaidID(overlay.CurrentState))
		}
	}

	return sb.String()
}

func writeState[D any](sb *strings.Builder, c *chart.Compiled[D], node chart.StateNode, inits map[string]chart.Transition[D], depth int) {
	indent := strings.Repeat("    ", depth)
	id := sanitizeMermaidID(node.Name)
	if !node.IsCompound() {
		if id != node.Name {
			fmt.Fprintf(sb, "%sstate \"%s\" as %s\n", indent, node.Name, id)
		} else {
			fmt.Fprintf(sb, "%s%s\n", indent, id)
		}
		return
	}

	fmt.Fprintf(sb, "%sstate %s {\n", indent, id)
	if tr, ok := inits[node.Name]; ok {
		arrow := fmt.Sprintf("%s    [*] --> %s", indent, sanitizeMermaidID(tr.To))
		if tr.ActionName != "" && tr.ActionName != chart.IdentityName {
			arrow += " : " + tr.ActionName
		}
		sb.WriteString(arrow + "\n")
	}
	for _, child := range node.Children {
		writeState(sb, c, child, inits, depth+1)
	}
	fmt.Fprintf(sb, "%s}\n", indent)
}

func label(event, guard, action string) string {
	l := event
	if guard != "" {
		l += " [" + guard + "]"
	}
	if action != "" && action != chart.IdentityName {
		l += " / " + action
	}
	// A colon would end the Mermaid label.
	return strings.ReplaceAll(l, ":", " ")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
