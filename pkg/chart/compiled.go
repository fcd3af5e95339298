package chart

import (
	"slices"

	"github.com/aretw0/gambit/pkg/domain"
)

type key struct {
	state string
	event string
}

// Compiled is a validated, indexed and immutable view of a Definition.
// Later edits to the source Definition do not affect it.
type Compiled[D any] struct {
	def      Definition[D]
	tree     *tree
	events   map[string]bool
	table    map[key]Transition[D]
	outgoing map[string][]string
}

// Compile validates def and indexes it for table lookups.
func Compile[D any](def *Definition[D]) (*Compiled[D], error) {
	if err := Validate(def); err != nil {
		return nil, err
	}

	c := &Compiled[D]{
		def: Definition[D]{
			Initial:         def.Initial,
			InitialExtended: def.InitialExtended.Clone(),
			States:          cloneNodes(def.States),
			Events:          slices.Clone(def.Events),
			Transitions:     cloneTransitions(def.Transitions),
		},
		events:   make(map[string]bool, len(def.Events)),
		table:    make(map[key]Transition[D], len(def.Transitions)),
		outgoing: make(map[string][]string),
	}
	c.tree = indexTree(c.def.States)
	for _, ev := range c.def.Events {
		c.events[ev] = true
	}
	for _, tr := range c.def.Transitions {
		c.table[key{tr.From, tr.Event}] = tr
		if tr.Event != domain.EventInit {
			c.outgoing[tr.From] = append(c.outgoing[tr.From], tr.Event)
		}
	}
	return c, nil
}

// Initial returns the initial control state.
func (c *Compiled[D]) Initial() string {
	return c.def.Initial
}

// InitialExtended returns a copy of the initial extended state.
func (c *Compiled[D]) InitialExtended() domain.ExtendedState {
	if c.def.InitialExtended == nil {
		return domain.ExtendedState{}
	}
	return c.def.InitialExtended.Clone()
}

// Has reports whether the state is declared.
func (c *Compiled[D]) Has(state string) bool {
	return c.tree.has(state)
}

// IsCompound reports whether the state has children.
func (c *Compiled[D]) IsCompound(state string) bool {
	return c.tree.isCompound(state)
}

// Parent returns the parent of state, or "" for top-level states.
func (c *Compiled[D]) Parent(state string) string {
	return c.tree.parent[state]
}

// Children returns the direct children of state in declaration order.
func (c *Compiled[D]) Children(state string) []string {
	return slices.Clone(c.tree.children[state])
}

// Path returns the chain of states from the top level down to state.
func (c *Compiled[D]) Path(state string) []string {
	var path []string
	for s := state; s != ""; s = c.tree.parent[s] {
		path = append(path, s)
	}
	slices.Reverse(path)
	return path
}

// IsDescendant reports whether state equals ancestor or is nested below it.
func (c *Compiled[D]) IsDescendant(state, ancestor string) bool {
	for s := state; s != ""; s = c.tree.parent[s] {
		if s == ancestor {
			return true
		}
	}
	return false
}

// Recognizes reports whether the event is one of the chart's external events.
func (c *Compiled[D]) Recognizes(event string) bool {
	return c.events[event]
}

// Lookup returns the transition defined exactly for (state, event).
func (c *Compiled[D]) Lookup(state, event string) (Transition[D], bool) {
	tr, ok := c.table[key{state, event}]
	return tr, ok
}

// Resolve returns the transition handling event in state. When state defines none,
// its ancestors are searched from the closest one outwards; the first definition
// found is authoritative.
func (c *Compiled[D]) Resolve(state, event string) (Transition[D], bool) {
	for s := state; s != ""; s = c.tree.parent[s] {
		if tr, ok := c.table[key{s, event}]; ok {
			return tr, true
		}
	}
	return Transition[D]{}, false
}

// Terminal reports whether no external event has a definition from state or any of
// its ancestors.
func (c *Compiled[D]) Terminal(state string) bool {
	for s := state; s != ""; s = c.tree.parent[s] {
		if len(c.outgoing[s]) > 0 {
			return false
		}
	}
	return true
}

// StateNames returns every declared state in depth-first declaration order.
func (c *Compiled[D]) StateNames() []string {
	return slices.Clone(c.tree.order)
}

// Definition returns a copy of the compiled definition.
func (c *Compiled[D]) Definition() *Definition[D] {
	return &Definition[D]{
		Initial:         c.def.Initial,
		InitialExtended: c.def.InitialExtended.Clone(),
		States:          cloneNodes(c.def.States),
		Events:          slices.Clone(c.def.Events),
		Transitions:     cloneTransitions(c.def.Transitions),
	}
}

func cloneNodes(nodes []StateNode) []StateNode {
	if nodes == nil {
		return nil
	}
	out := make([]StateNode, len(nodes))
	for i, n := range nodes {
		out[i] = StateNode{Name: n.Name, Children: cloneNodes(n.Children)}
	}
	return out
}

func cloneTransitions[D any](ts []Transition[D]) []Transition[D] {
	if ts == nil {
		return nil
	}
	out := make([]Transition[D], len(ts))
	for i, tr := range ts {
		tr.Guards = slices.Clone(tr.Guards)
		out[i] = tr
	}
	return out
}
