package chart

import (
	"github.com/aretw0/gambit/pkg/domain"
)

// Builder manages the chart construction.
type Builder[D any] struct {
	def Definition[D]
}

// New creates a new chart builder.
func New[D any]() *Builder[D] {
	return &Builder[D]{}
}

// Initial sets the initial control state.
func (b *Builder[D]) Initial(state string) *Builder[D] {
	b.def.Initial = state
	return b
}

// Extended sets the initial extended state.
func (b *Builder[D]) Extended(ext domain.ExtendedState) *Builder[D] {
	b.def.InitialExtended = ext
	return b
}

// Events declares the external events recognized by the chart.
func (b *Builder[D]) Events(names ...string) *Builder[D] {
	b.def.Events = append(b.def.Events, names...)
	return b
}

// States adds top-level states to the tree.
func (b *Builder[D]) States(nodes ...StateNode) *Builder[D] {
	b.def.States = append(b.def.States, nodes...)
	return b
}

// On starts the definition for (from, event).
// Calling On twice for the same pair yields a duplicate that Build rejects.
func (b *Builder[D]) On(from, event string) *TransitionBuilder[D] {
	b.def.Transitions = append(b.def.Transitions, Transition[D]{From: from, Event: event})
	return &TransitionBuilder[D]{builder: b, index: len(b.def.Transitions) - 1}
}

// Init starts the initial child transition of a compound state.
func (b *Builder[D]) Init(compound string) *TransitionBuilder[D] {
	return b.On(compound, domain.EventInit)
}

// Build validates the chart and returns its definition.
func (b *Builder[D]) Build() (*Definition[D], error) {
	def := b.def
	def.Transitions = cloneTransitions(b.def.Transitions)
	if err := Validate(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// TransitionBuilder provides a fluent API for configuring one transition.
type TransitionBuilder[D any] struct {
	builder *Builder[D]
	index   int
}

func (t *TransitionBuilder[D]) transition() *Transition[D] {
	return &t.builder.def.Transitions[t.index]
}

// Go makes the transition unconditional.
func (t *TransitionBuilder[D]) Go(to string, action Action[D]) *TransitionBuilder[D] {
	tr := t.transition()
	tr.To = to
	tr.Action = action
	return t
}

// When appends a guard. Guards are evaluated in the order they are added.
func (t *TransitionBuilder[D]) When(label string, pred Predicate[D], to string, action Action[D]) *TransitionBuilder[D] {
	tr := t.transition()
	tr.Guards = append(tr.Guards, Guard[D]{
		Label:     label,
		Predicate: pred,
		To:        to,
		Action:    action,
	})
	return t
}

// Named records the action name of the unconditional branch, or of the last guard added.
func (t *TransitionBuilder[D]) Named(action string) *TransitionBuilder[D] {
	tr := t.transition()
	if n := len(tr.Guards); n > 0 {
		tr.Guards[n-1].ActionName = action
		return t
	}
	tr.ActionName = action
	return t
}
