package chart

import (
	"github.com/aretw0/gambit/pkg/domain"
)

// Predicate decides whether a guarded transition applies.
// It must not have externally observable side effects.
type Predicate[D any] func(ext domain.ExtendedState, payload any, deps D) (bool, error)

// Action computes the updates and outputs of a transition.
// It must not mutate ext.
type Action[D any] func(ext domain.ExtendedState, payload any, deps D) (domain.ActionResult, error)

// Identity is the reserved action that produces no update and no output.
func Identity[D any](domain.ExtendedState, any, D) (domain.ActionResult, error) {
	return domain.Empty(), nil
}

// Compose builds an action that runs each action against the same inputs and
// concatenates their results in the given order.
func Compose[D any](actions ...Action[D]) Action[D] {
	return func(ext domain.ExtendedState, payload any, deps D) (domain.ActionResult, error) {
		results := make([]domain.ActionResult, 0, len(actions))
		for _, a := range actions {
			if a == nil {
				continue
			}
			r, err := a(ext, payload, deps)
			if err != nil {
				return domain.ActionResult{}, err
			}
			results = append(results, r)
		}
		return domain.Concat(results...), nil
	}
}

// StateNode is a control state. It is a leaf when it has no children.
type StateNode struct {
	Name     string      `json:"name" yaml:"name" mapstructure:"name"`
	Children []StateNode `json:"children,omitempty" yaml:"children,omitempty" mapstructure:"children"`
}

// Leaf declares a state without children.
func Leaf(name string) StateNode {
	return StateNode{Name: name}
}

// Compound declares a state with children. Its initial child is chosen by the
// transition registered under domain.EventInit.
func Compound(name string, children ...StateNode) StateNode {
	return StateNode{Name: name, Children: children}
}

// IsCompound reports whether the node has children.
func (n StateNode) IsCompound() bool {
	return len(n.Children) > 0
}

// Guard is one branch of a guarded transition.
type Guard[D any] struct {
	// Label names the predicate for presentation (graphs, logs).
	Label      string
	Predicate  Predicate[D]
	To         string
	Action     Action[D]
	ActionName string
}

// Transition is the single definition for a (From, Event) pair.
// Either To is set (unconditional) or Guards is non-empty, never both.
type Transition[D any] struct {
	From       string
	Event      string
	To         string
	Action     Action[D]
	ActionName string
	Guards     []Guard[D]
}

// Guarded reports whether the transition selects its target through guards.
func (t Transition[D]) Guarded() bool {
	return len(t.Guards) > 0
}

// Targets returns every state the transition may lead to, in declared order.
func (t Transition[D]) Targets() []string {
	if !t.Guarded() {
		return []string{t.To}
	}
	out := make([]string, 0, len(t.Guards))
	for _, g := range t.Guards {
		out = append(out, g.To)
	}
	return out
}

// Definition is the static description of a chart.
type Definition[D any] struct {
	Initial         string
	InitialExtended domain.ExtendedState
	States          []StateNode
	Events          []string
	Transitions     []Transition[D]
}
