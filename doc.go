/*
Package gambit is a declarative hierarchical state machine engine.

A chart is data: a tree of control states, the external events it recognizes and a
table of transitions keyed by (state, event). Each transition is either
unconditional or a list of guarded branches evaluated in order, first match wins.
Actions never mutate anything; they return an ActionResult carrying the extended
state updates to merge and the output commands to forward.

# Concept

A Machine owns one control state and one extended state. Dispatch processes a
single event to completion:

  - resolve the transition for the current leaf, walking to its ancestors when the
    leaf defines none
  - evaluate guards against the extended state, the event payload and the injected
    dependencies
  - run the chosen action and merge its updates
  - when the target is compound, follow its init transitions down to a leaf,
    running each entry action
  - forward every output command to the CommandSink once the state has settled

An event that matches nothing is not an error: the Step reports Matched == false
and the machine is untouched. The machine never blocks; a Dispatch that overlaps
another one fails with domain.ErrBusy. Use pkg/emitter to queue events produced
while a dispatch is running.

# Usage

	b := chart.New[Deps]().
		Initial("off").
		Events("power").
		States(chart.Leaf("off"), chart.Leaf("on"))
	b.On("off", "power").Go("on", nil)

	def, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	m, err := gambit.New(def, Deps{}, gambit.WithCommandSink(sink))
	if err != nil {
		log.Fatal(err)
	}

	step, err := m.Dispatch(ctx, domain.NewEvent("power", nil))

Charts can also be loaded from YAML with chart.LoadYAML, resolving guard and action
names through a chart.Registry. The chess game in pkg/game ships both forms.
*/
package gambit
