/*
Package chart describes state charts as data.

A Definition lists the control states (flat and compound), the external events the chart
recognizes, and a transition table keyed by (state, event). Transitions are either
unconditional or carry an ordered list of guards evaluated first-match-wins.

Definitions are built with the fluent Builder or loaded from YAML through a Registry of
named guards and actions, and are validated before a machine can run them:

	b := chart.New[Deps]().
		Initial("OFF").
		Events("START", "CLICKED").
		States(chart.Leaf("OFF"), chart.Compound("PLAYING", chart.Leaf("IDLE")))

	b.On("OFF", "START").Go("PLAYING", chart.Identity[Deps])
	b.Init("PLAYING").Go("IDLE", renderBoard)

	def, err := b.Build()
*/
package chart
