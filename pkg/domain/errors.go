package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

var (
	// ErrUnknownEvent is returned when an event name is not declared by the chart.
	ErrUnknownEvent = errors.New("unknown event")

	// ErrReservedEvent is returned when the internal init event is dispatched from outside.
	ErrReservedEvent = errors.New("reserved event")

	// ErrNotLeaf is returned when the machine is found resting in a compound state.
	ErrNotLeaf = errors.New("machine is not resting in a leaf state")

	// ErrBusy is returned when an event is dispatched while another one is being processed.
	ErrBusy = errors.New("machine is processing another event")

	// ErrUnknownState is returned when a snapshot names a state the chart does not declare.
	ErrUnknownState = errors.New("unknown control state")
)
