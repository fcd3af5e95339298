package domain

import (
	"context"
	"time"
)

// TransitionEvent describes a transition taken by the machine.
type TransitionEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	From      string        `json:"from"`
	To        string        `json:"to"`
	Event     string        `json:"event"`
	Duration  time.Duration `json:"duration"`
}

// StateEvent describes entry into a control state.
type StateEvent struct {
	Timestamp time.Time `json:"timestamp"`
	State     string    `json:"state"`
	Compound  bool      `json:"compound"`
}

// CommandEvent describes a command forwarded to the sink.
type CommandEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"`
	Err       error     `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// All hooks are optional.
type LifecycleHooks struct {
	OnTransition func(context.Context, *TransitionEvent)
	OnStateEnter func(context.Context, *StateEvent)
	OnNoMatch    func(ctx context.Context, state string, event Event)
	OnCommand    func(context.Context, *CommandEvent)
}
