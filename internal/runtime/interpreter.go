package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/gambit/pkg/chart"
	"github.com/aretw0/gambit/pkg/domain"
	"github.com/aretw0/gambit/pkg/ports"
)

// Interpreter owns the control state and extended state of one machine and
// moves them in response to events, one event at a time.
type Interpreter[D any] struct {
	chart  *chart.Compiled[D]
	deps   D
	sink   ports.CommandSink
	hooks  domain.LifecycleHooks
	logger *slog.Logger

	busy atomic.Bool

	mu      sync.RWMutex
	current string
	ext     domain.ExtendedState
}

// New creates an interpreter resting in the chart's initial state with its initial extended state.
func New[D any](c *chart.Compiled[D], deps D, opts ...Option) *Interpreter[D] {
	s := newSettings(opts)
	return &Interpreter[D]{
		chart:   c,
		deps:    deps,
		sink:    s.sink,
		hooks:   s.hooks,
		logger:  s.logger,
		current: c.Initial(),
		ext:     c.InitialExtended(),
	}
}

// NewFromSnapshot creates an interpreter resting where snap left off.
// The snapshot must name a declared leaf state.
func NewFromSnapshot[D any](c *chart.Compiled[D], deps D, snap *domain.Snapshot, opts ...Option) (*Interpreter[D], error) {
	if snap == nil {
		return nil, fmt.Errorf("cannot restore from nil snapshot")
	}
	if !c.Has(snap.ControlState) {
		return nil, fmt.Errorf("restore %q: %w", snap.ControlState, domain.ErrUnknownState)
	}
	if c.IsCompound(snap.ControlState) {
		return nil, fmt.Errorf("restore %q: %w", snap.ControlState, domain.ErrNotLeaf)
	}

	i := New(c, deps, opts...)
	i.current = snap.ControlState
	i.ext = snap.Extended.Clone()
	return i, nil
}

// Current returns the control state the machine is resting in.
func (i *Interpreter[D]) Current() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.current
}

// Extended returns a copy of the extended state.
func (i *Interpreter[D]) Extended() domain.ExtendedState {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.ext.Clone()
}

// Snapshot captures the machine for persistence.
func (i *Interpreter[D]) Snapshot() *domain.Snapshot {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return &domain.Snapshot{ControlState: i.current, Extended: i.ext.Clone()}
}

// Matches reports whether the machine rests in state or in one of its descendants.
func (i *Interpreter[D]) Matches(state string) bool {
	return i.chart.IsDescendant(i.Current(), state)
}

// Terminal reports whether no external event can move the machine anymore.
func (i *Interpreter[D]) Terminal() bool {
	return i.chart.Terminal(i.Current())
}

// Chart returns the compiled chart the interpreter runs.
func (i *Interpreter[D]) Chart() *chart.Compiled[D] {
	return i.chart
}

// Dispatch processes one external event to completion: guard resolution, action
// execution, update merge, entry resolution down to a leaf, then output dispatch.
// An event that matches nothing returns a Step with Matched == false and changes nothing.
// Overlapping or re-entrant calls are rejected with domain.ErrBusy.
func (i *Interpreter[D]) Dispatch(ctx context.Context, ev domain.Event) (*domain.Step, error) {
	if !i.busy.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("dispatch %q: %w", ev.Name, domain.ErrBusy)
	}
	defer i.busy.Store(false)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ev.Name == domain.EventInit {
		return nil, fmt.Errorf("dispatch %q: %w", ev.Name, domain.ErrReservedEvent)
	}
	if !i.chart.Recognizes(ev.Name) {
		return nil, fmt.Errorf("dispatch %q: %w", ev.Name, domain.ErrUnknownEvent)
	}

	i.mu.RLock()
	from, ext := i.current, i.ext
	i.mu.RUnlock()

	if i.chart.IsCompound(from) {
		return nil, fmt.Errorf("dispatch %q in %q: %w", ev.Name, from, domain.ErrNotLeaf)
	}

	start := time.Now()
	step := &domain.Step{Event: ev, From: from, To: from}

	choice, ok := Evaluate(i.chart, from, ev, ext, i.deps, i.logger)
	if !ok {
		i.logger.DebugContext(ctx, "no transition", "state", from, "event", ev.Name)
		if i.hooks.OnNoMatch != nil {
			i.hooks.OnNoMatch(ctx, from, ev)
		}
		return step, nil
	}

	res, err := Execute(choice.Action, ext, ev.Payload, i.deps)
	if err != nil {
		return nil, fmt.Errorf("transition %s -[%s]-> %s: %w", from, ev.Name, choice.To, err)
	}
	ext = domain.Merge(ext, res.Updates...)
	step.Updates = append(step.Updates, res.Updates...)
	step.Outputs = append(step.Outputs, res.Outputs...)

	target := choice.To
	step.Entered = append(step.Entered, target)
	for i.chart.IsCompound(target) {
		initTr, ok := i.chart.Lookup(target, domain.EventInit)
		if !ok {
			// Compile guarantees an init transition for every compound state.
			return nil, fmt.Errorf("compound state %q has no initial child", target)
		}
		res, err := Execute(initTr.Action, ext, ev.Payload, i.deps)
		if err != nil {
			return nil, fmt.Errorf("entering %s: %w", target, err)
		}
		ext = domain.Merge(ext, res.Updates...)
		step.Updates = append(step.Updates, res.Updates...)
		step.Outputs = append(step.Outputs, res.Outputs...)

		target = initTr.To
		step.Entered = append(step.Entered, target)
	}

	i.mu.Lock()
	i.current, i.ext = target, ext
	i.mu.Unlock()
	step.To = target
	step.Matched = true

	i.logger.DebugContext(ctx, "transition",
		"from", from,
		"to", target,
		"event", ev.Name,
		"guard", choice.Label,
		"updates", len(step.Updates),
		"outputs", len(step.Outputs),
	)
	i.emitTransition(ctx, step, start)

	return step, i.forward(ctx, step.Outputs)
}

func (i *Interpreter[D]) emitTransition(ctx context.Context, step *domain.Step, start time.Time) {
	now := time.Now()
	if i.hooks.OnStateEnter != nil {
		for _, s := range step.Entered {
			i.hooks.OnStateEnter(ctx, &domain.StateEvent{
				Timestamp: now,
				State:     s,
				Compound:  i.chart.IsCompound(s),
			})
		}
	}
	if i.hooks.OnTransition != nil {
		i.hooks.OnTransition(ctx, &domain.TransitionEvent{
			Timestamp: now,
			From:      step.From,
			To:        step.To,
			Event:     step.Event.Name,
			Duration:  now.Sub(start),
		})
	}
}

// forward hands the outputs to the sink in order. Every command is attempted;
// failures are joined and returned while the transition stays committed.
func (i *Interpreter[D]) forward(ctx context.Context, outputs []domain.Command) error {
	if i.sink == nil {
		return nil
	}

	var errs []error
	for _, cmd := range outputs {
		err := i.sink.Handle(ctx, cmd)
		if err != nil {
			i.logger.WarnContext(ctx, "command failed", "kind", cmd.Kind, "err", err)
			errs = append(errs, fmt.Errorf("command %s: %w", cmd.Kind, err))
		}
		if i.hooks.OnCommand != nil {
			i.hooks.OnCommand(ctx, &domain.CommandEvent{Timestamp: time.Now(), Kind: cmd.Kind, Err: err})
		}
	}
	return errors.Join(errs...)
}
