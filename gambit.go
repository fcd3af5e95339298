package gambit

import (
	"context"
	"log/slog"

	"github.com/aretw0/gambit/internal/logging"
	"github.com/aretw0/gambit/internal/runtime"
	"github.com/aretw0/gambit/pkg/chart"
	"github.com/aretw0/gambit/pkg/domain"
	"github.com/aretw0/gambit/pkg/ports"
)

// Machine is the high-level entry point of the library.
// It owns the control state and extended state of one running chart.
type Machine[D any] struct {
	interp *runtime.Interpreter[D]
	Name   string
}

type config struct {
	name   string
	logger *slog.Logger
	sink   ports.CommandSink
	hooks  domain.LifecycleHooks
}

// Option defines a functional option for configuring the Machine.
type Option func(*config)

// WithName labels the machine. The name is attached to every log record.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithLogger sets a custom structured logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithCommandSink sets the sink receiving output commands.
// Without a sink, outputs are only reported in the returned Step.
func WithCommandSink(sink ports.CommandSink) Option {
	return func(c *config) {
		c.sink = sink
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}

// New validates the definition and creates a machine resting in its initial state.
// Definition problems are returned as *chart.ValidationError.
func New[D any](def *chart.Definition[D], deps D, opts ...Option) (*Machine[D], error) {
	c, err := chart.Compile(def)
	if err != nil {
		return nil, err
	}
	return NewFromChart(c, deps, opts...), nil
}

// NewFromChart creates a machine from an already compiled chart.
// A compiled chart is immutable and can back any number of machines.
func NewFromChart[D any](c *chart.Compiled[D], deps D, opts ...Option) *Machine[D] {
	cfg := apply(opts)
	return &Machine[D]{
		interp: runtime.New(c, deps, cfg.runtimeOptions()...),
		Name:   cfg.name,
	}
}

// Restore validates the definition and creates a machine resuming from a snapshot.
func Restore[D any](def *chart.Definition[D], deps D, snap *domain.Snapshot, opts ...Option) (*Machine[D], error) {
	c, err := chart.Compile(def)
	if err != nil {
		return nil, err
	}
	return RestoreFromChart(c, deps, snap, opts...)
}

// RestoreFromChart creates a machine resuming from a snapshot of a compiled chart.
func RestoreFromChart[D any](c *chart.Compiled[D], deps D, snap *domain.Snapshot, opts ...Option) (*Machine[D], error) {
	cfg := apply(opts)
	interp, err := runtime.NewFromSnapshot(c, deps, snap, cfg.runtimeOptions()...)
	if err != nil {
		return nil, err
	}
	return &Machine[D]{interp: interp, Name: cfg.name}, nil
}

func apply(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (c config) runtimeOptions() []runtime.Option {
	logger := c.logger
	if logger == nil {
		logger = logging.NewNop()
	}
	if c.name != "" {
		logger = logger.With("chart", c.name)
	}
	return []runtime.Option{
		runtime.WithLogger(logger),
		runtime.WithCommandSink(c.sink),
		runtime.WithLifecycleHooks(c.hooks),
	}
}

// Dispatch processes one event to completion and reports what happened.
func (m *Machine[D]) Dispatch(ctx context.Context, ev domain.Event) (*domain.Step, error) {
	return m.interp.Dispatch(ctx, ev)
}

// Send is shorthand for Dispatch(ctx, domain.NewEvent(name, payload)).
func (m *Machine[D]) Send(ctx context.Context, name string, payload any) (*domain.Step, error) {
	return m.interp.Dispatch(ctx, domain.NewEvent(name, payload))
}

// Current returns the leaf control state the machine rests in.
func (m *Machine[D]) Current() string {
	return m.interp.Current()
}

// Extended returns a copy of the extended state.
func (m *Machine[D]) Extended() domain.ExtendedState {
	return m.interp.Extended()
}

// Snapshot captures the machine for persistence.
func (m *Machine[D]) Snapshot() *domain.Snapshot {
	return m.interp.Snapshot()
}

// Matches reports whether the machine rests in state or in one of its descendants.
func (m *Machine[D]) Matches(state string) bool {
	return m.interp.Matches(state)
}

// Terminal reports whether no event can move the machine anymore.
func (m *Machine[D]) Terminal() bool {
	return m.interp.Terminal()
}

// Chart returns the compiled chart the machine runs.
func (m *Machine[D]) Chart() *chart.Compiled[D] {
	return m.interp.Chart()
}
