package runner

import (
	"log/slog"

	"github.com/aretw0/gambit/pkg/chart"
	"github.com/aretw0/gambit/pkg/domain"
	"github.com/aretw0/gambit/pkg/game"
	"github.com/aretw0/gambit/pkg/ports"
)

// Option defines a functional option for configuring a Game.
type Option func(*config)

type config struct {
	def       *chart.Definition[game.Deps]
	logger    *slog.Logger
	renderer  game.Renderer
	hooks     domain.LifecycleHooks
	sinks     []ports.CommandSink
	store     ports.SnapshotStore
	sessionID string
}

// WithDefinition runs a chart other than game.Definition, e.g. one loaded from YAML.
func WithDefinition(def *chart.Definition[game.Deps]) Option {
	return func(c *config) {
		c.def = def
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithRenderer configures the board renderer (TUI, text).
func WithRenderer(renderer game.Renderer) Option {
	return func(c *config) {
		c.renderer = renderer
	}
}

// WithLifecycleHooks registers observability hooks on the machine.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}

// WithCommandSink adds a sink receiving every command after the game handlers.
func WithCommandSink(s ports.CommandSink) Option {
	return func(c *config) {
		c.sinks = append(c.sinks, s)
	}
}

// WithStore configures the SnapshotStore for persistence.
// The snapshot is saved after every event.
func WithStore(store ports.SnapshotStore) Option {
	return func(c *config) {
		c.store = store
	}
}

// WithSessionID sets the key snapshots are saved under.
// This is required if WithStore is used.
func WithSessionID(id string) Option {
	return func(c *config) {
		c.sessionID = id
	}
}
