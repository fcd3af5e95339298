package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/gambit"
	"github.com/aretw0/gambit/internal/logging"
	"github.com/aretw0/gambit/pkg/adapters/chessengine"
	"github.com/aretw0/gambit/pkg/domain"
	"github.com/aretw0/gambit/pkg/emitter"
	"github.com/aretw0/gambit/pkg/game"
	"github.com/aretw0/gambit/pkg/ports"
	"github.com/aretw0/gambit/pkg/sink"
)

// Game is one chess game: the chart machine, its rules engine, the event queue
// fed by the rendered board and the command handlers.
type Game struct {
	machine *gambit.Machine[game.Deps]
	engine  *chessengine.Engine
	queue   *emitter.Queue
	store   ports.SnapshotStore
	session string
	render  game.Renderer
	logger  *slog.Logger
}

// New creates a game waiting for START.
func New(opts ...Option) (*Game, error) {
	return build(chessengine.New(), nil, opts)
}

// Resume recreates a game from a snapshot. The rules engine is rebuilt from the
// position held in the extended state.
func Resume(snap *domain.Snapshot, opts ...Option) (*Game, error) {
	if snap == nil {
		return nil, fmt.Errorf("resume: snapshot is nil")
	}
	b, err := game.BoardOf(snap.Extended)
	if err != nil {
		return nil, fmt.Errorf("resume: %w", err)
	}
	engine, err := chessengine.FromFEN(b.Position)
	if err != nil {
		return nil, fmt.Errorf("resume: %w", err)
	}
	return build(engine, snap, opts)
}

func build(engine *chessengine.Engine, snap *domain.Snapshot, opts []Option) (*Game, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.store != nil && cfg.sessionID == "" {
		return nil, fmt.Errorf("a session ID is required to persist the game")
	}
	logger := cfg.logger
	if logger == nil {
		logger = logging.NewNop()
	}
	def := cfg.def
	if def == nil {
		var err error
		if def, err = game.Definition(); err != nil {
			return nil, err
		}
	}

	queue := emitter.New(emitter.WithLogger(logger))
	handlers := game.NewCommandSink(engine, cfg.renderer)
	handlers.Use(sink.Logging(logger))
	var commands ports.CommandSink = handlers
	if len(cfg.sinks) > 0 {
		commands = sink.Multi(append([]ports.CommandSink{handlers}, cfg.sinks...)...)
	}

	deps := game.Deps{Rules: engine, Events: queue}
	machineOpts := []gambit.Option{
		gambit.WithName("chess"),
		gambit.WithLogger(logger),
		gambit.WithCommandSink(commands),
		gambit.WithLifecycleHooks(cfg.hooks),
	}

	var (
		m   *gambit.Machine[game.Deps]
		err error
	)
	if snap == nil {
		m, err = gambit.New(def, deps, machineOpts...)
	} else {
		m, err = gambit.Restore(def, deps, snap, machineOpts...)
	}
	if err != nil {
		return nil, err
	}
	queue.Attach(m)

	return &Game{
		machine: m,
		engine:  engine,
		queue:   queue,
		store:   cfg.store,
		session: cfg.sessionID,
		render:  cfg.renderer,
		logger:  logger,
	}, nil
}

// Start sends START.
func (g *Game) Start(ctx context.Context) (*domain.Step, error) {
	return g.Dispatch(ctx, domain.NewEvent(game.EventStart, nil))
}

// Click sends CLICKED for square.
func (g *Game) Click(ctx context.Context, square string) (*domain.Step, error) {
	if !chessengine.ValidSquare(square) {
		return nil, fmt.Errorf("invalid square %q", square)
	}
	return g.Dispatch(ctx, domain.NewEvent(game.EventClicked, square))
}

// Dispatch runs ev, then the events the board emitted meanwhile, and saves the
// snapshot. It returns the step of ev.
func (g *Game) Dispatch(ctx context.Context, ev domain.Event) (*domain.Step, error) {
	step, err := g.machine.Dispatch(ctx, ev)
	if step == nil {
		return nil, err
	}
	_, drainErr := g.Drain(ctx)
	return step, errors.Join(err, drainErr)
}

// Drain processes the events emitted by the rendered board (OnSquareClick) and
// saves the snapshot.
func (g *Game) Drain(ctx context.Context) ([]*domain.Step, error) {
	var (
		steps []*domain.Step
		err   error
	)
	if g.queue.Len() > 0 {
		steps, err = g.queue.Drain(ctx)
	}
	return steps, errors.Join(err, g.save(ctx))
}

func (g *Game) save(ctx context.Context) error {
	if g.store == nil {
		return nil
	}
	if err := g.store.Save(ctx, g.session, g.machine.Snapshot()); err != nil {
		g.logger.ErrorContext(ctx, "failed to save game", "session", g.session, "err", err)
		return fmt.Errorf("critical persistence error: %w", err)
	}
	return nil
}

// Redraw renders the board as it is, e.g. after Resume. Clicks on the redrawn
// board are queued like those of a render command.
func (g *Game) Redraw(ctx context.Context) error {
	if g.render == nil {
		return nil
	}
	b, err := g.Board()
	if err != nil {
		return err
	}
	return g.render(ctx, game.RenderParams{
		Draggable:    b.Draggable,
		Width:        b.Width,
		Position:     b.Position,
		BoardStyle:   b.BoardStyle,
		SquareStyles: b.SquareStyles,
		OnSquareClick: func(square string) {
			g.queue.Emit(game.EventClicked, square)
		},
	})
}

// Snapshot captures the game for persistence.
func (g *Game) Snapshot() *domain.Snapshot {
	return g.machine.Snapshot()
}

// Current returns the control state.
func (g *Game) Current() string {
	return g.machine.Current()
}

// Terminal reports whether the game is over.
func (g *Game) Terminal() bool {
	return g.machine.Terminal()
}

// Board returns the typed extended state.
func (g *Game) Board() (game.Board, error) {
	return game.BoardOf(g.machine.Extended())
}

// Outcome returns the result and how it was reached, as reported by the rules engine.
func (g *Game) Outcome() (result, method string) {
	return g.engine.Outcome()
}

// Moves returns the moves played so far in algebraic notation.
func (g *Game) Moves() []string {
	return g.engine.Moves()
}

// Position returns the FEN of the rules engine.
func (g *Game) Position() string {
	return g.engine.PositionNotation()
}
