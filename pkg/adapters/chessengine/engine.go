package chessengine

import (
	"fmt"
	"sync"

	"github.com/aretw0/gambit/pkg/ports"
	"github.com/notnil/chess"
)

// StartPosition is the position name meaning a fresh game.
const StartPosition = "start"

// Engine implements ports.RulesEngine and ports.MoveOracle on top of notnil/chess.
// Promotion is always to a queen. Safe for concurrent use.
type Engine struct {
	mu      sync.Mutex
	game    *chess.Game
	history []*chess.Game
}

var (
	_ ports.RulesEngine = (*Engine)(nil)
	_ ports.MoveOracle  = (*Engine)(nil)
)

// New creates an engine at the standard starting position.
func New() *Engine {
	return &Engine{game: chess.NewGame()}
}

// FromFEN creates an engine at the given position. "start" and "" mean a fresh game.
func FromFEN(fen string) (*Engine, error) {
	if fen == "" || fen == StartPosition {
		return New(), nil
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("invalid position %q: %w", fen, err)
	}
	return &Engine{game: chess.NewGame(opt)}, nil
}

// AttemptMove plays from→to if it is legal.
func (e *Engine) AttemptMove(from, to string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.find(e.game, from, to)
	if err != nil || m == nil {
		return false
	}
	prev := e.game.Clone()
	if err := e.game.Move(m); err != nil {
		return false
	}
	e.history = append(e.history, prev)
	return true
}

// IsGameOver reports whether the current position has an outcome.
func (e *Engine) IsGameOver() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.Outcome() != chess.NoOutcome
}

// UndoLastMove restores the position before the last move played through
// AttemptMove. It does nothing when there is no such move.
func (e *Engine) UndoLastMove() {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := len(e.history)
	if n == 0 {
		return
	}
	e.game = e.history[n-1]
	e.history = e.history[:n-1]
}

// PositionNotation returns the current position in FEN.
func (e *Engine) PositionNotation() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.FEN()
}

// Evaluate plays from→to on a copy of the game and reports the result.
// Malformed squares are errors; well-formed illegal moves are not.
func (e *Engine) Evaluate(from, to string) (ports.MoveOutcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.find(e.game, from, to)
	if err != nil {
		return ports.MoveOutcome{}, err
	}
	if m == nil {
		return ports.MoveOutcome{}, nil
	}
	probe := e.game.Clone()
	if err := probe.Move(m); err != nil {
		return ports.MoveOutcome{}, nil
	}
	return ports.MoveOutcome{
		Legal:    true,
		GameOver: probe.Outcome() != chess.NoOutcome,
		Position: probe.FEN(),
	}, nil
}

// Outcome returns the result ("1-0", "0-1", "1/2-1/2" or "*") and how it was reached.
func (e *Engine) Outcome() (string, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return string(e.game.Outcome()), e.game.Method().String()
}

// Moves returns the moves played so far in algebraic notation.
func (e *Engine) Moves() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	moves := e.game.Moves()
	positions := e.game.Positions()
	out := make([]string, 0, len(moves))
	for i, m := range moves {
		out = append(out, chess.AlgebraicNotation{}.Encode(positions[i], m))
	}
	return out
}

// find returns the legal move from→to, preferring a queen promotion.
// It returns nil when the squares are valid but no such move exists.
func (e *Engine) find(g *chess.Game, from, to string) (*chess.Move, error) {
	if !ValidSquare(from) {
		return nil, fmt.Errorf("invalid square %q", from)
	}
	if !ValidSquare(to) {
		return nil, fmt.Errorf("invalid square %q", to)
	}
	for _, m := range g.ValidMoves() {
		if m.S1().String() != from || m.S2().String() != to {
			continue
		}
		if p := m.Promo(); p == chess.NoPieceType || p == chess.Queen {
			return m, nil
		}
	}
	return nil, nil
}

// ValidSquare reports whether s is an algebraic square name such as "e4".
func ValidSquare(s string) bool {
	return len(s) == 2 && s[0] >= 'a' && s[0] <= 'h' && s[1] >= '1' && s[1] <= '8'
}
