package game

import (
	"fmt"

	"github.com/aretw0/gambit/pkg/ports"
)

// Deps are the collaborators injected into guards and actions.
type Deps struct {
	// Rules judges moves. When it also implements ports.MoveOracle, guards query it
	// without touching the game; otherwise they play the move and take it back.
	Rules ports.RulesEngine
	// Events receives the CLICKED events raised by the rendered board.
	Events ports.Emitter
}

// RenderParams are the parameters of a render command.
type RenderParams struct {
	Draggable    bool           `json:"draggable"`
	Width        int            `json:"width"`
	Position     string         `json:"position"`
	BoardStyle   map[string]any `json:"boardStyle"`
	SquareStyles map[string]any `json:"squareStyles"`
	// OnSquareClick emits CLICKED with the square. Nil without an emitter.
	OnSquareClick func(square string) `json:"-"`
}

// MoveParams are the parameters of a move_piece command.
type MoveParams struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (d Deps) onSquareClick() func(string) {
	if d.Events == nil {
		return nil
	}
	events := d.Events
	return func(square string) {
		events.Emit(EventClicked, square)
	}
}

// outcome tells what moving from→to would do, leaving the rules engine as it was.
func (d Deps) outcome(from, to string) (ports.MoveOutcome, error) {
	if d.Rules == nil {
		return ports.MoveOutcome{}, fmt.Errorf("no rules engine")
	}
	if oracle, ok := d.Rules.(ports.MoveOracle); ok {
		return oracle.Evaluate(from, to)
	}

	if !d.Rules.AttemptMove(from, to) {
		return ports.MoveOutcome{}, nil
	}
	defer d.Rules.UndoLastMove()
	return ports.MoveOutcome{
		Legal:    true,
		GameOver: d.Rules.IsGameOver(),
		Position: d.Rules.PositionNotation(),
	}, nil
}

func squareOf(payload any) (string, error) {
	sq, ok := payload.(string)
	if !ok || sq == "" {
		return "", fmt.Errorf("expected a square, got %v", payload)
	}
	return sq, nil
}
