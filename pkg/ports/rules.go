package ports

// RulesEngine is the chess collaborator shared by the chart and the host.
// Squares use algebraic notation ("e2").
type RulesEngine interface {
	// AttemptMove plays the move if it is legal and reports whether it was played.
	AttemptMove(from, to string) bool

	// IsGameOver reports whether the current position ends the game.
	IsGameOver() bool

	// UndoLastMove takes back the last played move.
	UndoLastMove()

	// PositionNotation returns the current position in FEN.
	PositionNotation() string
}

// MoveOutcome describes what a move would do, without playing it.
type MoveOutcome struct {
	Legal    bool
	GameOver bool
	// Position is the FEN after the move. Empty when the move is illegal.
	Position string
}

// MoveOracle answers move queries without mutating the game.
// Rules engines implementing it spare guards the probe-and-undo dance.
type MoveOracle interface {
	Evaluate(from, to string) (MoveOutcome, error)
}
