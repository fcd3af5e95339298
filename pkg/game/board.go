package game

import (
	"fmt"
	"slices"

	"github.com/aretw0/gambit/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Board is the typed view of the chess extended state.
type Board struct {
	Draggable      bool           `mapstructure:"draggable" json:"draggable"`
	Turn           string         `mapstructure:"turn" json:"turn"`
	Width          int            `mapstructure:"width" json:"width"`
	Position       string         `mapstructure:"position" json:"position"`
	WhitePiecesPos []string       `mapstructure:"whitePiecesPos" json:"whitePiecesPos"`
	BlackPiecesPos []string       `mapstructure:"blackPiecesPos" json:"blackPiecesPos"`
	PieceSquare    string         `mapstructure:"pieceSquare" json:"pieceSquare"`
	BoardStyle     map[string]any `mapstructure:"boardStyle" json:"boardStyle"`
	SquareStyles   map[string]any `mapstructure:"squareStyles" json:"squareStyles"`
}

// BoardOf decodes the extended state. Loosely typed values, such as the float64
// numbers of a JSON snapshot, are converted.
func BoardOf(ext domain.ExtendedState) (Board, error) {
	var b Board
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &b,
	})
	if err != nil {
		return Board{}, fmt.Errorf("failed to create board decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(ext)); err != nil {
		return Board{}, fmt.Errorf("invalid board state: %w", err)
	}
	return b, nil
}

// Pieces returns the squares occupied by side.
func (b Board) Pieces(side string) []string {
	if side == White {
		return b.WhitePiecesPos
	}
	return b.BlackPiecesPos
}

// Owns reports whether side has a piece on square.
func (b Board) Owns(side, square string) bool {
	return slices.Contains(b.Pieces(side), square)
}

// InitialExtended returns the extended state of a game that has not started.
func InitialExtended() domain.ExtendedState {
	return domain.ExtendedState{
		FieldDraggable: false,
		FieldTurn:      White,
		FieldWidth:     320,
		FieldPosition:  StartPosition,
		FieldWhitePiecesPos: []string{
			"a1", "b1", "c1", "d1", "e1", "f1", "g1", "h1",
			"a2", "b2", "c2", "d2", "e2", "f2", "g2", "h2",
		},
		FieldBlackPiecesPos: []string{
			"a7", "b7", "c7", "d7", "e7", "f7", "g7", "h7",
			"a8", "b8", "c8", "d8", "e8", "f8", "g8", "h8",
		},
		FieldPieceSquare: "",
		FieldBoardStyle: map[string]any{
			"borderRadius": "5px",
			"boxShadow":    "0 5px 15px rgba(0, 0, 0, 0.5)",
		},
		FieldSquareStyles: map[string]any{},
	}
}
