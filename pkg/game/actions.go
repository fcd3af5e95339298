package game

import (
	"fmt"

	"github.com/aretw0/gambit/pkg/chart"
	"github.com/aretw0/gambit/pkg/domain"
)

func render(b Board, position string, squareStyles map[string]any, deps Deps) domain.Command {
	return domain.Command{
		Kind: CommandRender,
		Params: RenderParams{
			Draggable:     b.Draggable,
			Width:         b.Width,
			Position:      position,
			BoardStyle:    b.BoardStyle,
			SquareStyles:  squareStyles,
			OnSquareClick: deps.onSquareClick(),
		},
	}
}

// DisplayInitScreen renders the board as it is.
func DisplayInitScreen(ext domain.ExtendedState, _ any, deps Deps) (domain.ActionResult, error) {
	b, err := BoardOf(ext)
	if err != nil {
		return domain.ActionResult{}, err
	}
	return domain.ActionResult{
		Outputs: []domain.Command{render(b, b.Position, b.SquareStyles, deps)},
	}, nil
}

// HighlightSelectedPiece selects the clicked square and highlights it.
func HighlightSelectedPiece(ext domain.ExtendedState, payload any, deps Deps) (domain.ActionResult, error) {
	sq, err := squareOf(payload)
	if err != nil {
		return domain.ActionResult{}, err
	}
	b, err := BoardOf(ext)
	if err != nil {
		return domain.ActionResult{}, err
	}

	styles := map[string]any{sq: map[string]any{"backgroundColor": HighlightColor}}
	return domain.ActionResult{
		Updates: []domain.Patch{
			domain.Set(FieldSquareStyles, styles),
			domain.Set(FieldPieceSquare, sq),
		},
		Outputs: []domain.Command{render(b, b.Position, styles, deps)},
	}, nil
}

// MoveWhitePiece moves the selected white piece to the clicked square.
func MoveWhitePiece(ext domain.ExtendedState, payload any, deps Deps) (domain.ActionResult, error) {
	return movePiece(White, ext, payload, deps)
}

// MoveBlackPiece moves the selected black piece to the clicked square.
func MoveBlackPiece(ext domain.ExtendedState, payload any, deps Deps) (domain.ActionResult, error) {
	return movePiece(Black, ext, payload, deps)
}

// movePiece computes the position after the move without playing it: the
// move_piece command does that once the machine has settled.
func movePiece(side string, ext domain.ExtendedState, payload any, deps Deps) (domain.ActionResult, error) {
	to, err := squareOf(payload)
	if err != nil {
		return domain.ActionResult{}, err
	}
	b, err := BoardOf(ext)
	if err != nil {
		return domain.ActionResult{}, err
	}
	from := b.PieceSquare

	o, err := deps.outcome(from, to)
	if err != nil {
		return domain.ActionResult{}, err
	}
	if !o.Legal {
		return domain.ActionResult{}, fmt.Errorf("illegal move %s-%s", from, to)
	}
	white, black, err := PiecesOf(o.Position)
	if err != nil {
		return domain.ActionResult{}, err
	}

	styles := map[string]any{}
	return domain.ActionResult{
		Updates: []domain.Patch{
			domain.Set(FieldPieceSquare, ""),
			domain.Set(FieldPosition, o.Position),
			domain.Set(FieldSquareStyles, styles),
			domain.Set(FieldWhitePiecesPos, white),
			domain.Set(FieldBlackPiecesPos, black),
			domain.Set(FieldTurn, Opponent(side)),
		},
		Outputs: []domain.Command{
			render(b, o.Position, styles, deps),
			{Kind: CommandMovePiece, Params: MoveParams{From: from, To: to}},
		},
	}, nil
}

// EndGame clears the selection and renders the current position.
func EndGame(ext domain.ExtendedState, _ any, deps Deps) (domain.ActionResult, error) {
	b, err := BoardOf(ext)
	if err != nil {
		return domain.ActionResult{}, err
	}
	if deps.Rules == nil {
		return domain.ActionResult{}, fmt.Errorf("no rules engine")
	}
	position := deps.Rules.PositionNotation()

	styles := map[string]any{}
	return domain.ActionResult{
		Updates: []domain.Patch{
			domain.Set(FieldPieceSquare, ""),
			domain.Set(FieldPosition, position),
			domain.Set(FieldSquareStyles, styles),
		},
		Outputs: []domain.Command{render(b, position, styles, deps)},
	}, nil
}

// EndWhiteGame is EndGame followed by MoveWhitePiece.
func EndWhiteGame(ext domain.ExtendedState, payload any, deps Deps) (domain.ActionResult, error) {
	return chart.Compose[Deps](EndGame, MoveWhitePiece)(ext, payload, deps)
}

// EndBlackGame is EndGame followed by MoveBlackPiece.
func EndBlackGame(ext domain.ExtendedState, payload any, deps Deps) (domain.ActionResult, error) {
	return chart.Compose[Deps](EndGame, MoveBlackPiece)(ext, payload, deps)
}
