package game

import (
	"github.com/aretw0/gambit/pkg/domain"
	"github.com/aretw0/gambit/pkg/ports"
)

// IsWhitePieceClicked holds when the clicked square has a white piece.
func IsWhitePieceClicked(ext domain.ExtendedState, payload any, _ Deps) (bool, error) {
	return isPieceClicked(White, ext, payload)
}

// IsBlackPieceClicked holds when the clicked square has a black piece.
func IsBlackPieceClicked(ext domain.ExtendedState, payload any, _ Deps) (bool, error) {
	return isPieceClicked(Black, ext, payload)
}

func isPieceClicked(side string, ext domain.ExtendedState, payload any) (bool, error) {
	sq, err := squareOf(payload)
	if err != nil {
		return false, err
	}
	b, err := BoardOf(ext)
	if err != nil {
		return false, err
	}
	return b.Owns(side, sq), nil
}

// IsLegalNonWinningMove holds when moving the selected piece to the clicked
// square is legal and does not end the game.
func IsLegalNonWinningMove(ext domain.ExtendedState, payload any, deps Deps) (bool, error) {
	o, err := selectedMove(ext, payload, deps)
	return o.Legal && !o.GameOver, err
}

// IsLegalWinningMove holds when moving the selected piece to the clicked
// square is legal and ends the game.
func IsLegalWinningMove(ext domain.ExtendedState, payload any, deps Deps) (bool, error) {
	o, err := selectedMove(ext, payload, deps)
	return o.Legal && o.GameOver, err
}

func selectedMove(ext domain.ExtendedState, payload any, deps Deps) (ports.MoveOutcome, error) {
	to, err := squareOf(payload)
	if err != nil {
		return ports.MoveOutcome{}, err
	}
	b, err := BoardOf(ext)
	if err != nil {
		return ports.MoveOutcome{}, err
	}
	if b.PieceSquare == "" {
		return ports.MoveOutcome{}, nil
	}
	return deps.outcome(b.PieceSquare, to)
}
