package game

import (
	"fmt"
	"strings"
)

// StartPosition names the standard initial position in the extended state.
const StartPosition = "start"

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const files = "abcdefgh"

// Placement maps every occupied square of a FEN position to its piece letter
// (uppercase for white). "start" is accepted for the initial position.
func Placement(fen string) (map[string]rune, error) {
	if fen == "" || fen == StartPosition {
		fen = StartFEN
	}
	field, _, _ := strings.Cut(fen, " ")
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("invalid FEN %q: expected 8 ranks", fen)
	}

	out := make(map[string]rune, 32)
	for i, row := range ranks {
		rank := 8 - i
		file := 0
		for _, c := range row {
			switch {
			case c >= '1' && c <= '8':
				file += int(c - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", c):
				if file > 7 {
					return nil, fmt.Errorf("invalid FEN %q: rank %d overflows", fen, rank)
				}
				out[fmt.Sprintf("%c%d", files[file], rank)] = c
				file++
			default:
				return nil, fmt.Errorf("invalid FEN %q: unexpected %q", fen, c)
			}
		}
		if file != 8 {
			return nil, fmt.Errorf("invalid FEN %q: rank %d has %d files", fen, rank, file)
		}
	}
	return out, nil
}

// PiecesOf returns the squares of each side in a FEN position, rank by rank
// from the first, files a to h.
func PiecesOf(fen string) (white, black []string, err error) {
	placement, err := Placement(fen)
	if err != nil {
		return nil, nil, err
	}
	white, black = []string{}, []string{}
	for rank := 1; rank <= 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := fmt.Sprintf("%c%d", files[file], rank)
			p, ok := placement[sq]
			switch {
			case !ok:
			case p >= 'A' && p <= 'Z':
				white = append(white, sq)
			default:
				black = append(black, sq)
			}
		}
	}
	return white, black, nil
}

// ActiveColor returns the side to move in a FEN position.
func ActiveColor(fen string) string {
	if fen == "" || fen == StartPosition {
		return White
	}
	fields := strings.Fields(fen)
	if len(fields) > 1 && fields[1] == Black {
		return Black
	}
	return White
}
