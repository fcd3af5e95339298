package text

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/gambit/pkg/game"
	"github.com/muesli/termenv"
)

// Colors of the board, as hex for termenv.
const (
	LightSquare     = "#f0d9b5"
	DarkSquare      = "#b58863"
	HighlightSquare = "#f6f669"
)

// Board writes a render command as an 8x8 text board, white at the bottom.
// White pieces are uppercase, empty squares are dots. Highlighted squares are
// colored when the profile supports it and bracketed otherwise.
func Board(w io.Writer, p game.RenderParams, profile termenv.Profile) error {
	placement, err := game.Placement(p.Position)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("  +------------------------+\n")
	for rank := 8; rank >= 1; rank-- {
		fmt.Fprintf(&sb, "%d |", rank)
		for file := 'a'; file <= 'h'; file++ {
			sq := fmt.Sprintf("%c%d", file, rank)
			piece := '.'
			if r, ok := placement[sq]; ok {
				piece = r
			}
			_, highlighted := p.SquareStyles[sq]
			sb.WriteString(cell(piece, highlighted, (rank+int(file-'a'))%2 == 0, profile))
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("  +------------------------+\n")
	sb.WriteString("    a  b  c  d  e  f  g  h\n")

	_, err = io.WriteString(w, sb.String())
	return err
}

func cell(piece rune, highlighted, dark bool, profile termenv.Profile) string {
	if profile == termenv.Ascii {
		if highlighted {
			return fmt.Sprintf("[%c]", piece)
		}
		return fmt.Sprintf(" %c ", piece)
	}
	bg := LightSquare
	switch {
	case highlighted:
		bg = HighlightSquare
	case dark:
		bg = DarkSquare
	}
	return termenv.String(fmt.Sprintf(" %c ", piece)).
		Foreground(profile.Color("#000000")).
		Background(profile.Color(bg)).
		String()
}

// NewRenderer returns a game.Renderer drawing every render command on w.
func NewRenderer(w io.Writer, profile termenv.Profile) game.Renderer {
	return func(_ context.Context, p game.RenderParams) error {
		return Board(w, p, profile)
	}
}
