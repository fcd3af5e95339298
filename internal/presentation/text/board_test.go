package text

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/gambit/pkg/game"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_StartPosition(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Board(&buf, game.RenderParams{Position: game.StartPosition}, termenv.Ascii))

	want := strings.Join([]string{
		"  +------------------------+",
		"8 | r  n  b  q  k  b  n  r |",
		"7 | p  p  p  p  p  p  p  p |",
		"6 | .  .  .  .  .  .  .  . |",
		"5 | .  .  .  .  .  .  .  . |",
		"4 | .  .  .  .  .  .  .  . |",
		"3 | .  .  .  .  .  .  .  . |",
		"2 | P  P  P  P  P  P  P  P |",
		"1 | R  N  B  Q  K  B  N  R |",
		"  +------------------------+",
		"    a  b  c  d  e  f  g  h",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestBoard_Highlight(t *testing.T) {
	var buf bytes.Buffer
	p := game.RenderParams{
		Position:     game.StartPosition,
		SquareStyles: map[string]any{"e2": map[string]any{"backgroundColor": game.HighlightColor}},
	}
	require.NoError(t, Board(&buf, p, termenv.Ascii))
	assert.Contains(t, buf.String(), "2 | P  P  P  P [P] P  P  P |")
}

func TestBoard_Colors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Board(&buf, game.RenderParams{Position: game.StartPosition}, termenv.TrueColor))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestNewRenderer_InvalidPosition(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(&buf, termenv.Ascii)(context.Background(), game.RenderParams{Position: "8/8 w"})
	assert.Error(t, err)
	assert.Empty(t, buf.String())
}
