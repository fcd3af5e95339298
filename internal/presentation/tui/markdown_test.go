package tui

import (
	"testing"

	"github.com/aretw0/gambit/pkg/chart"
	"github.com/aretw0/gambit/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe_ChessChart(t *testing.T) {
	def, err := game.Definition()
	require.NoError(t, err)
	c, err := chart.Compile(def)
	require.NoError(t, err)

	md := Describe("Chess", c)

	assert.Contains(t, md, "# Chess\n")
	assert.Contains(t, md, "Initial state: `OFF`")
	assert.Contains(t, md, "- `WHITE_TURN` (compound)\n  - `WHITE_PLAYS` (leaf)")
	assert.Contains(t, md, "- `GAME_OVER` (terminal)")
	assert.Contains(t, md, "| WHITE_TURN | _init_ | | WHITE_PLAYS | displayInitScreen |")
	assert.Contains(t, md, "| BLACK_PIECE_SELECTED | CLICKED | isLegalWinningMove | GAME_OVER | endBlackGame |")

	render, err := NewPlainRenderer()
	require.NoError(t, err)
	out, err := render(md)
	require.NoError(t, err)
	assert.Contains(t, out, "WHITE_PLAYS")
}
