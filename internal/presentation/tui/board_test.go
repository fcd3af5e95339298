package tui

import (
	"context"
	"testing"

	"github.com/aretw0/gambit/pkg/game"
	"github.com/aretw0/gambit/pkg/runner"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(60, 24)
	t.Cleanup(s.Fini)
	return s
}

// center returns the screen cell in the middle of a square.
func center(sq string) (int, int) {
	file, rank := int(sq[0]-'a'), int(sq[1]-'0')
	return originX + file*squareWidth + squareWidth/2, originY + (8-rank)*squareHeight
}

func TestSquareAt(t *testing.T) {
	for _, sq := range []string{"a1", "a8", "e2", "h8", "h1"} {
		x, y := center(sq)
		got, ok := SquareAt(x, y)
		require.True(t, ok, sq)
		assert.Equal(t, sq, got)
	}

	_, ok := SquareAt(0, 0)
	assert.False(t, ok)
	_, ok = SquareAt(originX+8*squareWidth, originY)
	assert.False(t, ok)
}

func TestBoard_Render(t *testing.T) {
	s := newScreen(t)
	b := NewBoard(s)

	err := b.Render(context.Background(), game.RenderParams{
		Position:     game.StartPosition,
		SquareStyles: map[string]any{"e2": map[string]any{}},
	})
	require.NoError(t, err)

	x, y := center("e2")
	mainc, _, style, _ := s.GetContent(x, y)
	assert.Equal(t, '♙', mainc)
	_, bg, _ := style.Decompose()
	_, want, _ := styleHighlight.Decompose()
	assert.Equal(t, want, bg)

	x, y = center("e8")
	mainc, _, _, _ = s.GetContent(x, y)
	assert.Equal(t, '♚', mainc)

	assert.Error(t, b.Render(context.Background(), game.RenderParams{Position: "bad"}))
}

func TestBoard_RunClicks(t *testing.T) {
	s := newScreen(t)
	b := NewBoard(s)
	g, err := runner.New(runner.WithRenderer(b.Render))
	require.NoError(t, err)
	ctx := context.Background()
	_, err = g.Start(ctx)
	require.NoError(t, err)

	for _, sq := range []string{"e2", "e4"} {
		x, y := center(sq)
		require.NoError(t, s.PostEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone)))
		require.NoError(t, s.PostEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone)))
	}
	require.NoError(t, s.PostEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))

	require.NoError(t, b.Run(ctx, g))
	assert.Equal(t, game.StateBlackPlays, g.Current())

	x, y := center("e4")
	mainc, _, _, _ := s.GetContent(x, y)
	assert.Equal(t, '♙', mainc)
}

func TestBoard_RunStopsOnCancel(t *testing.T) {
	s := newScreen(t)
	b := NewBoard(s)
	g, err := runner.New(runner.WithRenderer(b.Render))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, b.Run(ctx, g), context.Canceled)
}
