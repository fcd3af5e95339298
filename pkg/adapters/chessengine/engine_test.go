package chessengine_test

import (
	"strings"
	"testing"

	"github.com/aretw0/gambit/pkg/adapters/chessengine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// scholarsMate leaves white one move (h5f7) from checkmate.
var scholarsMate = [][2]string{
	{"e2", "e4"}, {"e7", "e5"},
	{"f1", "c4"}, {"b8", "c6"},
	{"d1", "h5"}, {"g8", "f6"},
}

func play(t *testing.T, e *chessengine.Engine, moves [][2]string) {
	t.Helper()
	for _, m := range moves {
		require.True(t, e.AttemptMove(m[0], m[1]), "%s%s should be legal", m[0], m[1])
	}
}

func TestEngine_AttemptMoveAndUndo(t *testing.T) {
	e := chessengine.New()
	assert.Equal(t, startFEN, e.PositionNotation())

	assert.False(t, e.AttemptMove("e2", "e5"), "pawns cannot jump three squares")
	assert.False(t, e.AttemptMove("z9", "e4"))
	assert.Equal(t, startFEN, e.PositionNotation())

	require.True(t, e.AttemptMove("e2", "e4"))
	assert.True(t, strings.HasPrefix(e.PositionNotation(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq "))
	assert.Equal(t, []string{"e4"}, e.Moves())

	e.UndoLastMove()
	assert.Equal(t, startFEN, e.PositionNotation())

	// Nothing left to undo.
	e.UndoLastMove()
	assert.Equal(t, startFEN, e.PositionNotation())
}

func TestEngine_EvaluateIsPure(t *testing.T) {
	e := chessengine.New()
	play(t, e, scholarsMate)
	before := e.PositionNotation()

	first, err := e.Evaluate("h5", "f7")
	require.NoError(t, err)
	second, err := e.Evaluate("h5", "f7")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, first.Legal)
	assert.True(t, first.GameOver)
	assert.NotEqual(t, before, first.Position)
	assert.Equal(t, before, e.PositionNotation(), "evaluation must not move the game")
	assert.False(t, e.IsGameOver())

	quiet, err := e.Evaluate("a2", "a3")
	require.NoError(t, err)
	assert.True(t, quiet.Legal)
	assert.False(t, quiet.GameOver)

	illegal, err := e.Evaluate("a2", "a5")
	require.NoError(t, err)
	assert.False(t, illegal.Legal)
	assert.Empty(t, illegal.Position)

	_, err = e.Evaluate("", "a5")
	assert.Error(t, err)
}

func TestEngine_Checkmate(t *testing.T) {
	e := chessengine.New()
	play(t, e, scholarsMate)
	require.True(t, e.AttemptMove("h5", "f7"))

	assert.True(t, e.IsGameOver())
	result, method := e.Outcome()
	assert.Equal(t, "1-0", result)
	assert.Equal(t, "Checkmate", method)
}

func TestEngine_PromotesToQueen(t *testing.T) {
	e, err := chessengine.FromFEN("8/P7/8/8/8/8/8/k6K w - - 0 1")
	require.NoError(t, err)

	require.True(t, e.AttemptMove("a7", "a8"))
	assert.Equal(t, "Q7/8/8/8/8/8/8/k6K b - - 0 1", e.PositionNotation())
}

func TestFromFEN(t *testing.T) {
	e, err := chessengine.FromFEN(chessengine.StartPosition)
	require.NoError(t, err)
	assert.Equal(t, startFEN, e.PositionNotation())

	_, err = chessengine.FromFEN("not a position")
	assert.Error(t, err)
}

func TestValidSquare(t *testing.T) {
	assert.True(t, chessengine.ValidSquare("a1"))
	assert.True(t, chessengine.ValidSquare("h8"))
	assert.False(t, chessengine.ValidSquare("i1"))
	assert.False(t, chessengine.ValidSquare("a9"))
	assert.False(t, chessengine.ValidSquare("a10"))
}
