package game_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/gambit"
	"github.com/aretw0/gambit/pkg/adapters/chessengine"
	"github.com/aretw0/gambit/pkg/domain"
	"github.com/aretw0/gambit/pkg/game"
	"github.com/aretw0/gambit/pkg/ports"
	"github.com/aretw0/gambit/pkg/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type table struct {
	t       *testing.T
	engine  *chessengine.Engine
	machine *gambit.Machine[game.Deps]
	rec     *sink.Recorder
}

func newTable(t *testing.T) *table {
	t.Helper()
	def, err := game.Definition()
	require.NoError(t, err)

	engine := chessengine.New()
	rec := &sink.Recorder{}
	m, err := gambit.New(def, game.Deps{Rules: engine},
		gambit.WithCommandSink(sink.Multi(game.NewCommandSink(engine, nil), rec)),
	)
	require.NoError(t, err)
	return &table{t: t, engine: engine, machine: m, rec: rec}
}

func (tb *table) send(name string, payload any) *domain.Step {
	tb.t.Helper()
	step, err := tb.machine.Send(context.Background(), name, payload)
	require.NoError(tb.t, err)
	return step
}

func (tb *table) click(squares ...string) {
	tb.t.Helper()
	for _, sq := range squares {
		step := tb.send(game.EventClicked, sq)
		require.True(tb.t, step.Matched, "click %s in %s", sq, step.From)
	}
}

func (tb *table) board() game.Board {
	tb.t.Helper()
	b, err := game.BoardOf(tb.machine.Extended())
	require.NoError(tb.t, err)
	return b
}

func TestStart_RendersInitialBoard(t *testing.T) {
	tb := newTable(t)

	step := tb.send(game.EventStart, nil)

	assert.Equal(t, game.StateWhitePlays, tb.machine.Current())
	assert.Equal(t, []string{game.StateWhiteTurn, game.StateWhitePlays}, step.Entered)
	assert.Empty(t, step.Updates)
	require.Len(t, step.Outputs, 1)
	assert.Equal(t, game.CommandRender, step.Outputs[0].Kind)

	p := step.Outputs[0].Params.(game.RenderParams)
	assert.Equal(t, game.StartPosition, p.Position)
	assert.Equal(t, 320, p.Width)
	assert.Empty(t, p.SquareStyles)
	assert.Nil(t, p.OnSquareClick)
}

func TestClick_OwnPieceSelects(t *testing.T) {
	tb := newTable(t)
	tb.send(game.EventStart, nil)

	step := tb.send(game.EventClicked, "e2")

	assert.Equal(t, game.StateWhitePieceSelected, step.To)
	assert.Equal(t, "e2", tb.board().PieceSquare)
	require.Len(t, step.Outputs, 1)
	p := step.Outputs[0].Params.(game.RenderParams)
	assert.Equal(t, map[string]any{"e2": map[string]any{"backgroundColor": game.HighlightColor}}, p.SquareStyles)
}

func TestClick_IgnoredSquares(t *testing.T) {
	tb := newTable(t)
	tb.send(game.EventStart, nil)
	before := tb.machine.Snapshot()

	for _, sq := range []string{"e4", "e7"} {
		step := tb.send(game.EventClicked, sq)
		assert.False(t, step.Matched, sq)
		assert.Empty(t, step.Outputs, sq)
	}
	assert.Equal(t, before, tb.machine.Snapshot())
}

func TestClick_ReselectsAndRejectsIllegal(t *testing.T) {
	tb := newTable(t)
	tb.send(game.EventStart, nil)
	tb.click("e2", "d2")
	assert.Equal(t, game.StateWhitePieceSelected, tb.machine.Current())
	assert.Equal(t, "d2", tb.board().PieceSquare)

	step := tb.send(game.EventClicked, "d5")
	assert.False(t, step.Matched)
	assert.Equal(t, "d2", tb.board().PieceSquare)
	assert.Equal(t, chessengine.New().PositionNotation(), tb.engine.PositionNotation())
}

func TestClick_LegalMovePassesTurn(t *testing.T) {
	tb := newTable(t)
	tb.send(game.EventStart, nil)
	tb.click("e2")

	step := tb.send(game.EventClicked, "e4")

	assert.Equal(t, game.StateBlackPlays, step.To)
	b := tb.board()
	assert.Empty(t, b.PieceSquare)
	assert.Equal(t, game.Black, b.Turn)
	assert.True(t, strings.HasPrefix(b.Position, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b"), b.Position)
	assert.True(t, b.Owns(game.White, "e4"))
	assert.False(t, b.Owns(game.White, "e2"))
	assert.Empty(t, b.SquareStyles)

	require.Len(t, step.Outputs, 2)
	assert.Equal(t, game.CommandRender, step.Outputs[0].Kind)
	assert.Equal(t, b.Position, step.Outputs[0].Params.(game.RenderParams).Position)
	assert.Equal(t, domain.Command{Kind: game.CommandMovePiece, Params: game.MoveParams{From: "e2", To: "e4"}}, step.Outputs[1])

	// The host applied the move.
	assert.Equal(t, b.Position, tb.engine.PositionNotation())

	// Black now owns the board.
	assert.False(t, tb.send(game.EventClicked, "d2").Matched)
	tb.click("e7")
	assert.Equal(t, game.StateBlackPieceSelected, tb.machine.Current())
}

func TestClick_WinningMoveEndsGame(t *testing.T) {
	tb := newTable(t)
	tb.send(game.EventStart, nil)
	tb.click("f2", "f3", "e7", "e5", "g2", "g4", "d8")
	require.Equal(t, game.StateBlackPieceSelected, tb.machine.Current())

	ext := tb.machine.Extended()
	deps := game.Deps{Rules: tb.engine}
	end, err := game.EndGame(ext, "h4", deps)
	require.NoError(t, err)
	move, err := game.MoveBlackPiece(ext, "h4", deps)
	require.NoError(t, err)
	want := domain.Concat(end, move)

	step := tb.send(game.EventClicked, "h4")

	assert.Equal(t, game.StateGameOver, step.To)
	assert.Equal(t, want.Updates, step.Updates)
	assert.Equal(t, want.Outputs, step.Outputs)
	assert.True(t, tb.machine.Terminal())
	assert.True(t, tb.engine.IsGameOver())

	result, method := tb.engine.Outcome()
	assert.Equal(t, "0-1", result)
	assert.Equal(t, "Checkmate", method)
	assert.Equal(t, []string{
		game.CommandRender, // start
		game.CommandRender, game.CommandRender, game.CommandMovePiece,
		game.CommandRender, game.CommandRender, game.CommandMovePiece,
		game.CommandRender, game.CommandRender, game.CommandMovePiece,
		game.CommandRender,
		game.CommandRender, game.CommandRender, game.CommandMovePiece,
	}, tb.rec.Kinds())
}

func TestGuards_Idempotent(t *testing.T) {
	engine := chessengine.New()
	ext := domain.Merge(game.InitialExtended(), domain.Set(game.FieldPieceSquare, "g1"))

	rulesets := map[string]ports.RulesEngine{
		"oracle": engine,
		"probe":  probeOnly{engine},
	}
	for name, rules := range rulesets {
		deps := game.Deps{Rules: rules}
		for _, sq := range []string{"f3", "g3", "g1"} {
			first, err1 := game.IsLegalNonWinningMove(ext, sq, deps)
			second, err2 := game.IsLegalNonWinningMove(ext, sq, deps)
			require.NoError(t, err1, name)
			require.NoError(t, err2, name)
			assert.Equal(t, first, second, "%s %s", name, sq)

			won, err := game.IsLegalWinningMove(ext, sq, deps)
			require.NoError(t, err, name)
			assert.False(t, won, "%s %s", name, sq)
		}
		legal, _ := game.IsLegalNonWinningMove(ext, "f3", deps)
		assert.True(t, legal, name)
		assert.Equal(t, chessengine.New().PositionNotation(), engine.PositionNotation(), name)
	}
}

// probeOnly hides the move oracle so guards fall back to play-and-undo.
type probeOnly struct {
	ports.RulesEngine
}

func TestGuards_ProbeFallbackSeesMate(t *testing.T) {
	engine, err := chessengine.FromFEN("rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq g3 0 2")
	require.NoError(t, err)
	before := engine.PositionNotation()
	white, black, err := game.PiecesOf(before)
	require.NoError(t, err)
	ext := domain.Merge(game.InitialExtended(), domain.Patch{
		game.FieldPosition:       before,
		game.FieldWhitePiecesPos: white,
		game.FieldBlackPiecesPos: black,
		game.FieldPieceSquare:    "d8",
	})

	deps := game.Deps{Rules: probeOnly{engine}}
	won, err := game.IsLegalWinningMove(ext, "h4", deps)
	require.NoError(t, err)
	assert.True(t, won)
	quiet, err := game.IsLegalNonWinningMove(ext, "h4", deps)
	require.NoError(t, err)
	assert.False(t, quiet)
	assert.Equal(t, before, engine.PositionNotation())
}

func TestGuards_NoSelection(t *testing.T) {
	deps := game.Deps{Rules: chessengine.New()}
	ok, err := game.IsLegalNonWinningMove(game.InitialExtended(), "e4", deps)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = game.IsWhitePieceClicked(game.InitialExtended(), 42, deps)
	assert.Error(t, err)
}

func TestRender_ClickEmitsEvent(t *testing.T) {
	var got []domain.Event
	deps := game.Deps{Events: emitFunc(func(name string, payload any) {
		got = append(got, domain.NewEvent(name, payload))
	})}

	res, err := game.DisplayInitScreen(game.InitialExtended(), nil, deps)
	require.NoError(t, err)
	p := res.Outputs[0].Params.(game.RenderParams)
	require.NotNil(t, p.OnSquareClick)
	p.OnSquareClick("e2")

	assert.Equal(t, []domain.Event{domain.NewEvent(game.EventClicked, "e2")}, got)
}

type emitFunc func(name string, payload any)

func (f emitFunc) Emit(name string, payload any) { f(name, payload) }

func TestMove_IllegalIsError(t *testing.T) {
	ext := domain.Merge(game.InitialExtended(), domain.Set(game.FieldPieceSquare, "e2"))
	_, err := game.MoveWhitePiece(ext, "e5", game.Deps{Rules: chessengine.New()})
	assert.ErrorContains(t, err, "illegal move e2-e5")
}
