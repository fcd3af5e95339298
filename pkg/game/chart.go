package game

import (
	_ "embed"

	"github.com/aretw0/gambit/pkg/chart"
)

//go:embed chart.yaml
var chartYAML []byte

// Names under which guards and actions are registered.
const (
	GuardWhitePieceClicked   = "isWhitePieceClicked"
	GuardBlackPieceClicked   = "isBlackPieceClicked"
	GuardLegalNonWinningMove = "isLegalNonWinningMove"
	GuardLegalWinningMove    = "isLegalWinningMove"
	ActionDisplayInitScreen  = "displayInitScreen"
	ActionHighlightSelected  = "highlightSelectedPiece"
	ActionMoveWhitePiece     = "moveWhitePiece"
	ActionMoveBlackPiece     = "moveBlackPiece"
	ActionEndWhiteGame       = "endWhiteGame"
	ActionEndBlackGame       = "endBlackGame"
)

// Registry returns the named guards and actions of the chess chart.
func Registry() *chart.Registry[Deps] {
	reg := chart.NewRegistry[Deps]()
	reg.RegisterGuard(GuardWhitePieceClicked, IsWhitePieceClicked)
	reg.RegisterGuard(GuardBlackPieceClicked, IsBlackPieceClicked)
	reg.RegisterGuard(GuardLegalNonWinningMove, IsLegalNonWinningMove)
	reg.RegisterGuard(GuardLegalWinningMove, IsLegalWinningMove)
	reg.RegisterAction(ActionDisplayInitScreen, DisplayInitScreen)
	reg.RegisterAction(ActionHighlightSelected, HighlightSelectedPiece)
	reg.RegisterAction(ActionMoveWhitePiece, MoveWhitePiece)
	reg.RegisterAction(ActionMoveBlackPiece, MoveBlackPiece)
	reg.RegisterAction(ActionEndWhiteGame, EndWhiteGame)
	reg.RegisterAction(ActionEndBlackGame, EndBlackGame)
	return reg
}

// Definition returns the chess chart built in Go.
func Definition() (*chart.Definition[Deps], error) {
	b := chart.New[Deps]().
		Initial(StateOff).
		Extended(InitialExtended()).
		Events(EventClicked, EventStart).
		States(
			chart.Leaf(StateOff),
			chart.Compound(StateWhiteTurn, chart.Leaf(StateWhitePlays), chart.Leaf(StateWhitePieceSelected)),
			chart.Compound(StateBlackTurn, chart.Leaf(StateBlackPlays), chart.Leaf(StateBlackPieceSelected)),
			chart.Leaf(StateGameOver),
		)

	b.On(StateOff, EventStart).Go(StateWhiteTurn, chart.Identity[Deps]).Named(chart.IdentityName)
	b.Init(StateWhiteTurn).Go(StateWhitePlays, DisplayInitScreen).Named(ActionDisplayInitScreen)
	b.Init(StateBlackTurn).Go(StateBlackPlays, DisplayInitScreen).Named(ActionDisplayInitScreen)

	b.On(StateWhitePlays, EventClicked).
		When(GuardWhitePieceClicked, IsWhitePieceClicked, StateWhitePieceSelected, HighlightSelectedPiece).Named(ActionHighlightSelected)
	b.On(StateWhitePieceSelected, EventClicked).
		When(GuardWhitePieceClicked, IsWhitePieceClicked, StateWhitePieceSelected, HighlightSelectedPiece).Named(ActionHighlightSelected).
		When(GuardLegalNonWinningMove, IsLegalNonWinningMove, StateBlackPlays, MoveWhitePiece).Named(ActionMoveWhitePiece).
		When(GuardLegalWinningMove, IsLegalWinningMove, StateGameOver, EndWhiteGame).Named(ActionEndWhiteGame)

	b.On(StateBlackPlays, EventClicked).
		When(GuardBlackPieceClicked, IsBlackPieceClicked, StateBlackPieceSelected, HighlightSelectedPiece).Named(ActionHighlightSelected)
	b.On(StateBlackPieceSelected, EventClicked).
		When(GuardBlackPieceClicked, IsBlackPieceClicked, StateBlackPieceSelected, HighlightSelectedPiece).Named(ActionHighlightSelected).
		When(GuardLegalNonWinningMove, IsLegalNonWinningMove, StateWhitePlays, MoveBlackPiece).Named(ActionMoveBlackPiece).
		When(GuardLegalWinningMove, IsLegalWinningMove, StateGameOver, EndBlackGame).Named(ActionEndBlackGame)

	return b.Build()
}

// DefinitionFromYAML returns the chess chart loaded from its embedded YAML document.
func DefinitionFromYAML() (*chart.Definition[Deps], error) {
	return chart.ParseYAML(chartYAML, Registry())
}

// ChartYAML returns the embedded YAML document.
func ChartYAML() []byte {
	out := make([]byte, len(chartYAML))
	copy(out, chartYAML)
	return out
}
