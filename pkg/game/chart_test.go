package game_test

import (
	"testing"

	"github.com/aretw0/gambit/pkg/chart"
	"github.com/aretw0/gambit/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transitionShape struct {
	From, Event, To, Action string
	Guards                  []guardShape
}

type guardShape struct {
	Label, To, Action string
}

func shape(def *chart.Definition[game.Deps]) []transitionShape {
	out := make([]transitionShape, 0, len(def.Transitions))
	for _, tr := range def.Transitions {
		s := transitionShape{From: tr.From, Event: tr.Event, To: tr.To, Action: tr.ActionName}
		for _, g := range tr.Guards {
			s.Guards = append(s.Guards, guardShape{Label: g.Label, To: g.To, Action: g.ActionName})
		}
		out = append(out, s)
	}
	return out
}

func TestDefinition_YAMLMatchesGo(t *testing.T) {
	fromGo, err := game.Definition()
	require.NoError(t, err)
	fromYAML, err := game.DefinitionFromYAML()
	require.NoError(t, err)

	assert.Equal(t, fromGo.Initial, fromYAML.Initial)
	assert.ElementsMatch(t, fromGo.Events, fromYAML.Events)
	assert.Equal(t, fromGo.States, fromYAML.States)
	assert.Equal(t, shape(fromGo), shape(fromYAML))

	goBoard, err := game.BoardOf(fromGo.InitialExtended)
	require.NoError(t, err)
	yamlBoard, err := game.BoardOf(fromYAML.InitialExtended)
	require.NoError(t, err)
	assert.Equal(t, goBoard, yamlBoard)
}

func TestDefinition_Compiles(t *testing.T) {
	def, err := game.Definition()
	require.NoError(t, err)
	c, err := chart.Compile(def)
	require.NoError(t, err)

	assert.Equal(t, game.StateOff, c.Initial())
	assert.True(t, c.IsCompound(game.StateWhiteTurn))
	assert.True(t, c.IsCompound(game.StateBlackTurn))
	assert.True(t, c.Terminal(game.StateGameOver))
	assert.False(t, c.Terminal(game.StateWhitePlays))
	assert.True(t, c.IsDescendant(game.StateBlackPieceSelected, game.StateBlackTurn))
}

func TestRegistry_Names(t *testing.T) {
	guards, actions := game.Registry().Names()
	assert.ElementsMatch(t, []string{
		game.GuardWhitePieceClicked, game.GuardBlackPieceClicked,
		game.GuardLegalNonWinningMove, game.GuardLegalWinningMove,
	}, guards)
	assert.Contains(t, actions, chart.IdentityName)
	assert.Contains(t, actions, game.ActionEndBlackGame)
}

func TestChartYAML_IsCopy(t *testing.T) {
	a := game.ChartYAML()
	a[0] = '!'
	assert.NotEqual(t, a[0], game.ChartYAML()[0])
}
