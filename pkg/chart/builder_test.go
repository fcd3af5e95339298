package chart

import (
	"testing"

	"github.com/aretw0/gambit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDeps struct{}

func always(domain.ExtendedState, any, testDeps) (bool, error) { return true, nil }

func lightChart() *Builder[testDeps] {
	b := New[testDeps]().
		Initial("off").
		Extended(domain.ExtendedState{"count": 0}).
		Events("power", "tick").
		States(
			Leaf("off"),
			Compound("on", Leaf("green"), Leaf("red")),
		)

	b.On("off", "power").Go("on", Identity[testDeps])
	b.Init("on").Go("green", Identity[testDeps]).Named("render")
	b.On("green", "tick").When("always", always, "red", nil)
	b.On("red", "tick").Go("green", nil)
	b.On("on", "power").Go("off", nil)
	return b
}

func TestBuilder_SimpleChart(t *testing.T) {
	def, err := lightChart().Build()
	require.NoError(t, err)

	assert.Equal(t, "off", def.Initial)
	assert.Equal(t, []string{"power", "tick"}, def.Events)
	require.Len(t, def.Transitions, 5)

	initTr := def.Transitions[1]
	assert.Equal(t, domain.EventInit, initTr.Event)
	assert.Equal(t, "green", initTr.To)
	assert.Equal(t, "render", initTr.ActionName)

	guarded := def.Transitions[2]
	assert.True(t, guarded.Guarded())
	assert.Equal(t, []string{"red"}, guarded.Targets())
	assert.Equal(t, "always", guarded.Guards[0].Label)
}

func TestBuilder_NamedAppliesToLastGuard(t *testing.T) {
	b := lightChart()
	b.On("red", "power").
		When("first", always, "off", nil).Named("a").
		When("second", always, "green", nil).Named("b")

	def, err := b.Build()
	require.NoError(t, err)

	tr := def.Transitions[len(def.Transitions)-1]
	assert.Equal(t, "a", tr.Guards[0].ActionName)
	assert.Equal(t, "b", tr.Guards[1].ActionName)
	assert.Empty(t, tr.ActionName)
}

func TestBuilder_BuildRejectsDuplicates(t *testing.T) {
	b := lightChart()
	b.On("off", "power").Go("on", nil)

	_, err := b.Build()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has(ErrCodeDuplicateTransition))
}

func TestCompose_ConcatenatesInOrder(t *testing.T) {
	first := func(domain.ExtendedState, any, testDeps) (domain.ActionResult, error) {
		return domain.ActionResult{
			Updates: []domain.Patch{domain.Set("x", 1)},
			Outputs: []domain.Command{{Kind: "a"}},
		}, nil
	}
	second := func(domain.ExtendedState, any, testDeps) (domain.ActionResult, error) {
		return domain.ActionResult{
			Updates: []domain.Patch{domain.Set("x", 2)},
			Outputs: []domain.Command{{Kind: "b"}},
		}, nil
	}

	got, err := Compose[testDeps](first, nil, second)(domain.ExtendedState{}, nil, testDeps{})
	require.NoError(t, err)

	assert.Equal(t, []domain.Patch{domain.Set("x", 1), domain.Set("x", 2)}, got.Updates)
	assert.Equal(t, []domain.Command{{Kind: "a"}, {Kind: "b"}}, got.Outputs)
}

func TestIdentity_IsEmpty(t *testing.T) {
	got, err := Identity[testDeps](domain.ExtendedState{"a": 1}, "payload", testDeps{})
	require.NoError(t, err)
	assert.Empty(t, got.Updates)
	assert.Empty(t, got.Outputs)
}
