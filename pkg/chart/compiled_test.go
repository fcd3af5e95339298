package chart

import (
	"testing"

	"github.com/aretw0/gambit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileLight(t *testing.T) *Compiled[testDeps] {
	t.Helper()
	def, err := lightChart().Build()
	require.NoError(t, err)
	c, err := Compile(def)
	require.NoError(t, err)
	return c
}

func TestCompiled_Tree(t *testing.T) {
	c := compileLight(t)

	assert.True(t, c.Has("green"))
	assert.False(t, c.Has("blue"))
	assert.True(t, c.IsCompound("on"))
	assert.False(t, c.IsCompound("green"))
	assert.Equal(t, "on", c.Parent("red"))
	assert.Equal(t, "", c.Parent("on"))
	assert.Equal(t, []string{"green", "red"}, c.Children("on"))
	assert.Equal(t, []string{"on", "red"}, c.Path("red"))
	assert.True(t, c.IsDescendant("red", "on"))
	assert.False(t, c.IsDescendant("off", "on"))
	assert.Equal(t, []string{"off", "on", "green", "red"}, c.StateNames())
}

func TestCompiled_Resolve(t *testing.T) {
	c := compileLight(t)

	tr, ok := c.Resolve("green", "tick")
	require.True(t, ok)
	assert.Equal(t, "green", tr.From)

	// Handled by the compound parent.
	tr, ok = c.Resolve("green", "power")
	require.True(t, ok)
	assert.Equal(t, "on", tr.From)
	assert.Equal(t, "off", tr.To)

	_, ok = c.Lookup("green", "power")
	assert.False(t, ok)

	_, ok = c.Resolve("off", "tick")
	assert.False(t, ok)
}

func TestCompiled_Terminal(t *testing.T) {
	b := lightChart()
	b.States(Leaf("broken"))
	def, err := b.Build()
	require.NoError(t, err)
	c, err := Compile(def)
	require.NoError(t, err)

	assert.True(t, c.Terminal("broken"))
	assert.False(t, c.Terminal("red"))
	assert.False(t, c.Terminal("off"))
}

func TestCompiled_IsIsolatedFromSource(t *testing.T) {
	def, err := lightChart().Build()
	require.NoError(t, err)
	c, err := Compile(def)
	require.NoError(t, err)

	def.Transitions[0].To = "off"
	def.InitialExtended["count"] = 99
	def.States[0].Name = "renamed"

	tr, ok := c.Lookup("off", "power")
	require.True(t, ok)
	assert.Equal(t, "on", tr.To)
	assert.Equal(t, domain.ExtendedState{"count": 0}, c.InitialExtended())
	assert.True(t, c.Has("off"))

	ext := c.InitialExtended()
	ext["count"] = 5
	assert.Equal(t, 0, c.InitialExtended()["count"])
}

func TestCompile_RejectsInvalid(t *testing.T) {
	_, err := Compile(&Definition[testDeps]{Initial: "a"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
