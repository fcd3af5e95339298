package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge_LaterPatchWins(t *testing.T) {
	base := ExtendedState{"a": 1, "b": 2}

	got := Merge(base, Patch{"a": 10}, Patch{"a": 20, "c": 3})

	assert.Equal(t, ExtendedState{"a": 20, "b": 2, "c": 3}, got)
	assert.Equal(t, ExtendedState{"a": 1, "b": 2}, base, "Merge must not mutate its input")
}

func TestMerge_SequentialEqualsBatch(t *testing.T) {
	base := ExtendedState{"pieceSquare": "", "turn": "w"}
	u1 := Patch{"pieceSquare": "e2", "turn": "b"}
	u2 := Set("pieceSquare", "")

	batch := Merge(base, u1, u2)
	sequential := Merge(Merge(base, u1), u2)

	assert.Equal(t, sequential, batch)
	assert.Equal(t, "", batch["pieceSquare"])
	assert.Equal(t, "b", batch["turn"])
}

func TestMerge_NestedValuesAreReplaced(t *testing.T) {
	base := ExtendedState{"boardStyle": map[string]any{"borderRadius": "5px", "boxShadow": "x"}}

	got := Merge(base, Patch{"boardStyle": map[string]any{"borderRadius": "0"}})

	assert.Equal(t, map[string]any{"borderRadius": "0"}, got["boardStyle"])
}

func TestConcat_PreservesOrder(t *testing.T) {
	first := ActionResult{
		Updates: []Patch{Set("a", 1)},
		Outputs: []Command{{Kind: "render"}},
	}
	second := ActionResult{
		Updates: []Patch{Set("a", 2), Set("b", 1)},
		Outputs: []Command{{Kind: "render"}, {Kind: "move_piece"}},
	}

	got := Concat(first, Empty(), second)

	assert.Equal(t, []Patch{Set("a", 1), Set("a", 2), Set("b", 1)}, got.Updates)
	assert.Equal(t, []string{"render", "render", "move_piece"}, kinds(got.Outputs))
}

func TestSnapshotClone_IsIsolated(t *testing.T) {
	snap := &Snapshot{ControlState: "OFF", Extended: ExtendedState{"turn": "w"}}

	clone := snap.Clone()
	clone.Extended["turn"] = "b"

	assert.Equal(t, "w", snap.Extended["turn"])
	assert.Nil(t, (*Snapshot)(nil).Clone())
}

func kinds(cmds []Command) []string {
	out := make([]string, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, c.Kind)
	}
	return out
}
