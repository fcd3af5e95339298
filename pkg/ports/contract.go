package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/gambit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSnapshotStoreContract runs a suite of tests to verify that a SnapshotStore
// implementation adheres to the defined interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	newSnapshot := func() *domain.Snapshot {
		return &domain.Snapshot{
			ControlState: "WHITE_PIECE_SELECTED",
			Extended: domain.ExtendedState{
				"pieceSquare":  "e2",
				"width":        320,
				"squareStyles": map[string]any{"e2": map[string]any{"backgroundColor": "rgba(255, 255, 0, 0.4)"}},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		snap := newSnapshot()

		err := store.Save(ctx, sessionID, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, snap.ControlState, loaded.ControlState)
		assert.Equal(t, "e2", loaded.Extended["pieceSquare"])
		// JSON backed stores turn numbers into float64; only existence is part of the contract.
		assert.NotNil(t, loaded.Extended["width"])
		assert.Contains(t, loaded.Extended["squareStyles"], "e2")
	})

	t.Run("Saved Snapshot Is Isolated", func(t *testing.T) {
		snap := newSnapshot()
		require.NoError(t, store.Save(ctx, sessionID, snap))

		snap.ControlState = "GAME_OVER"
		snap.Extended["pieceSquare"] = "h8"

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "WHITE_PIECE_SELECTED", loaded.ControlState)
		assert.Equal(t, "e2", loaded.Extended["pieceSquare"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, newSnapshot())
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, id1, newSnapshot()))
		require.NoError(t, store.Save(ctx, id2, newSnapshot()))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
