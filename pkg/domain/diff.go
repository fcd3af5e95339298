package domain

import (
	"reflect"
)

// SnapshotDiff represents the changes between two snapshots.
// It is designed to be serialized to JSON for partial updates on the client.
type SnapshotDiff struct {
	// ControlState is set when the machine moved to another state.
	ControlState *string `json:"control_state,omitempty"`

	// Extended contains only changed, added or deleted fields.
	// For deletions, the field is present with a nil value.
	// Clients should merge these updates into their local state.
	Extended map[string]any `json:"extended,omitempty"`
}

// Diff calculates the difference between oldSnap and newSnap.
// If oldSnap is nil, it returns a diff representing the entire newSnap (initial load).
// It returns nil when nothing changed.
func Diff(oldSnap, newSnap *Snapshot) *SnapshotDiff {
	if newSnap == nil {
		return nil
	}

	diff := &SnapshotDiff{}
	if oldSnap == nil || oldSnap.ControlState != newSnap.ControlState {
		state := newSnap.ControlState
		diff.ControlState = &state
	}
	diff.Extended = diffExtended(oldSnap, newSnap)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffExtended(old *Snapshot, new *Snapshot) map[string]any {
	delta := make(map[string]any)

	if old == nil {
		for k, v := range new.Extended {
			delta[k] = v
		}
		return nilIfEmpty(delta)
	}

	// Added or modified
	for k, newVal := range new.Extended {
		oldVal, exists := old.Extended[k]
		if !exists || !reflect.DeepEqual(oldVal, newVal) {
			delta[k] = newVal
		}
	}

	// Deleted
	for k := range old.Extended {
		if _, exists := new.Extended[k]; !exists {
			delta[k] = nil
		}
	}

	return nilIfEmpty(delta)
}

// nilIfEmpty lets omitempty drop the key.
func nilIfEmpty(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	return m
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return d.ControlState == nil && len(d.Extended) == 0
}
