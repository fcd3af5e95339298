package domain

// ExtendedState holds all data not captured by the control state pointer.
type ExtendedState map[string]any

// Patch is a shallow partial update of an ExtendedState.
type Patch map[string]any

// Set returns a patch updating a single field.
func Set(field string, value any) Patch {
	return Patch{field: value}
}

// Clone returns a shallow copy of the state. Nested values are shared.
func (s ExtendedState) Clone() ExtendedState {
	out := make(ExtendedState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge applies the patches in order on a copy of state.
// Later patches win for the same field; nested values are replaced, never deep-merged.
func Merge(state ExtendedState, patches ...Patch) ExtendedState {
	out := state.Clone()
	for _, p := range patches {
		for k, v := range p {
			out[k] = v
		}
	}
	return out
}

// Snapshot captures a machine at rest so it can be persisted and restored.
type Snapshot struct {
	ControlState string        `json:"control_state"`
	Extended     ExtendedState `json:"extended"`
}

// Clone returns a copy of the snapshot with its own top-level extended state map.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	return &Snapshot{
		ControlState: s.ControlState,
		Extended:     s.Extended.Clone(),
	}
}
