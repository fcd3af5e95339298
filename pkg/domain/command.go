package domain

// Command represents a side-effect that the engine requests the host to perform.
// The engine only describes it; a CommandSink executes it.
type Command struct {
	Kind   string `json:"kind"`
	Params any    `json:"params,omitempty"`
}
