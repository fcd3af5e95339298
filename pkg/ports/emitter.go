package ports

// Emitter delivers events to a machine in the order they are emitted.
// Emit never blocks on the machine; events raised while the machine is busy
// are processed after the current one completes.
type Emitter interface {
	Emit(name string, payload any)
}
