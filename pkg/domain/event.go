package domain

// EventInit is the reserved internal event raised when a compound state is entered.
// It is never accepted from the outside and its transitions are never guarded.
const EventInit = "init"

// Event is a named input to the machine.
type Event struct {
	Name    string `json:"name" yaml:"name"`
	Payload any    `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// NewEvent creates an event with the given payload.
func NewEvent(name string, payload any) Event {
	return Event{Name: name, Payload: payload}
}
