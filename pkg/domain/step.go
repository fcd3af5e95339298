package domain

// Step reports what a single dispatch did.
type Step struct {
	Event Event  `json:"event"`
	From  string `json:"from"`
	To    string `json:"to"`

	// Matched is false when no transition applied. From and To are then equal
	// and Updates and Outputs are empty.
	Matched bool `json:"matched"`

	// Entered lists the states reached by entry resolution, outermost first.
	Entered []string `json:"entered,omitempty"`

	Updates []Patch   `json:"updates,omitempty"`
	Outputs []Command `json:"outputs,omitempty"`
}
