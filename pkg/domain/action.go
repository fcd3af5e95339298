package domain

// ActionResult is the return contract of every action.
// Updates are applied in order; Outputs are dispatched in order once all updates are applied.
type ActionResult struct {
	Updates []Patch   `json:"updates"`
	Outputs []Command `json:"outputs"`
}

// Empty is the result of the identity action.
func Empty() ActionResult {
	return ActionResult{}
}

// Concat joins results in the given order: updates of earlier results come first,
// and so do their outputs.
func Concat(results ...ActionResult) ActionResult {
	var out ActionResult
	for _, r := range results {
		out.Updates = append(out.Updates, r.Updates...)
		out.Outputs = append(out.Outputs, r.Outputs...)
	}
	return out
}
