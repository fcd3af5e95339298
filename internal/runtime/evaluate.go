package runtime

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/gambit/pkg/chart"
	"github.com/aretw0/gambit/pkg/domain"
)

// Choice is the transition branch selected for an event.
type Choice[D any] struct {
	// Source is the state owning the definition: the current leaf or one of its ancestors.
	Source     string
	Label      string
	To         string
	Action     chart.Action[D]
	ActionName string
}

// Evaluate picks the transition for event in the current state.
// It returns false when no definition exists or when no guard matches.
// A predicate that fails or panics counts as false.
func Evaluate[D any](c *chart.Compiled[D], current string, ev domain.Event, ext domain.ExtendedState, deps D, logger *slog.Logger) (Choice[D], bool) {
	tr, ok := c.Resolve(current, ev.Name)
	if !ok {
		return Choice[D]{}, false
	}

	if !tr.Guarded() {
		return Choice[D]{Source: tr.From, To: tr.To, Action: tr.Action, ActionName: tr.ActionName}, true
	}

	for _, g := range tr.Guards {
		matched, err := check(g.Predicate, ext, ev.Payload, deps)
		if err != nil {
			logger.Debug("guard failed, treated as false",
				"state", current,
				"event", ev.Name,
				"guard", g.Label,
				"err", err,
			)
			continue
		}
		if matched {
			return Choice[D]{Source: tr.From, Label: g.Label, To: g.To, Action: g.Action, ActionName: g.ActionName}, true
		}
	}
	return Choice[D]{}, false
}

func check[D any](pred chart.Predicate[D], ext domain.ExtendedState, payload any, deps D) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, fmt.Errorf("guard panicked: %v", r)
		}
	}()
	return pred(ext.Clone(), payload, deps)
}
