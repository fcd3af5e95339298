package runtime

import (
	"fmt"

	"github.com/aretw0/gambit/pkg/chart"
	"github.com/aretw0/gambit/pkg/domain"
)

// Execute runs an action against a copy of the extended state.
// A nil action behaves like chart.Identity. A panic is returned as an error.
func Execute[D any](action chart.Action[D], ext domain.ExtendedState, payload any, deps D) (res domain.ActionResult, err error) {
	if action == nil {
		return domain.Empty(), nil
	}
	defer func() {
		if r := recover(); r != nil {
			res, err = domain.ActionResult{}, fmt.Errorf("action panicked: %v", r)
		}
	}()
	return action(ext.Clone(), payload, deps)
}
