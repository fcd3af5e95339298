package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/gambit/pkg/domain"
)

// LoggingHooks returns hooks writing every lifecycle event to logger.
// Transitions are logged at Info, the rest at Debug.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.InfoContext(ctx, "transition", "from", e.From, "to", e.To, "event", e.Event, "duration", e.Duration)
		},
		OnStateEnter: func(ctx context.Context, e *domain.StateEvent) {
			logger.DebugContext(ctx, "state entered", "state", e.State, "compound", e.Compound)
		},
		OnNoMatch: func(ctx context.Context, state string, ev domain.Event) {
			logger.DebugContext(ctx, "event ignored", "state", state, "event", ev.Name)
		},
		OnCommand: func(ctx context.Context, e *domain.CommandEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "command failed", "kind", e.Kind, "err", e.Err)
				return
			}
			logger.DebugContext(ctx, "command handled", "kind", e.Kind)
		},
	}
}

// Combine returns hooks calling each of the given hooks in order.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range hooks {
		if h.OnTransition != nil {
			out.OnTransition = chain(out.OnTransition, h.OnTransition)
		}
		if h.OnStateEnter != nil {
			out.OnStateEnter = chain(out.OnStateEnter, h.OnStateEnter)
		}
		if h.OnCommand != nil {
			out.OnCommand = chain(out.OnCommand, h.OnCommand)
		}
		if h.OnNoMatch != nil {
			prev, next := out.OnNoMatch, h.OnNoMatch
			out.OnNoMatch = func(ctx context.Context, state string, ev domain.Event) {
				if prev != nil {
					prev(ctx, state, ev)
				}
				next(ctx, state, ev)
			}
		}
	}
	return out
}

func chain[E any](prev, next func(context.Context, E)) func(context.Context, E) {
	if prev == nil {
		return next
	}
	return func(ctx context.Context, e E) {
		prev(ctx, e)
		next(ctx, e)
	}
}
