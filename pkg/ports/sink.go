package ports

import (
	"context"

	"github.com/aretw0/gambit/pkg/domain"
)

// CommandSink executes the output commands produced by actions.
// The machine forwards commands in order, after the control state has settled.
type CommandSink interface {
	Handle(ctx context.Context, cmd domain.Command) error
}

// CommandSinkFunc adapts a function to CommandSink.
type CommandSinkFunc func(ctx context.Context, cmd domain.Command) error

// Handle calls f(ctx, cmd).
func (f CommandSinkFunc) Handle(ctx context.Context, cmd domain.Command) error {
	return f(ctx, cmd)
}
