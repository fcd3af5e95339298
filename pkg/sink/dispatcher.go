package sink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/gambit/pkg/domain"
	"github.com/aretw0/gambit/pkg/ports"
)

// ErrNoHandler is returned when a command kind has no registered handler.
var ErrNoHandler = errors.New("no handler for command")

// HandlerFunc executes one kind of command.
type HandlerFunc func(ctx context.Context, cmd domain.Command) error

// Middleware wraps a handler, e.g. to log or time it.
type Middleware func(next HandlerFunc) HandlerFunc

// Dispatcher implements ports.CommandSink by routing commands to handlers by kind.
type Dispatcher struct {
	mu         sync.RWMutex
	handlers   map[string]HandlerFunc
	middleware []Middleware
	fallback   HandlerFunc
}

var _ ports.CommandSink = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher without handlers.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]HandlerFunc)}
}

// Register adds a handler for a kind.
// If a handler for the same kind exists, it is overwritten.
func (d *Dispatcher) Register(kind string, fn HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[kind] = fn
}

// Fallback sets the handler for kinds nobody registered.
// Without one, such commands fail with ErrNoHandler.
func (d *Dispatcher) Fallback(fn HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fallback = fn
}

// Use appends middleware. The first one registered is the outermost.
func (d *Dispatcher) Use(mw ...Middleware) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.middleware = append(d.middleware, mw...)
}

// Kinds returns the registered kinds, sorted.
func (d *Dispatcher) Kinds() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	kinds := make([]string, 0, len(d.handlers))
	for k := range d.handlers {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Handle looks up the handler for cmd.Kind and executes it through the middleware chain.
func (d *Dispatcher) Handle(ctx context.Context, cmd domain.Command) error {
	d.mu.RLock()
	fn, ok := d.handlers[cmd.Kind]
	if !ok {
		fn = d.fallback
	}
	chain := d.middleware
	d.mu.RUnlock()

	if fn == nil {
		return fmt.Errorf("%w: %s", ErrNoHandler, cmd.Kind)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		fn = chain[i](fn)
	}
	return fn(ctx, cmd)
}

// Logging returns middleware recording every command at debug level.
func Logging(logger *slog.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, cmd domain.Command) error {
			start := time.Now()
			err := next(ctx, cmd)
			if err != nil {
				logger.DebugContext(ctx, "command handled", "kind", cmd.Kind, "duration", time.Since(start), "err", err)
			} else {
				logger.DebugContext(ctx, "command handled", "kind", cmd.Kind, "duration", time.Since(start))
			}
			return err
		}
	}
}

// Multi forwards each command to every sink in order and joins their errors.
func Multi(sinks ...ports.CommandSink) ports.CommandSink {
	return ports.CommandSinkFunc(func(ctx context.Context, cmd domain.Command) error {
		var errs []error
		for _, s := range sinks {
			if err := s.Handle(ctx, cmd); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
