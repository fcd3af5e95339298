package emitter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/gambit/internal/logging"
	"github.com/aretw0/gambit/pkg/domain"
	"github.com/aretw0/gambit/pkg/ports"
)

// Target is the machine a Queue feeds.
type Target interface {
	Dispatch(ctx context.Context, ev domain.Event) (*domain.Step, error)
}

// Queue is a FIFO event source for one machine.
// Emit only enqueues; Drain hands events to the machine one at a time, so events
// emitted by command handlers during a dispatch run after it completes.
type Queue struct {
	mu       sync.Mutex
	pending  []domain.Event
	draining bool
	target   Target
	logger   *slog.Logger
}

var _ ports.Emitter = (*Queue)(nil)

// Option configures a Queue.
type Option func(*Queue)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) {
		if logger != nil {
			q.logger = logger
		}
	}
}

// New creates an empty queue. Attach the machine before draining.
func New(opts ...Option) *Queue {
	q := &Queue{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Attach sets the machine the queue feeds. Machines usually receive the queue
// among their dependencies, so they are attached after construction.
func (q *Queue) Attach(t Target) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.target = t
}

// Emit appends an event to the queue.
func (q *Queue) Emit(name string, payload any) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, domain.NewEvent(name, payload))
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain dispatches pending events in order until the queue is empty, including
// events emitted while draining. A nested call, made from inside a command handler,
// returns immediately: the outer Drain picks up what was emitted.
// Every event is attempted; errors are joined.
func (q *Queue) Drain(ctx context.Context) ([]*domain.Step, error) {
	q.mu.Lock()
	if q.draining {
		q.mu.Unlock()
		return nil, nil
	}
	if q.target == nil {
		q.mu.Unlock()
		return nil, fmt.Errorf("emitter: no machine attached")
	}
	q.draining = true
	target := q.target
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.draining = false
		q.mu.Unlock()
	}()

	var (
		steps []*domain.Step
		errs  []error
	)
	for {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		ev, ok := q.next()
		if !ok {
			break
		}
		step, err := target.Dispatch(ctx, ev)
		if step != nil {
			steps = append(steps, step)
		}
		if err != nil {
			q.logger.DebugContext(ctx, "event failed", "event", ev.Name, "err", err)
			errs = append(errs, err)
		}
	}
	return steps, errors.Join(errs...)
}

// Send emits one event and drains the queue.
func (q *Queue) Send(ctx context.Context, name string, payload any) ([]*domain.Step, error) {
	q.Emit(name, payload)
	return q.Drain(ctx)
}

func (q *Queue) next() (domain.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return domain.Event{}, false
	}
	ev := q.pending[0]
	q.pending = q.pending[1:]
	return ev, true
}
