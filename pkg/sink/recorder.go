package sink

import (
	"context"
	"sync"

	"github.com/aretw0/gambit/pkg/domain"
)

// Recorder is a CommandSink that keeps every command it receives.
type Recorder struct {
	mu   sync.Mutex
	cmds []domain.Command
}

// Handle records cmd.
func (r *Recorder) Handle(_ context.Context, cmd domain.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = append(r.cmds, cmd)
	return nil
}

// Commands returns a copy of the recorded commands.
func (r *Recorder) Commands() []domain.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Command, len(r.cmds))
	copy(out, r.cmds)
	return out
}

// Kinds returns the kinds of the recorded commands, in order.
func (r *Recorder) Kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.cmds))
	for i, c := range r.cmds {
		out[i] = c.Kind
	}
	return out
}

// Drain returns the recorded commands and forgets them.
func (r *Recorder) Drain() []domain.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.cmds
	r.cmds = nil
	return out
}
