package runtime

import (
	"log/slog"

	"github.com/aretw0/gambit/internal/logging"
	"github.com/aretw0/gambit/pkg/domain"
	"github.com/aretw0/gambit/pkg/ports"
)

type settings struct {
	logger *slog.Logger
	sink   ports.CommandSink
	hooks  domain.LifecycleHooks
}

// Option configures an Interpreter.
type Option func(*settings)

// WithLogger sets the structured logger. A nil logger keeps the no-op default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCommandSink sets where output commands are forwarded once a transition settles.
func WithCommandSink(sink ports.CommandSink) Option {
	return func(s *settings) {
		s.sink = sink
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *settings) {
		s.hooks = hooks
	}
}

func newSettings(opts []Option) settings {
	s := settings{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
