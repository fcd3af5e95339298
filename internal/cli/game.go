package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/gambit/pkg/domain"
	"github.com/aretw0/gambit/pkg/ports"
	"github.com/aretw0/gambit/pkg/runner"
)

// loadGame resumes the configured session from store or starts a new game.
// Without a session ID the game is not persisted.
func loadGame(ctx context.Context, cfg Config, store ports.SnapshotStore, logger *slog.Logger, opts ...runner.Option) (*runner.Game, bool, error) {
	def, err := LoadDefinition(cfg.ChartPath)
	if err != nil {
		return nil, false, err
	}
	opts = append([]runner.Option{runner.WithDefinition(def), runner.WithLogger(logger)}, opts...)
	if cfg.SessionID != "" {
		opts = append(opts, runner.WithStore(store), runner.WithSessionID(cfg.SessionID))

		snap, err := store.Load(ctx, cfg.SessionID)
		switch {
		case err == nil:
			g, err := runner.Resume(snap, opts...)
			if err != nil {
				return nil, false, fmt.Errorf("failed to resume session %q: %w", cfg.SessionID, err)
			}
			logger.Info("Session Resumed", "session_id", cfg.SessionID, "state", g.Current())
			return g, true, nil
		case !errors.Is(err, domain.ErrSessionNotFound):
			return nil, false, fmt.Errorf("failed to load session %q: %w", cfg.SessionID, err)
		}
	}

	g, err := runner.New(opts...)
	if err != nil {
		return nil, false, err
	}
	if _, err := g.Start(ctx); err != nil {
		return nil, false, err
	}
	if cfg.SessionID != "" {
		logger.Info("Session Created", "session_id", cfg.SessionID)
	}
	return g, false, nil
}
