package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/gambit/internal/presentation/text"
	"github.com/aretw0/gambit/pkg/runner"
)

// RunReplay plays the clicks read from in and draws every render on out.
func RunReplay(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	logger := createLogger(cfg)
	store, _, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	g, resumed, err := loadGame(ctx, cfg, store, logger, runner.WithRenderer(text.NewRenderer(out, colorProfile(out))))
	if err != nil {
		return err
	}
	if resumed {
		printSystemMessage(out, "Resuming at '%s'.", g.Current())
		if err := g.Redraw(ctx); err != nil {
			return err
		}
	}

	if err := runner.Replay(ctx, g, in, out); err != nil {
		return handleExecutionError(err)
	}

	if g.Terminal() {
		result, method := g.Outcome()
		printSystemMessage(out, "Game over: %s (%s).", result, method)
	} else {
		printSystemMessage(out, "Stopped at '%s'.", g.Current())
	}
	if moves := g.Moves(); len(moves) > 0 {
		fmt.Fprintf(out, "Moves: %s\n", strings.Join(moves, " "))
	}
	return nil
}
