package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/gambit/internal/presentation/tui"
	"github.com/aretw0/gambit/pkg/runner"
	"github.com/gdamore/tcell/v2"
)

// RunPlay opens the mouse board on the terminal.
func RunPlay(ctx context.Context, cfg Config, out io.Writer) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	g, err := Play(ctx, cfg, screen)
	screen.Fini()

	if g != nil {
		result, method := g.Outcome()
		printSystemMessage(out, "Finished at '%s' (%s %s).", g.Current(), result, method)
	}
	return handleExecutionError(err)
}

// Play runs a game on an initialized screen until the board loop ends.
func Play(ctx context.Context, cfg Config, screen tcell.Screen) (*runner.Game, error) {
	logger := createLogger(cfg)
	store, _, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer closeStore()

	board := tui.NewBoard(screen)
	g, resumed, err := loadGame(ctx, cfg, store, logger, runner.WithRenderer(board.Render))
	if err != nil {
		return nil, err
	}
	if resumed {
		if err := g.Redraw(ctx); err != nil {
			return g, err
		}
	}
	board.SetStatus("%s", g.Current())
	return g, board.Run(ctx, g)
}
