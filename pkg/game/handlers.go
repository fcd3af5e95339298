package game

import (
	"context"
	"fmt"

	"github.com/aretw0/gambit/pkg/domain"
	"github.com/aretw0/gambit/pkg/ports"
	"github.com/aretw0/gambit/pkg/sink"
)

// Renderer draws the board described by a render command.
type Renderer func(ctx context.Context, p RenderParams) error

// NewCommandSink returns the host side of the chess chart: move_piece plays the
// move on rules, render hands the board to render. A nil render drops renders.
func NewCommandSink(rules ports.RulesEngine, render Renderer) *sink.Dispatcher {
	d := sink.NewDispatcher()
	d.Register(CommandMovePiece, func(_ context.Context, cmd domain.Command) error {
		p, ok := cmd.Params.(MoveParams)
		if !ok {
			return fmt.Errorf("%s: unexpected params %T", CommandMovePiece, cmd.Params)
		}
		if !rules.AttemptMove(p.From, p.To) {
			return fmt.Errorf("%s: illegal move %s-%s", CommandMovePiece, p.From, p.To)
		}
		return nil
	})
	d.Register(CommandRender, func(ctx context.Context, cmd domain.Command) error {
		p, ok := cmd.Params.(RenderParams)
		if !ok {
			return fmt.Errorf("%s: unexpected params %T", CommandRender, cmd.Params)
		}
		if render == nil {
			return nil
		}
		return render(ctx, p)
	})
	return d
}
