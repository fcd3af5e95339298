package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/gambit/pkg/domain"
	"github.com/aretw0/gambit/pkg/game"
	"github.com/gdamore/tcell/v2"
)

// Square geometry on screen. The board starts after the rank labels.
const (
	squareWidth  = 5
	squareHeight = 2
	originX      = 3
	originY      = 1
)

var glyphs = map[rune]rune{
	'K': '♔', 'Q': '♕', 'R': '♖', 'B': '♗', 'N': '♘', 'P': '♙',
	'k': '♚', 'q': '♛', 'r': '♜', 'b': '♝', 'n': '♞', 'p': '♟',
}

var (
	styleLight     = tcell.StyleDefault.Background(tcell.NewHexColor(0xf0d9b5)).Foreground(tcell.ColorBlack)
	styleDark      = tcell.StyleDefault.Background(tcell.NewHexColor(0xb58863)).Foreground(tcell.ColorBlack)
	styleHighlight = tcell.StyleDefault.Background(tcell.NewHexColor(0xf6f669)).Foreground(tcell.ColorBlack)
)

// Player is what the board drives: the events raised by clicks are queued by the
// render command's OnSquareClick, then drained.
type Player interface {
	Drain(ctx context.Context) ([]*domain.Step, error)
	Current() string
	Terminal() bool
}

// Board draws render commands on a tcell screen and turns mouse clicks into
// CLICKED events.
type Board struct {
	screen tcell.Screen

	mu      sync.Mutex
	last    game.RenderParams
	drawn   bool
	status  string
	pressed bool
}

// NewBoard wraps an initialized screen and enables the mouse.
func NewBoard(screen tcell.Screen) *Board {
	screen.EnableMouse()
	return &Board{screen: screen}
}

// Render is a game.Renderer.
func (b *Board) Render(_ context.Context, p game.RenderParams) error {
	if _, err := game.Placement(p.Position); err != nil {
		return err
	}
	b.mu.Lock()
	b.last = p
	b.drawn = true
	b.mu.Unlock()
	b.Draw()
	return nil
}

// SetStatus sets the line shown under the board.
func (b *Board) SetStatus(format string, args ...any) {
	b.mu.Lock()
	b.status = fmt.Sprintf(format, args...)
	b.mu.Unlock()
	b.Draw()
}

// Draw repaints the last rendered board.
func (b *Board) Draw() {
	b.mu.Lock()
	p, drawn, status := b.last, b.drawn, b.status
	b.mu.Unlock()

	s := b.screen
	s.Clear()
	if drawn {
		placement, _ := game.Placement(p.Position)
		for rank := 8; rank >= 1; rank-- {
			row := 8 - rank
			label := rune('0' + rank)
			s.SetContent(1, originY+row*squareHeight, label, nil, tcell.StyleDefault)
			for file := 0; file < 8; file++ {
				sq := fmt.Sprintf("%c%d", 'a'+file, rank)
				style := styleLight
				if (rank+file)%2 == 0 {
					style = styleDark
				}
				if _, ok := p.SquareStyles[sq]; ok {
					style = styleHighlight
				}
				x0, y0 := originX+file*squareWidth, originY+row*squareHeight
				for dy := 0; dy < squareHeight; dy++ {
					for dx := 0; dx < squareWidth; dx++ {
						s.SetContent(x0+dx, y0+dy, ' ', nil, style)
					}
				}
				if piece, ok := placement[sq]; ok {
					s.SetContent(x0+squareWidth/2, y0, glyphs[piece], nil, style)
				}
			}
		}
		for file := 0; file < 8; file++ {
			s.SetContent(originX+file*squareWidth+squareWidth/2, originY+8*squareHeight, rune('a'+file), nil, tcell.StyleDefault)
		}
	}
	for i, r := range []rune(status) {
		s.SetContent(originX+i, originY+8*squareHeight+2, r, nil, tcell.StyleDefault)
	}
	s.Show()
}

// SquareAt maps screen coordinates to a square name.
func SquareAt(x, y int) (string, bool) {
	if x < originX || y < originY {
		return "", false
	}
	file, row := (x-originX)/squareWidth, (y-originY)/squareHeight
	if file > 7 || row > 7 {
		return "", false
	}
	return fmt.Sprintf("%c%d", 'a'+file, 8-row), true
}

// Run handles screen events until the player reaches a terminal state and a key
// is pressed, Esc, q or Ctrl-C is pressed, or ctx is done.
func (b *Board) Run(ctx context.Context, player Player) error {
	stop := context.AfterFunc(ctx, func() {
		b.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		switch ev := b.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			return ctx.Err()
		case *tcell.EventResize:
			b.screen.Sync()
			b.Draw()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' || player.Terminal() {
				return nil
			}
		case *tcell.EventMouse:
			if err := b.mouse(ctx, ev, player); err != nil {
				b.SetStatus("%s: %v", player.Current(), err)
			}
		}
	}
}

func (b *Board) mouse(ctx context.Context, ev *tcell.EventMouse, player Player) error {
	down := ev.Buttons()&tcell.Button1 != 0
	b.mu.Lock()
	wasDown := b.pressed
	b.pressed = down
	click := b.last.OnSquareClick
	b.mu.Unlock()

	if !down || wasDown || click == nil || player.Terminal() {
		return nil
	}
	sq, ok := SquareAt(ev.Position())
	if !ok {
		return nil
	}
	click(sq)
	if _, err := player.Drain(ctx); err != nil {
		return err
	}
	if player.Terminal() {
		b.SetStatus("%s. Press any key.", player.Current())
	} else {
		b.SetStatus("%s", player.Current())
	}
	return nil
}
