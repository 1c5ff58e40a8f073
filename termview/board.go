// Package termview shows the universe in a terminal with termloop, drawing
// the text produced by engine.Render.
package termview

import (
	"strings"

	tl "github.com/JoelOtter/termloop"

	"uk.ac.bris.cs/sharedlife/engine"
	"uk.ac.bris.cs/sharedlife/gol"
)

// Board is a termloop entity covering the whole universe.
type Board struct {
	universe   *engine.Universe
	keyPresses chan<- rune
	actions    chan<- gol.Action
	brush      bool
}

func NewBoard(u *engine.Universe, keyPresses chan<- rune, actions chan<- gol.Action) *Board {
	return &Board{universe: u, keyPresses: keyPresses, actions: actions, brush: true}
}

func (b *Board) Draw(s *tl.Screen) {
	for y, line := range strings.Split(b.universe.Render(), "\n") {
		x := 0
		for _, glyph := range line {
			cell := tl.Cell{Fg: tl.ColorBlack, Bg: tl.ColorBlack, Ch: glyph}
			if glyph == engine.AliveGlyph {
				cell.Fg = tl.ColorYellow
			}
			s.RenderCell(x, y, &cell)
			x++
		}
	}
}

// Tick handles input. Clicks set a single cell and publish it at once.
func (b *Board) Tick(ev tl.Event) {
	switch ev.Type {
	case tl.EventKey:
		switch ev.Ch {
		case 'p', 's', 't':
			b.keyPresses <- ev.Ch
		case 'c':
			b.brush = !b.brush
		}
	case tl.EventMouse:
		if ev.Key != tl.MouseLeft {
			return
		}
		if ev.MouseY < b.universe.Height() && ev.MouseX < b.universe.Width() {
			b.actions <- gol.Action{Event: engine.Set{Row: ev.MouseY, Col: ev.MouseX, Alive: b.brush}}
		}
	}
}

// Run blocks until Ctrl+C, then asks the session to quit.
func Run(u *engine.Universe, keyPresses chan<- rune, actions chan<- gol.Action) {
	game := tl.NewGame()
	game.Screen().SetFps(20)
	level := tl.NewBaseLevel(tl.Cell{Bg: tl.ColorBlack, Fg: tl.ColorBlack, Ch: ' '})
	level.AddEntity(NewBoard(u, keyPresses, actions))
	game.Screen().SetLevel(level)
	game.Start()
	keyPresses <- 'q'
}
