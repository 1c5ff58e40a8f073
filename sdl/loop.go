package sdl

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"uk.ac.bris.cs/sharedlife/engine"
	"uk.ac.bris.cs/sharedlife/gol"
)

const CellSize = 5

// Run shows the universe until the session closes events. Keys: p pause,
// s snapshot, t tick, q quit, c switch brush colour. Dragging the mouse
// paints cells, which are published together when the button is released.
func Run(p gol.Params, events <-chan gol.Event, keyPresses chan<- rune, actions chan<- gol.Action) {
	w := NewWindow(int32(p.ImageWidth), int32(p.ImageHeight), CellSize)
	defer w.Destroy()

	brush := true
	painting := false
	last := [2]int{-1, -1}
	paint := func(x, y int32) {
		row, col, ok := w.CellAt(x, y)
		if !ok || (last == [2]int{row, col}) {
			return
		}
		last = [2]int{row, col}
		actions <- gol.Action{Event: engine.Set{Row: row, Col: col, Alive: brush}, Hold: true}
	}

	quitting := false
	dirty := true
loop:
	for {
		event := w.PollEvent()
		if event != nil && !quitting {
			switch e := event.(type) {
			case *sdl.KeyboardEvent:
				if e.Type != sdl.KEYDOWN {
					break
				}
				switch e.Keysym.Sym {
				case sdl.K_p:
					keyPresses <- 'p'
				case sdl.K_s:
					keyPresses <- 's'
				case sdl.K_t:
					keyPresses <- 't'
				case sdl.K_c:
					brush = !brush
					fmt.Println("Brush alive:", brush)
				case sdl.K_q:
					keyPresses <- 'q'
					quitting = true
				}
			case *sdl.MouseButtonEvent:
				if e.Button != sdl.BUTTON_LEFT {
					break
				}
				if e.State == sdl.PRESSED {
					painting = true
					paint(e.X, e.Y)
				} else if painting {
					painting = false
					last = [2]int{-1, -1}
					actions <- gol.Action{Flush: true}
				}
			case *sdl.MouseMotionEvent:
				if painting {
					paint(e.X, e.Y)
				}
			case *sdl.QuitEvent:
				keyPresses <- 'q'
				quitting = true
			}
		}
		select {
		case event, ok := <-events:
			if !ok {
				break loop
			}
			switch e := event.(type) {
			case gol.CellsFlipped:
				for _, cell := range e.Cells {
					w.FlipCell(cell.X, cell.Y)
				}
				dirty = true
			case gol.TurnComplete:
			case gol.AliveCellsCount:
				fmt.Printf("Completed Turns %-8v %v (window %v)\n", e.CompletedTurns, e, w.CountAlive())
			default:
				if len(event.String()) > 0 {
					fmt.Printf("Completed Turns %-8v%v\n", event.GetCompletedTurns(), event)
				}
			}
		default:
			if dirty {
				w.RenderFrame()
				dirty = false
			}
			sdl.Delay(1)
		}
	}
}
