package sdl

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

// Window draws the universe as a board of square cells with a one pixel
// grid line between them.
type Window struct {
	Width, Height int32
	cellSize      int32
	window        *sdl.Window
	renderer      *sdl.Renderer
	alive         []bool
	aliveRects    []sdl.Rect
	deadRects     []sdl.Rect
}

var (
	gridColour  = sdl.Color{R: 0xCC, G: 0xCC, B: 0xCC, A: 0xFF}
	aliveColour = sdl.Color{R: 0xFF, G: 0xFF, B: 0x00, A: 0xFF}
	deadColour  = sdl.Color{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
)

func NewWindow(width, height, cellSize int32) *Window {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		panic(err)
	}
	window, err := sdl.CreateWindow("Shared Game of Life",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		(cellSize+1)*width+1, (cellSize+1)*height+1, sdl.WINDOW_SHOWN)
	if err != nil {
		panic(err)
	}
	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		panic(err)
	}
	return &Window{
		Width:    width,
		Height:   height,
		cellSize: cellSize,
		window:   window,
		renderer: renderer,
		alive:    make([]bool, width*height),
	}
}

func (w *Window) Destroy() {
	_ = w.renderer.Destroy()
	_ = w.window.Destroy()
	sdl.Quit()
}

func (w *Window) FlipCell(x, y int) {
	if x < 0 || y < 0 || x >= int(w.Width) || y >= int(w.Height) {
		panic(fmt.Sprintf("cell (%d, %d) outside %dx%d window", x, y, w.Width, w.Height))
	}
	i := y*int(w.Width) + x
	w.alive[i] = !w.alive[i]
}

func (w *Window) CountAlive() int {
	count := 0
	for _, a := range w.alive {
		if a {
			count++
		}
	}
	return count
}

// CellAt converts a pixel position to a cell, clamping to the last row and
// column so the border pixels still hit a cell.
func (w *Window) CellAt(px, py int32) (row, col int, ok bool) {
	if px < 0 || py < 0 {
		return 0, 0, false
	}
	r, c := py/(w.cellSize+1), px/(w.cellSize+1)
	if r >= w.Height {
		r = w.Height - 1
	}
	if c >= w.Width {
		c = w.Width - 1
	}
	return int(r), int(c), true
}

func (w *Window) RenderFrame() {
	w.aliveRects = w.aliveRects[:0]
	w.deadRects = w.deadRects[:0]
	for i, a := range w.alive {
		x, y := int32(i)%w.Width, int32(i)/w.Width
		rect := sdl.Rect{X: x*(w.cellSize+1) + 1, Y: y*(w.cellSize+1) + 1, W: w.cellSize, H: w.cellSize}
		if a {
			w.aliveRects = append(w.aliveRects, rect)
		} else {
			w.deadRects = append(w.deadRects, rect)
		}
	}
	w.fill(gridColour, nil)
	w.fill(deadColour, w.deadRects)
	w.fill(aliveColour, w.aliveRects)
	w.renderer.Present()
}

func (w *Window) fill(c sdl.Color, rects []sdl.Rect) {
	_ = w.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
	if rects == nil {
		_ = w.renderer.Clear()
		return
	}
	if len(rects) > 0 {
		_ = w.renderer.FillRects(rects)
	}
}

func (w *Window) PollEvent() sdl.Event {
	return sdl.PollEvent()
}
