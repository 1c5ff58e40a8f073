// Package webview shows the universe with ebiten. Built with GOOS=js it runs
// in a browser canvas.
package webview

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"uk.ac.bris.cs/sharedlife/engine"
	"uk.ac.bris.cs/sharedlife/gol"
)

var (
	yellow = [4]byte{0xFF, 0xFF, 0x00, 0xFF}
	black  = [4]byte{0x00, 0x00, 0x00, 0xFF}
)

// Game implements ebiten.Game on top of a shared universe. It only reads the
// universe; every change goes to the session as an action.
type Game struct {
	universe   *engine.Universe
	keyPresses chan<- rune
	actions    chan<- gol.Action
	done       <-chan struct{}

	pixels   []byte
	brush    bool
	painting bool
	last     [2]int
}

func NewGame(u *engine.Universe, keyPresses chan<- rune, actions chan<- gol.Action, done <-chan struct{}) *Game {
	return &Game{
		universe:   u,
		keyPresses: keyPresses,
		actions:    actions,
		done:       done,
		brush:      true,
		last:       [2]int{-1, -1},
	}
}

var keys = map[ebiten.Key]rune{
	ebiten.KeyP: 'p',
	ebiten.KeyS: 's',
	ebiten.KeyT: 't',
	ebiten.KeyQ: 'q',
}

func (g *Game) Update() error {
	select {
	case <-g.done:
		return ebiten.Termination
	default:
	}

	for key, r := range keys {
		if inpututil.IsKeyJustPressed(key) {
			g.keyPresses <- r
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.brush = !g.brush
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		col, row := ebiten.CursorPosition()
		if row >= 0 && col >= 0 && row < g.universe.Height() && col < g.universe.Width() && (g.last != [2]int{row, col}) {
			g.last = [2]int{row, col}
			g.painting = true
			g.actions <- gol.Action{Event: engine.Set{Row: row, Col: col, Alive: g.brush}, Hold: true}
		}
	}
	if g.painting && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.painting = false
		g.last = [2]int{-1, -1}
		g.actions <- gol.Action{Flush: true}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.pixels = g.universe.Pixels(g.pixels, yellow, black)
	screen.WritePixels(g.pixels)
}

// Layout makes one logical pixel per cell; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.universe.Width(), g.universe.Height()
}

// Run blocks until the window is closed or done is closed.
func Run(u *engine.Universe, cellSize int, keyPresses chan<- rune, actions chan<- gol.Action, done <-chan struct{}) error {
	ebiten.SetWindowSize(u.Width()*cellSize, u.Height()*cellSize)
	ebiten.SetWindowTitle("Shared Game of Life")
	ebiten.SetTPS(60)
	return ebiten.RunGame(NewGame(u, keyPresses, actions, done))
}
