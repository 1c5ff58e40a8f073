package engine

import (
	"fmt"
	"sync"

	"uk.ac.bris.cs/sharedlife/util"
)

// Universe is the host-facing handle on one Grid. All calls are serialized
// by a mutex, so timer callbacks and channel delivery may call it from
// different goroutines.
type Universe struct {
	mu         sync.Mutex
	grid       *Grid
	generation int
}

// NewUniverse creates a size x size universe with the default seed.
func NewUniverse(size int) *Universe {
	return NewUniverseSeeded(size, size, DefaultSeed)
}

func NewUniverseSeeded(width, height int, seed SeedPolicy) *Universe {
	return &Universe{grid: NewGrid(width, height, seed)}
}

func (u *Universe) Width() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.grid.width
}

func (u *Universe) Height() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.grid.height
}

// Generation is the number of ticks applied since the universe was created
// or last loaded.
func (u *Universe) Generation() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.generation
}

func (u *Universe) ToggleCell(row, col int) error {
	return u.Apply(Toggle{Row: row, Col: col})
}

func (u *Universe) SetCell(row, col int, alive bool) error {
	return u.Apply(Set{Row: row, Col: col, Alive: alive})
}

func (u *Universe) Tick() {
	// Tick cannot fail.
	_ = u.Apply(Tick{})
}

func (u *Universe) Apply(ev Event) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if err := Apply(u.grid, ev); err != nil {
		return err
	}
	if _, ok := ev.(Tick); ok {
		u.generation++
	}
	return nil
}

func (u *Universe) Get(row, col int) (Cell, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.grid.Get(row, col)
}

func (u *Universe) Render() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return Render(u.grid)
}

// Cells returns a snapshot copy of the buffer, not a live view.
func (u *Universe) Cells() []Cell {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.grid.Cells()
}

// Snapshot returns an independent copy of the grid.
func (u *Universe) Snapshot() *Grid {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.grid.Clone()
}

// Pixels renders the current state into dst, see Pixels.
func (u *Universe) Pixels(dst []byte, alive, dead [4]byte) []byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	return Pixels(u.grid, dst, alive, dead)
}

func (u *Universe) AliveCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.grid.AliveCount()
}

func (u *Universe) AliveCells() []util.Cell {
	u.mu.Lock()
	defer u.mu.Unlock()
	var alive []util.Cell
	for y := 0; y < u.grid.height; y++ {
		for x := 0; x < u.grid.width; x++ {
			if u.grid.at(y, x) == Alive {
				alive = append(alive, util.Cell{X: x, Y: y})
			}
		}
	}
	return alive
}

// Load replaces the whole buffer, reading any non-zero byte as Alive. The
// size must match; a universe is never resized in place.
func (u *Universe) Load(cells []Cell, generation int) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(cells) != len(u.grid.cells) {
		return fmt.Errorf("engine: load of %d cells into %dx%d universe", len(cells), u.grid.width, u.grid.height)
	}
	copyCells(u.grid.cells, cells)
	u.generation = generation
	return nil
}
