// Package engine holds the toroidal Game of Life grid, the rule engine and the
// event applier shared by every participant of a session.
package engine

import "fmt"

// SeedPolicy decides the initial state of a cell from its linear index.
// It must be pure so that every participant starts from the same grid.
type SeedPolicy func(i int) Cell

// DefaultSeed marks alive every cell whose index is divisible by 2 or 7.
func DefaultSeed(i int) Cell {
	if i%2 == 0 || i%7 == 0 {
		return Alive
	}
	return Dead
}

// EmptySeed leaves every cell dead.
func EmptySeed(int) Cell {
	return Dead
}

// MaxCells caps width*height so the buffer stays allocatable and the
// product cannot overflow.
const MaxCells = 1 << 26

// CheckSize rejects dimensions that cannot back a grid.
func CheckSize(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("engine: invalid grid size %dx%d", width, height)
	}
	if width > MaxCells/height {
		return fmt.Errorf("engine: %dx%d grid exceeds %d cells", width, height, MaxCells)
	}
	return nil
}

// Grid is a row-major buffer of width*height cells. The length invariant is
// kept by never resizing: a different size means a new Grid.
type Grid struct {
	width, height int
	cells         []Cell
}

// NewGrid allocates a width x height grid seeded by seed. A nil seed gives an
// empty grid.
func NewGrid(width, height int, seed SeedPolicy) *Grid {
	if err := CheckSize(width, height); err != nil {
		panic(err)
	}
	if seed == nil {
		seed = EmptySeed
	}
	g := &Grid{width: width, height: height, cells: make([]Cell, width*height)}
	for i := range g.cells {
		g.cells[i] = seed(i)
	}
	return g
}

// GridFromCells copies cells into a new grid, failing when the length does
// not match the dimensions. Any non-zero byte is read as Alive.
func GridFromCells(width, height int, cells []Cell) (*Grid, error) {
	if err := CheckSize(width, height); err != nil {
		return nil, err
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("engine: %d cells do not fill a %dx%d grid", len(cells), width, height)
	}
	g := &Grid{width: width, height: height, cells: make([]Cell, len(cells))}
	copyCells(g.cells, cells)
	return g, nil
}

// copyCells copies src into dst, mapping every non-zero byte to Alive.
func copyCells(dst, src []Cell) {
	for i, c := range src {
		dst[i] = cellOf(c != Dead)
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Index returns row*width+col after checking both bounds.
func (g *Grid) Index(row, col int) (int, error) {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return 0, &BoundsError{Row: row, Col: col, Width: g.width, Height: g.height}
	}
	return row*g.width + col, nil
}

func (g *Grid) Get(row, col int) (Cell, error) {
	i, err := g.Index(row, col)
	if err != nil {
		return Dead, err
	}
	return g.cells[i], nil
}

// at reads a cell that is known to be in range.
func (g *Grid) at(row, col int) Cell {
	return g.cells[row*g.width+col]
}

// Cells returns a copy of the buffer. Callers never alias the live grid.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

func (g *Grid) AliveCount() int {
	count := 0
	for _, c := range g.cells {
		if c == Alive {
			count++
		}
	}
	return count
}
