package engine

// NextState is the Conway rule for one cell given its live neighbour count.
func NextState(c Cell, neighbours uint8) Cell {
	if c == Alive {
		if neighbours == 2 || neighbours == 3 {
			return Alive
		}
		return Dead
	}
	if neighbours == 3 {
		return Alive
	}
	return c
}

// Step returns the next generation of g. g is only read; every cell of the
// result is computed from the current generation.
func Step(g *Grid) *Grid {
	next := &Grid{width: g.width, height: g.height, cells: make([]Cell, len(g.cells))}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			i := y*g.width + x
			next.cells[i] = NextState(g.cells[i], CountLiveNeighbours(g, y, x))
		}
	}
	return next
}
