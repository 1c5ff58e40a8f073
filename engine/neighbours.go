package engine

// wrap maps x onto [0, n). x is never more than one step outside the range.
func wrap(x, n int) int {
	x += n
	if n&(n-1) == 0 {
		return x & (n - 1)
	}
	return x % n
}

// CountLiveNeighbours counts the alive cells among the 8 neighbours of
// (row, col), wrapping around every edge of the torus. On grids smaller than
// 3 in a dimension the same cell can be visited through more than one offset
// and is counted once per offset.
func CountLiveNeighbours(g *Grid, row, col int) uint8 {
	var count uint8
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dy == 0 && dx == 0 {
				continue
			}
			if g.at(wrap(row+dy, g.height), wrap(col+dx, g.width)) == Alive {
				count++
			}
		}
	}
	return count
}
