package engine

// Cell is the state of one grid position. The byte values match the PGM
// pixel values used for snapshots.
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 255
)

// Glyphs used by Render.
const (
	AliveGlyph = '◼'
	DeadGlyph  = '◻'
)

func (c Cell) IsAlive() bool {
	return c == Alive
}

func (c Cell) flip() Cell {
	if c == Alive {
		return Dead
	}
	return Alive
}

func cellOf(alive bool) Cell {
	if alive {
		return Alive
	}
	return Dead
}

func (c Cell) String() string {
	if c == Alive {
		return string(AliveGlyph)
	}
	return string(DeadGlyph)
}
