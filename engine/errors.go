package engine

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned for any row or column outside the grid. Indices
// are never clamped or wrapped on access.
var ErrOutOfBounds = errors.New("cell out of bounds")

// BoundsError carries the rejected position together with the grid size.
type BoundsError struct {
	Row, Col      int
	Width, Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("cell (%d, %d) out of bounds for %dx%d grid", e.Row, e.Col, e.Width, e.Height)
}

func (e *BoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
