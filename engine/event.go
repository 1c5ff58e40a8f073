package engine

import "fmt"

// Event is one mutation of a Grid. It is either Toggle, Set or Tick, and
// carries everything needed to reproduce the change on another participant.
type Event interface {
	fmt.Stringer
	event()
}

// Toggle flips one cell. It is its own inverse, so replaying it is not safe;
// remote application that must be idempotent should use Set.
type Toggle struct {
	Row, Col int
}

// Set forces one cell to an absolute state.
type Set struct {
	Row, Col int
	Alive    bool
}

// Tick advances the grid by one generation.
type Tick struct{}

func (Toggle) event() {}
func (Set) event()    {}
func (Tick) event()   {}

func (e Toggle) String() string {
	return fmt.Sprintf("toggle (%d, %d)", e.Row, e.Col)
}

func (e Set) String() string {
	return fmt.Sprintf("set (%d, %d) alive=%v", e.Row, e.Col, e.Alive)
}

func (Tick) String() string {
	return "tick"
}
