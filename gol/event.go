package gol

import (
	"fmt"

	"uk.ac.bris.cs/sharedlife/util"
)

// Event is a notification sent from the session to the host that displays
// the universe.
type Event interface {
	fmt.Stringer
	GetCompletedTurns() int
}

// State is the state of the local tick timer.
type State int

const (
	Paused State = iota
	Executing
	Quitting
)

func (s State) String() string {
	switch s {
	case Paused:
		return "Paused"
	case Executing:
		return "Executing"
	case Quitting:
		return "Quitting"
	default:
		return "Incorrect State"
	}
}

// AliveCellsCount is sent every 2 seconds.
type AliveCellsCount struct {
	CompletedTurns int
	CellsCount     int
}

// ImageOutputComplete is sent after a PGM snapshot has been written.
type ImageOutputComplete struct {
	CompletedTurns int
	Filename       string
}

// StateChange is sent when the timer is paused or resumed and when the
// session quits.
type StateChange struct {
	CompletedTurns int
	NewState       State
}

// CellsFlipped lists every cell whose state changed after one event,
// whether it came from the host, the timer or the channel.
type CellsFlipped struct {
	CompletedTurns int
	Cells          []util.Cell
}

// TurnComplete is sent after every generation.
type TurnComplete struct {
	CompletedTurns int
}

// FinalTurnComplete is the last event before the events channel is closed.
type FinalTurnComplete struct {
	CompletedTurns int
	Alive          []util.Cell
}

func (event AliveCellsCount) String() string {
	return fmt.Sprintf("Alive Cells %v", event.CellsCount)
}

func (event AliveCellsCount) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event ImageOutputComplete) String() string {
	return fmt.Sprintf("File %v Output Done", event.Filename)
}

func (event ImageOutputComplete) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event StateChange) String() string {
	return fmt.Sprintf("%v", event.NewState)
}

func (event StateChange) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event CellsFlipped) String() string {
	return fmt.Sprintf("%v Cells Flipped", len(event.Cells))
}

func (event CellsFlipped) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event TurnComplete) String() string {
	return ""
}

func (event TurnComplete) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event FinalTurnComplete) String() string {
	return "Final Turn Complete"
}

func (event FinalTurnComplete) GetCompletedTurns() int {
	return event.CompletedTurns
}
