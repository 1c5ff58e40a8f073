package wire

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"uk.ac.bris.cs/sharedlife/engine"
)

// Decode parses one raw message and returns its events in application order
// together with the publishing participant's id, if any.
func Decode(raw []byte) (origin string, events []engine.Event, err error) {
	var m Message
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	events, err = m.Events()
	return m.UUID, events, err
}

// Events normalizes the message into engine events.
func (m Message) Events() ([]engine.Event, error) {
	switch {
	case m.Tick:
		return []engine.Event{engine.Tick{}}, nil
	case m.Cells != "":
		return parseCells(m.Cells)
	case m.Row != nil && m.Col != nil:
		if m.Alive != nil {
			return []engine.Event{engine.Set{Row: *m.Row, Col: *m.Col, Alive: *m.Alive}}, nil
		}
		return []engine.Event{engine.Toggle{Row: *m.Row, Col: *m.Col}}, nil
	case m.Row != nil || m.Col != nil || m.Alive != nil:
		return nil, fmt.Errorf("%w: cell message needs both row and col", ErrMalformed)
	case m.UUID != "" || m.Text != "":
		return nil, ErrUnrelated
	}
	return nil, fmt.Errorf("%w: empty message", ErrMalformed)
}

// parseCells reads space separated "row col alive" triples. One bad triple
// rejects the whole batch.
func parseCells(s string) ([]engine.Event, error) {
	fields := strings.Fields(s)
	if len(fields)%3 != 0 {
		return nil, fmt.Errorf("%w: %d cell fields is not a multiple of 3", ErrMalformed, len(fields))
	}
	events := make([]engine.Event, 0, len(fields)/3)
	for i := 0; i < len(fields); i += 3 {
		row, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, fmt.Errorf("%w: row %q", ErrMalformed, fields[i])
		}
		col, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: col %q", ErrMalformed, fields[i+1])
		}
		alive, err := strconv.ParseBool(fields[i+2])
		if err != nil {
			return nil, fmt.Errorf("%w: alive %q", ErrMalformed, fields[i+2])
		}
		events = append(events, engine.Set{Row: row, Col: col, Alive: alive})
	}
	return events, nil
}
