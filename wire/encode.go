package wire

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"uk.ac.bris.cs/sharedlife/engine"
)

// Encode builds the message for a single event published by origin.
func Encode(origin string, ev engine.Event) ([]byte, error) {
	m := Message{UUID: origin}
	switch e := ev.(type) {
	case engine.Tick:
		m.Tick = true
	case engine.Toggle:
		m.Row, m.Col = intPtr(e.Row), intPtr(e.Col)
	case engine.Set:
		m.Row, m.Col = intPtr(e.Row), intPtr(e.Col)
		m.Alive = &e.Alive
	default:
		return nil, fmt.Errorf("wire: cannot encode %T", ev)
	}
	return json.Marshal(m)
}

// EncodeSets packs a batch of Set events into one cells message, keeping
// their order.
func EncodeSets(origin string, sets []engine.Set) ([]byte, error) {
	if len(sets) == 0 {
		return nil, fmt.Errorf("wire: empty cell batch")
	}
	var sb strings.Builder
	for i, s := range sets {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(s.Row))
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(s.Col))
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatBool(s.Alive))
	}
	return json.Marshal(Message{UUID: origin, Cells: sb.String()})
}

func intPtr(i int) *int {
	return &i
}
