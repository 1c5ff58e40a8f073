package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"uk.ac.bris.cs/sharedlife/engine"
	"uk.ac.bris.cs/sharedlife/gol"
)

// parseCommand turns one line typed on the text view into a keypress or an
// action. Supported: t, p, s, q, toggle ROW COL, set ROW COL true|false.
func parseCommand(line string) (key rune, action *gol.Action, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, nil, nil
	}
	switch fields[0] {
	case "t", "p", "s", "q":
		return rune(fields[0][0]), nil, nil
	case "toggle", "set":
		want := 3
		if fields[0] == "set" {
			want = 4
		}
		if len(fields) != want {
			return 0, nil, fmt.Errorf("usage: toggle ROW COL | set ROW COL true|false")
		}
		row, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, nil, fmt.Errorf("bad row %q", fields[1])
		}
		col, err := strconv.Atoi(fields[2])
		if err != nil {
			return 0, nil, fmt.Errorf("bad col %q", fields[2])
		}
		if fields[0] == "toggle" {
			return 0, &gol.Action{Event: engine.Toggle{Row: row, Col: col}}, nil
		}
		alive, err := strconv.ParseBool(fields[3])
		if err != nil {
			return 0, nil, fmt.Errorf("bad state %q", fields[3])
		}
		return 0, &gol.Action{Event: engine.Set{Row: row, Col: col, Alive: alive}}, nil
	}
	return 0, nil, fmt.Errorf("unknown command %q", fields[0])
}

func readCommands(r io.Reader, keyPresses chan<- rune, actions chan<- gol.Action) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, action, err := parseCommand(scanner.Text())
		switch {
		case err != nil:
			fmt.Println(err)
		case action != nil:
			actions <- *action
		case key != 0:
			keyPresses <- key
			if key == 'q' {
				return
			}
		}
	}
	keyPresses <- 'q'
}

// drainText prints the universe after every generation.
func drainText(u *engine.Universe, events <-chan gol.Event) {
	for event := range events {
		switch e := event.(type) {
		case gol.TurnComplete:
			fmt.Printf("Generation %v\n%s", e.CompletedTurns, u.Render())
		case gol.AliveCellsCount, gol.ImageOutputComplete, gol.StateChange, gol.FinalTurnComplete:
			fmt.Printf("Completed Turns %-8v%v\n", e.GetCompletedTurns(), e)
		}
	}
}
