package engine

import "fmt"

// Apply mutates g's cell buffer according to ev. Width and height never
// change. Events are applied exactly as given: no reordering, no
// deduplication, the last write to a cell wins.
func Apply(g *Grid, ev Event) error {
	switch e := ev.(type) {
	case Toggle:
		i, err := g.Index(e.Row, e.Col)
		if err != nil {
			return err
		}
		g.cells[i] = g.cells[i].flip()
	case Set:
		i, err := g.Index(e.Row, e.Col)
		if err != nil {
			return err
		}
		g.cells[i] = cellOf(e.Alive)
	case Tick:
		g.cells = Step(g).cells
	default:
		return fmt.Errorf("engine: unknown event %T", ev)
	}
	return nil
}
