package engine

import (
	"errors"
	"sync"
	"testing"
)

func TestUniverseBindings(t *testing.T) {
	u := NewUniverse(8)
	if u.Width() != 8 || u.Height() != 8 {
		t.Fatalf("expected 8x8, got %dx%d", u.Width(), u.Height())
	}
	if err := u.SetCell(0, 0, false); err != nil {
		t.Fatal(err)
	}
	if err := u.ToggleCell(0, 0); err != nil {
		t.Fatal(err)
	}
	if c, _ := u.Get(0, 0); c != Alive {
		t.Fatalf("expected alive after toggle, got %v", c)
	}
	u.Tick()
	u.Tick()
	if u.Generation() != 2 {
		t.Fatalf("expected generation 2, got %d", u.Generation())
	}
}

func TestUniverseToggleOutOfBounds(t *testing.T) {
	u := NewUniverseSeeded(5, 4, DefaultSeed)
	before := u.Render()
	if err := u.ToggleCell(u.Height(), 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if u.Render() != before {
		t.Fatal("grid modified by out of bounds toggle")
	}
}

func TestUniverseCellsIsSnapshot(t *testing.T) {
	u := NewUniverseSeeded(3, 3, nil)
	cells := u.Cells()
	cells[4] = Alive
	if c, _ := u.Get(1, 1); c != Dead {
		t.Fatal("Cells returned a live alias")
	}
}

func TestUniverseLoad(t *testing.T) {
	u := NewUniverseSeeded(2, 2, nil)
	if err := u.Load([]Cell{Alive}, 0); err == nil {
		t.Fatal("expected size mismatch error")
	}
	if err := u.Load([]Cell{Alive, Dead, Dead, Alive}, 7); err != nil {
		t.Fatal(err)
	}
	if u.AliveCount() != 2 || u.Generation() != 7 {
		t.Fatalf("load gave %d alive at generation %d", u.AliveCount(), u.Generation())
	}
	alive := u.AliveCells()
	if len(alive) != 2 || alive[1].X != 1 || alive[1].Y != 1 {
		t.Fatalf("unexpected alive cells %v", alive)
	}
}

func TestUniverseLoadNormalisesCells(t *testing.T) {
	u := NewUniverseSeeded(2, 2, nil)
	if err := u.Load([]Cell{1, 0, 128, 0}, 0); err != nil {
		t.Fatal(err)
	}
	if u.AliveCount() != 2 {
		t.Fatalf("expected 2 alive cells, got %d", u.AliveCount())
	}
	if c, _ := u.Get(0, 0); c != Alive {
		t.Fatalf("expected byte 1 to load as Alive, got %d", c)
	}
	if err := u.ToggleCell(0, 0); err != nil {
		t.Fatal(err)
	}
	if c, _ := u.Get(0, 0); c != Dead {
		t.Fatalf("toggle of a loaded cell gave %d", c)
	}
}

func TestUniverseConcurrentCallers(t *testing.T) {
	u := NewUniverseSeeded(16, 16, nil)
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_ = u.SetCell(w, i%16, true)
				_ = u.Render()
			}
		}(w)
	}
	wg.Wait()
	if u.AliveCount() != 64 {
		t.Fatalf("expected 64 alive cells, got %d", u.AliveCount())
	}
}
