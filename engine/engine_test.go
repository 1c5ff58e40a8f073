package engine

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func gridOf(t *testing.T, width, height int, alive ...[2]int) *Grid {
	t.Helper()
	g := NewGrid(width, height, nil)
	for _, rc := range alive {
		if err := Apply(g, Set{Row: rc[0], Col: rc[1], Alive: true}); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func assertAlive(t *testing.T, g *Grid, want ...[2]int) {
	t.Helper()
	expected := map[[2]int]bool{}
	for _, rc := range want {
		expected[rc] = true
	}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c, _ := g.Get(y, x)
			if c.IsAlive() != expected[[2]int{y, x}] {
				t.Fatalf("cell (%d, %d): got %v\n%s", y, x, c, Render(g))
			}
		}
	}
}

func TestNewGridSeed(t *testing.T) {
	g := NewGrid(4, 3, DefaultSeed)
	if got := len(g.Cells()); got != 12 {
		t.Fatalf("expected 12 cells, got %d", got)
	}
	for i, c := range g.Cells() {
		if c != DefaultSeed(i) {
			t.Errorf("cell %d: expected %v, got %v", i, DefaultSeed(i), c)
		}
	}
	again := NewGrid(4, 3, DefaultSeed)
	if Render(g) != Render(again) {
		t.Error("seeding is not reproducible")
	}
}

func TestIndexAndBounds(t *testing.T) {
	g := NewGrid(5, 3, nil)
	i, err := g.Index(2, 4)
	if err != nil || i != 14 {
		t.Fatalf("Index(2, 4) = %d, %v", i, err)
	}
	tests := [][2]int{{3, 0}, {0, 5}, {-1, 0}, {0, -1}}
	for _, rc := range tests {
		t.Run(fmt.Sprint(rc), func(t *testing.T) {
			_, err := g.Get(rc[0], rc[1])
			if !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("expected ErrOutOfBounds, got %v", err)
			}
			var be *BoundsError
			if !errors.As(err, &be) || be.Row != rc[0] || be.Col != rc[1] {
				t.Fatalf("expected BoundsError for %v, got %#v", rc, err)
			}
		})
	}
}

func TestGridFromCells(t *testing.T) {
	if _, err := GridFromCells(2, 2, []Cell{Dead, Alive, Alive}); err == nil {
		t.Fatal("expected error for short buffer")
	}
	src := []Cell{Dead, Alive, Alive, Dead}
	g, err := GridFromCells(2, 2, src)
	if err != nil {
		t.Fatal(err)
	}
	src[0] = Alive
	if c, _ := g.Get(0, 0); c != Dead {
		t.Fatal("grid aliases the source buffer")
	}
}

func TestCheckSize(t *testing.T) {
	tests := []struct {
		width, height int
		fails         bool
	}{
		{width: 1, height: 1},
		{width: 512, height: 512},
		{width: MaxCells, height: 1},
		{width: 0, height: 4, fails: true},
		{width: 4, height: -1, fails: true},
		{width: MaxCells + 1, height: 1, fails: true},
		{width: math.MaxInt, height: 2, fails: true},
	}
	for _, test := range tests {
		err := CheckSize(test.width, test.height)
		if test.fails && err == nil {
			t.Errorf("%dx%d: expected an error", test.width, test.height)
		}
		if !test.fails && err != nil {
			t.Errorf("%dx%d: %v", test.width, test.height, err)
		}
	}
	if _, err := GridFromCells(math.MaxInt, 2, nil); err == nil {
		t.Fatal("expected GridFromCells to reject an overflowing size")
	}
}

func TestToroidalNeighbours(t *testing.T) {
	t.Run("diagonal wrap", func(t *testing.T) {
		g := gridOf(t, 3, 3, [2]int{2, 2})
		if n := CountLiveNeighbours(g, 0, 0); n != 1 {
			t.Fatalf("expected (2,2) to neighbour (0,0), count %d", n)
		}
	})
	t.Run("edge wrap", func(t *testing.T) {
		g := gridOf(t, 3, 3, [2]int{2, 0}, [2]int{0, 2})
		if n := CountLiveNeighbours(g, 0, 0); n != 2 {
			t.Fatalf("expected (2,0) and (0,2) to neighbour (0,0), count %d", n)
		}
	})
	t.Run("no clamping on larger grid", func(t *testing.T) {
		g := gridOf(t, 5, 7, [2]int{6, 4}, [2]int{6, 0}, [2]int{0, 4}, [2]int{1, 1})
		if n := CountLiveNeighbours(g, 0, 0); n != 4 {
			t.Fatalf("expected 4, got %d", n)
		}
	})
	t.Run("full", func(t *testing.T) {
		g := NewGrid(4, 4, func(int) Cell { return Alive })
		if n := CountLiveNeighbours(g, 3, 3); n != 8 {
			t.Fatalf("expected 8, got %d", n)
		}
	})
}

func TestNextStateTotal(t *testing.T) {
	for n := uint8(0); n <= 8; n++ {
		wantAlive := Dead
		if n == 2 || n == 3 {
			wantAlive = Alive
		}
		if got := NextState(Alive, n); got != wantAlive {
			t.Errorf("alive with %d neighbours: got %v", n, got)
		}
		wantDead := Dead
		if n == 3 {
			wantDead = Alive
		}
		if got := NextState(Dead, n); got != wantDead {
			t.Errorf("dead with %d neighbours: got %v", n, got)
		}
	}
}

func TestStepAllDead(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 3}, {16, 9}} {
		g := NewGrid(size[0], size[1], nil)
		if n := Step(g).AliveCount(); n != 0 {
			t.Errorf("%v: spontaneous generation of %d cells", size, n)
		}
	}
}

func TestStepReproduction(t *testing.T) {
	g := NewGrid(16, 16, DefaultSeed)
	next := Step(g)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if CountLiveNeighbours(g, y, x) != 3 {
				continue
			}
			if c, _ := next.Get(y, x); c != Alive {
				t.Fatalf("cell (%d, %d) has 3 neighbours but is %v", y, x, c)
			}
		}
	}
}

func TestStepDoesNotMutate(t *testing.T) {
	g := NewGrid(8, 8, DefaultSeed)
	before := Render(g)
	Step(g)
	if Render(g) != before {
		t.Fatal("Step mutated its input")
	}
}

func TestBlinker(t *testing.T) {
	g := gridOf(t, 5, 5, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	if err := Apply(g, Tick{}); err != nil {
		t.Fatal(err)
	}
	assertAlive(t, g, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})
	if err := Apply(g, Tick{}); err != nil {
		t.Fatal(err)
	}
	assertAlive(t, g, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
}

func TestBlinkerAcrossEdge(t *testing.T) {
	g := gridOf(t, 6, 6, [2]int{0, 5}, [2]int{0, 0}, [2]int{0, 1})
	g = Step(g)
	assertAlive(t, g, [2]int{5, 0}, [2]int{0, 0}, [2]int{1, 0})
}

func TestGliderReturnsAfterCrossingTorus(t *testing.T) {
	glider := [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	g := gridOf(t, 8, 8, glider...)
	start := Render(g)
	// A glider moves one cell diagonally every 4 generations.
	for i := 0; i < 4*8; i++ {
		g = Step(g)
	}
	if Render(g) != start {
		t.Fatalf("glider did not wrap back to its start:\n%s", Render(g))
	}
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	g := NewGrid(4, 4, DefaultSeed)
	before := Render(g)
	for i := 0; i < 2; i++ {
		if err := Apply(g, Toggle{Row: 1, Col: 3}); err != nil {
			t.Fatal(err)
		}
	}
	if Render(g) != before {
		t.Fatal("double toggle did not restore the grid")
	}
	_ = Apply(g, Toggle{Row: 1, Col: 3})
	if Render(g) == before {
		t.Fatal("single toggle changed nothing")
	}
}

func TestSetIsIdempotent(t *testing.T) {
	once := NewGrid(4, 4, DefaultSeed)
	twice := NewGrid(4, 4, DefaultSeed)
	ev := Set{Row: 3, Col: 1, Alive: true}
	_ = Apply(once, ev)
	_ = Apply(twice, ev)
	_ = Apply(twice, ev)
	if Render(once) != Render(twice) {
		t.Fatal("repeated Set differs from a single Set")
	}
}

func TestLastWriteWins(t *testing.T) {
	g := NewGrid(3, 3, nil)
	for _, ev := range []Event{Set{Row: 1, Col: 1, Alive: true}, Toggle{Row: 1, Col: 1}, Set{Row: 1, Col: 1, Alive: true}} {
		if err := Apply(g, ev); err != nil {
			t.Fatal(err)
		}
	}
	assertAlive(t, g, [2]int{1, 1})
}

func TestApplyOutOfBoundsLeavesGrid(t *testing.T) {
	g := NewGrid(4, 3, DefaultSeed)
	before := Render(g)
	for _, ev := range []Event{Toggle{Row: 3, Col: 0}, Set{Row: 0, Col: 4, Alive: true}} {
		if err := Apply(g, ev); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("%v: expected ErrOutOfBounds, got %v", ev, err)
		}
	}
	if Render(g) != before || g.Width() != 4 || g.Height() != 3 {
		t.Fatal("failed event modified the grid")
	}
}

func TestRender(t *testing.T) {
	g, err := GridFromCells(2, 2, []Cell{Dead, Alive, Alive, Dead})
	if err != nil {
		t.Fatal(err)
	}
	want := "◻◼\n◼◻\n"
	if got := Render(g); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPixels(t *testing.T) {
	g, _ := GridFromCells(2, 1, []Cell{Alive, Dead})
	white := [4]byte{255, 255, 255, 255}
	black := [4]byte{0, 0, 0, 255}
	px := Pixels(g, nil, white, black)
	if len(px) != 8 || px[0] != 255 || px[4] != 0 || px[7] != 255 {
		t.Fatalf("unexpected pixels %v", px)
	}
}

func BenchmarkStep(b *testing.B) {
	for _, size := range []int{16, 64, 128, 512} {
		g := NewGrid(size, size, DefaultSeed)
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				g = Step(g)
			}
		})
	}
}
