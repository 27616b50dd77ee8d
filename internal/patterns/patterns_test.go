package patterns

import (
	"testing"

	"github.com/san-kum/steinway/internal/life"
)

func TestStampGlider(t *testing.T) {
	b, _ := life.New(10)
	Stamp(b, "glider", 2, 3)

	expected := []struct{ row, col int }{
		{2, 5}, {3, 3}, {3, 5}, {4, 4}, {4, 5},
	}
	for _, p := range expected {
		if b.CellAt(p.row, p.col) != life.Alive {
			t.Errorf("expected live cell at (%d,%d)", p.row, p.col)
		}
	}
	if got := countAlive(b); got != 5 {
		t.Errorf("expected 5 live cells, got %d", got)
	}
}

func TestStampUnknownName(t *testing.T) {
	b, _ := life.New(10)
	Stamp(b, "no_such_shape", 0, 0)
	if got := countAlive(b); got != 0 {
		t.Errorf("unknown shape stamped %d cells", got)
	}
}

func TestStampClipsAtEdges(t *testing.T) {
	b, _ := life.New(10)
	// Bottom-right corner: most of the shape falls off the board.
	Stamp(b, "hwss", 8, 85)
	// Negative anchor: gun's raised cell and more clip off the top/left.
	Stamp(b, "gosper_gun", 0, 60)

	alive := countAlive(b)
	if alive == 0 {
		t.Error("expected some cells to survive clipping")
	}
	if alive >= Size("hwss")+Size("gosper_gun") {
		t.Error("expected clipping to drop out-of-range cells")
	}
}

func TestBlockStampIsStillLife(t *testing.T) {
	b, _ := life.New(10)
	Stamp(b, "block", 4, 40)
	before := countAlive(b)
	for i := 0; i < 4; i++ {
		b.NextGeneration()
	}
	if got := countAlive(b); got != before {
		t.Errorf("block changed under evolution: %d -> %d", before, got)
	}
}

func TestBlinkerStampOscillates(t *testing.T) {
	b, _ := life.New(10)
	Stamp(b, "blinker", 4, 40)

	b.NextGeneration()
	vertical := []struct{ row, col int }{{3, 41}, {4, 41}, {5, 41}}
	for _, p := range vertical {
		if b.CellAt(p.row, p.col) != life.Alive {
			t.Errorf("after one step: expected live cell at (%d,%d)", p.row, p.col)
		}
	}

	b.NextGeneration()
	horizontal := []struct{ row, col int }{{4, 40}, {4, 41}, {4, 42}}
	for _, p := range horizontal {
		if b.CellAt(p.row, p.col) != life.Alive {
			t.Errorf("after two steps: expected live cell at (%d,%d)", p.row, p.col)
		}
	}
}

func TestNamesAllStampable(t *testing.T) {
	for _, name := range Names() {
		b, _ := life.New(life.DefaultHeight)
		Stamp(b, name, 10, 30)
		if countAlive(b) != Size(name) {
			t.Errorf("shape %s: stamped %d cells, expected %d", name, countAlive(b), Size(name))
		}
	}
}

func TestComplexBoard(t *testing.T) {
	b := ComplexBoard()
	if b.Height() != life.DefaultHeight || b.Width() != life.Width {
		t.Fatalf("unexpected dimensions %dx%d", b.Height(), b.Width())
	}
	if countAlive(b) == 0 {
		t.Error("complex board is empty")
	}
	if b.Generation() != 0 {
		t.Errorf("fresh board should be at generation 0, got %d", b.Generation())
	}
}

func TestFurEliseBoard(t *testing.T) {
	b := FurEliseBoard()
	if countAlive(b) == 0 {
		t.Error("fur elise board is empty")
	}

	other := FurEliseBoard()
	snapA, snapB := b.Snapshot(), other.Snapshot()
	for r := range snapA {
		for c := range snapA[r] {
			if snapA[r][c] != snapB[r][c] {
				t.Fatalf("fur elise board not reproducible at (%d,%d)", r, c)
			}
		}
	}
}

func TestFurEliseBoardHasPulsar(t *testing.T) {
	b := FurEliseBoard()
	// The pulsar sits at (1,30); its top cross lands on row 3 and no other
	// stamp reaches those columns.
	for _, col := range []int{34, 35, 36} {
		if b.CellAt(3, col) != life.Alive {
			t.Errorf("expected pulsar cell at (3,%d)", col)
		}
	}
}

func TestShowcaseBoard(t *testing.T) {
	b := ShowcaseBoard()
	if countAlive(b) == 0 {
		t.Error("showcase board is empty")
	}
	// Spot-check one stamp per region: glider at (1,1), boat at (20,60).
	if b.CellAt(1, 3) != life.Alive {
		t.Error("expected glider cell at (1,3)")
	}
	if b.CellAt(20, 60) != life.Alive {
		t.Error("expected boat cell at (20,60)")
	}
}

func countAlive(b *life.Board) int {
	n := 0
	for _, row := range b.Snapshot() {
		for _, cell := range row {
			if cell == life.Alive {
				n++
			}
		}
	}
	return n
}
