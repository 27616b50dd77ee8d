package life

import (
	"fmt"
	"math/rand"
	"strings"
)

// Width is the number of columns on every board, one per key of a full
// piano. It is fixed: the harvested indices map directly onto keys 0-87.
const Width = 88

// DefaultHeight is the board height used when the caller has no opinion.
const DefaultHeight = 40

// Cell is the state of a single grid position.
type Cell uint8

const (
	Dead Cell = iota
	Alive
)

// Row is one horizontal line of cells, ordered left to right.
type Row []Cell

// Board is an 88-column Game of Life grid with a generation counter.
// It has a single owner; see the package documentation for the threading
// contract.
type Board struct {
	height     int
	cells      []Row
	scratch    []Row // second buffer for NextGeneration
	generation uint64
}

// New returns an all-dead board with the given height.
func New(height int) (*Board, error) {
	if height < 1 {
		return nil, fmt.Errorf("%w: height %d", ErrInvalidDimensions, height)
	}
	b := &Board{
		height:  height,
		cells:   make([]Row, height),
		scratch: make([]Row, height),
	}
	for r := 0; r < height; r++ {
		b.cells[r] = make(Row, Width)
		b.scratch[r] = make(Row, Width)
	}
	return b, nil
}

// NewRandom returns a board whose cells are drawn independently with the
// given alive probability from a generator seeded with seed. The probability
// is clamped to [0, 1]. This per-cell draw is distinct from the deterministic
// top-row generator used while scrolling.
func NewRandom(height int, aliveProbability float64, seed int64) (*Board, error) {
	b, err := New(height)
	if err != nil {
		return nil, err
	}
	if aliveProbability < 0 {
		aliveProbability = 0
	}
	if aliveProbability > 1 {
		aliveProbability = 1
	}
	rng := rand.New(rand.NewSource(seed))
	for r := 0; r < height; r++ {
		for c := 0; c < Width; c++ {
			if rng.Float64() < aliveProbability {
				b.cells[r][c] = Alive
			}
		}
	}
	return b, nil
}

// FromPattern returns a board populated from a textual pattern. Each string
// is one row, top first; 'O', 'X' and '*' mark live cells, anything else is
// dead. Rows beyond the board height and characters beyond column 87 are
// ignored.
func FromPattern(height int, pattern []string) (*Board, error) {
	b, err := New(height)
	if err != nil {
		return nil, err
	}
	for r, line := range pattern {
		if r >= height {
			break
		}
		for c, ch := range line {
			if c >= Width {
				break
			}
			if ch == 'O' || ch == 'X' || ch == '*' {
				b.cells[r][c] = Alive
			}
		}
	}
	return b, nil
}

// SetCell sets the cell at (row, col). Out-of-range coordinates are silently
// ignored; pattern stamping relies on this to clip shapes at board edges.
func (b *Board) SetCell(row, col int, state Cell) {
	if row < 0 || row >= b.height || col < 0 || col >= Width {
		return
	}
	b.cells[row][col] = state
}

// CellAt returns the cell at (row, col), or Dead if the coordinates are out
// of range.
func (b *Board) CellAt(row, col int) Cell {
	if row < 0 || row >= b.height || col < 0 || col >= Width {
		return Dead
	}
	return b.cells[row][col]
}

// LiveNeighbors counts the live cells among the 8 positions surrounding
// (row, col). Positions off the board are dead: the boundary is hard, not
// toroidal.
func (b *Board) LiveNeighbors(row, col int) int {
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nr, nc := row+dr, col+dc
			if nr < 0 || nr >= b.height || nc < 0 || nc >= Width {
				continue
			}
			if b.cells[nr][nc] == Alive {
				count++
			}
		}
	}
	return count
}

// NextGeneration applies Conway's rules to every cell simultaneously and
// increments the generation counter. The new state is computed into a second
// buffer and swapped in, so no cell ever reads a partially updated
// neighborhood.
func (b *Board) NextGeneration() {
	for r := 0; r < b.height; r++ {
		for c := 0; c < Width; c++ {
			n := b.LiveNeighbors(r, c)
			if b.cells[r][c] == Alive {
				if n == 2 || n == 3 {
					b.scratch[r][c] = Alive
				} else {
					b.scratch[r][c] = Dead
				}
			} else {
				if n == 3 {
					b.scratch[r][c] = Alive
				} else {
					b.scratch[r][c] = Dead
				}
			}
		}
	}
	b.cells, b.scratch = b.scratch, b.cells
	b.generation++
}

// Generation returns the number of rule applications performed so far.
func (b *Board) Generation() uint64 { return b.generation }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// Width returns the number of columns, always 88.
func (b *Board) Width() int { return Width }

// Snapshot returns a copy of the current grid, top row first. The returned
// rows are independent of the board's storage.
func (b *Board) Snapshot() []Row {
	snap := make([]Row, b.height)
	for r := 0; r < b.height; r++ {
		snap[r] = make(Row, Width)
		copy(snap[r], b.cells[r])
	}
	return snap
}

// Restore replaces the grid with the given snapshot, top row first, and
// resets the generation counter to zero. Rows beyond the board height and
// cells beyond column 87 are ignored; anything the snapshot does not cover
// is dead.
func (b *Board) Restore(snap []Row) {
	for r := 0; r < b.height; r++ {
		for c := 0; c < Width; c++ {
			b.cells[r][c] = Dead
		}
		if r < len(snap) {
			copy(b.cells[r], snap[r])
		}
	}
	b.generation = 0
}

// String renders the board with '.' for dead and 'O' for live cells,
// framed the way the console view prints it.
func (b *Board) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generation: %d\n", b.generation)
	sb.WriteString(strings.Repeat("=", Width+4))
	sb.WriteByte('\n')
	for _, row := range b.cells {
		sb.WriteString("| ")
		for _, cell := range row {
			if cell == Alive {
				sb.WriteByte('O')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteString(" |\n")
	}
	sb.WriteString(strings.Repeat("=", Width+4))
	return sb.String()
}
