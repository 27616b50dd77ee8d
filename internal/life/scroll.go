package life

import (
	"crypto/md5"
	"encoding/binary"
	"strconv"
)

// Linear congruential generator constants (Numerical Recipes). The top-row
// generator must produce identical rows across implementations, so these and
// the seeding scheme below are part of the engine's contract.
const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
	lcgModMask    = 1<<32 - 1
)

// rowSeed derives the 64-bit LCG seed for a generation: md5 of the decimal
// string of the counter, first 8 bytes read little-endian.
func rowSeed(generation uint64) uint64 {
	sum := md5.Sum([]byte(strconv.FormatUint(generation, 10)))
	return binary.LittleEndian.Uint64(sum[:8])
}

// randomRow fills row with the deterministic pseudo-random pattern for the
// given generation: one LCG step per column, alive when the state is
// divisible by 5 (about 20% density).
func randomRow(generation uint64, row Row) {
	state := rowSeed(generation)
	for col := range row {
		state = (lcgMultiplier*state + lcgIncrement) & lcgModMask
		if state%5 == 0 {
			row[col] = Alive
		} else {
			row[col] = Dead
		}
	}
}

// HarvestAndAdvance performs one tick of the scrolling board and returns the
// key indices played: the columns of the live cells in the bottom row, in
// ascending order (possibly none).
//
// The order of operations is fixed. The bottom row is read before anything
// moves; every row then shifts down one; the vacated top row is seeded from
// the pre-advance generation counter; finally NextGeneration runs, so the
// rule application already sees the freshly seeded row.
func (b *Board) HarvestAndAdvance() []int {
	keys := make([]int, 0, Width)
	bottom := b.cells[b.height-1]
	for col := 0; col < Width; col++ {
		if bottom[col] == Alive {
			keys = append(keys, col)
		}
	}

	// Rotate row storage: the old bottom row's slice becomes the new top
	// row, overwritten by the seeded pattern.
	copy(b.cells[1:], b.cells[:b.height-1])
	b.cells[0] = bottom
	randomRow(b.generation, b.cells[0])

	b.NextGeneration()
	return keys
}
