// Package life implements the scrolling Game of Life engine behind the
// player piano.
//
// A [Board] is a fixed-width grid (88 columns, one per piano key) of a
// caller-chosen height. Each call to [Board.HarvestAndAdvance] performs one
// tick: the bottom row's live cells are read off as key indices, every row
// shifts down one, a deterministically seeded pseudo-random row enters at the
// top, and Conway's rules produce the next generation.
//
//	board, _ := life.New(life.DefaultHeight)
//	for i := 0; i < 80; i++ {
//	    keys := board.HarvestAndAdvance()
//	    // hand keys to the audio player
//	}
//
// The injected top row is a pure function of the generation counter, so two
// boards driven through the same generation sequence produce identical
// harvests. Neighbor counting uses a hard, non-toroidal boundary: positions
// off the board are dead.
//
// # Thread Safety
//
// Board instances are NOT thread-safe. Each board has a single owner; wrap
// access in a mutex or confine the board to one goroutine if it must be
// shared.
package life
