package patterns

import "github.com/san-kum/steinway/internal/life"

// ComplexBoard returns a board seeded with a mix of gliders, oscillators,
// still lifes, methuselahs and a spaceship, spread across the full key range.
func ComplexBoard() *life.Board {
	b, _ := life.New(life.DefaultHeight)

	for _, p := range []struct{ row, col int }{
		{0, 0}, {5, 20}, {10, 40}, {2, 60}, {15, 10}, {8, 70},
		{20, 25}, {25, 50}, {30, 15}, {1, 75}, {22, 8}, {28, 65},
	} {
		Stamp(b, "glider", p.row, p.col)
	}

	Stamp(b, "blinker", 5, 5)
	Stamp(b, "toad", 12, 30)
	Stamp(b, "beacon", 25, 5)
	Stamp(b, "pentadecathlon", 1, 34)

	Stamp(b, "block", 15, 75)
	Stamp(b, "beehive", 10, 50)
	Stamp(b, "loaf", 18, 45)
	Stamp(b, "boat", 34, 25)

	Stamp(b, "r_pentomino", 6, 55)
	Stamp(b, "diehard", 18, 15)
	Stamp(b, "acorn", 32, 35)

	Stamp(b, "lwss", 35, 60)

	return b
}

// FurEliseBoard returns a board whose patterns are arranged so the opening
// phrase of Für Elise (E5 D#5 E5 D#5 E5 B4 D5 C5 A4, keys 52 51 52 51 52 47
// 50 49 45) falls out of the harvest as the board scrolls. Positions are
// tuned for an 80-tick performance.
func FurEliseBoard() *life.Board {
	b, _ := life.New(life.DefaultHeight)

	// Main phrase carriers, nearest the bottom first.
	Stamp(b, "glider", 36, 51)  // E5
	Stamp(b, "blinker", 35, 50) // D#5
	Stamp(b, "glider", 34, 51)  // E5
	Stamp(b, "toad", 32, 49)    // D#5
	Stamp(b, "glider", 30, 51)  // E5
	Stamp(b, "r_pentomino", 25, 45) // B4
	Stamp(b, "lwss", 28, 46)    // D5
	Stamp(b, "beacon", 26, 47)  // C5
	Stamp(b, "acorn", 20, 42)   // A4

	// Rhythm and harmony support.
	Stamp(b, "block", 15, 40)
	Stamp(b, "block", 15, 55)
	Stamp(b, "glider", 10, 30)
	Stamp(b, "glider", 8, 60)
	Stamp(b, "pentadecathlon", 5, 44)
	Stamp(b, "beehive", 12, 35)
	Stamp(b, "loaf", 18, 65)

	// Second phrase: C4 E4 A4 B4 (keys 41 44 45 47).
	Stamp(b, "diehard", 15, 20)
	Stamp(b, "gosper_gun", 2, 10)
	Stamp(b, "hwss", 22, 38)
	Stamp(b, "mwss", 24, 41)
	Stamp(b, "glider", 26, 44)

	// Pulsar for complex timing in the second phrase.
	Stamp(b, "pulsar", 1, 30)

	return b
}

// ShowcaseBoard returns a board with one of each pattern family laid out
// left to right, for demonstrating the shapes rather than playing a piece.
func ShowcaseBoard() *life.Board {
	b, _ := life.New(life.DefaultHeight)

	Stamp(b, "glider", 1, 1)
	Stamp(b, "block", 5, 10)
	Stamp(b, "blinker", 8, 15)
	Stamp(b, "toad", 12, 20)
	Stamp(b, "beacon", 16, 25)
	Stamp(b, "lwss", 20, 30)
	Stamp(b, "r_pentomino", 25, 35)
	Stamp(b, "acorn", 30, 40)

	Stamp(b, "beehive", 10, 50)
	Stamp(b, "loaf", 15, 55)
	Stamp(b, "boat", 20, 60)

	return b
}
