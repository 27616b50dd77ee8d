// Package patterns stamps classic Game of Life shapes onto a board.
//
// Every shape is a plain coordinate-offset literal placed through
// [life.Board.SetCell], so shapes stamped near an edge clip silently rather
// than erroring. Offsets are (row, col) from the shape's top-left corner.
package patterns

import "github.com/san-kum/steinway/internal/life"

type offset struct{ row, col int }

var shapes = map[string][]offset{
	// Still lifes
	"block":   {{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	"beehive": {{0, 1}, {0, 2}, {1, 0}, {1, 3}, {2, 1}, {2, 2}},
	"loaf":    {{0, 1}, {0, 2}, {1, 0}, {1, 3}, {2, 1}, {2, 3}, {3, 2}},
	"boat":    {{0, 0}, {0, 1}, {1, 0}, {1, 2}, {2, 1}},

	// Oscillators
	"blinker": {{0, 0}, {0, 1}, {0, 2}},
	"toad":    {{0, 1}, {0, 2}, {0, 3}, {1, 0}, {1, 1}, {1, 2}},
	"beacon":  {{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 2}, {2, 3}, {3, 2}, {3, 3}},
	"pentadecathlon": {
		{0, 1}, {1, 1}, {2, 1}, {3, 1}, {4, 1}, {5, 1}, {6, 1}, {7, 1},
		{3, 0}, {3, 2}, {4, 0}, {4, 2},
	},
	"pulsar": {
		{2, 4}, {2, 5}, {2, 6}, {2, 10}, {2, 11}, {2, 12},
		{4, 2}, {4, 7}, {4, 9}, {4, 14},
		{5, 2}, {5, 7}, {5, 9}, {5, 14},
		{6, 2}, {6, 7}, {6, 9}, {6, 14},
		{7, 4}, {7, 5}, {7, 6}, {7, 10}, {7, 11}, {7, 12},
		{9, 4}, {9, 5}, {9, 6}, {9, 10}, {9, 11}, {9, 12},
		{10, 2}, {10, 7}, {10, 9}, {10, 14},
		{11, 2}, {11, 7}, {11, 9}, {11, 14},
		{12, 2}, {12, 7}, {12, 9}, {12, 14},
		{14, 4}, {14, 5}, {14, 6}, {14, 10}, {14, 11}, {14, 12},
	},

	// Spaceships
	"glider": {{0, 2}, {1, 0}, {1, 2}, {2, 1}, {2, 2}},
	"lwss":   {{0, 1}, {0, 4}, {1, 0}, {2, 0}, {2, 4}, {3, 0}, {3, 1}, {3, 2}, {3, 3}},
	"mwss":   {{0, 2}, {1, 0}, {1, 4}, {2, 5}, {3, 0}, {3, 5}, {4, 1}, {4, 2}, {4, 3}, {4, 4}, {4, 5}},
	"hwss":   {{0, 2}, {0, 3}, {1, 0}, {1, 5}, {2, 6}, {3, 0}, {3, 6}, {4, 1}, {4, 2}, {4, 3}, {4, 4}, {4, 5}, {4, 6}},

	// Methuselahs
	"r_pentomino": {{0, 1}, {0, 2}, {1, 0}, {1, 1}, {2, 1}},
	"diehard":     {{0, 6}, {1, 0}, {1, 1}, {2, 1}, {2, 5}, {2, 6}, {2, 7}},
	"acorn":       {{0, 1}, {1, 3}, {2, 0}, {2, 1}, {2, 4}, {2, 5}, {2, 6}},

	// Guns. The gun extends one row above its anchor; stamped at row 0 that
	// cell clips off like any other out-of-range write.
	"gosper_gun": {
		{5, 0}, {5, 1}, {6, 0}, {6, 1},
		{3, 10}, {4, 10}, {5, 10},
		{2, 11}, {6, 11},
		{1, 12}, {7, 12}, {1, 13}, {7, 13},
		{4, 14},
		{2, 15}, {6, 15},
		{3, 16}, {4, 16}, {5, 16},
		{4, 17},
		{1, 20}, {2, 20}, {3, 20}, {1, 21}, {2, 21}, {3, 21},
		{0, 22}, {4, 22},
		{-1, 24}, {0, 24}, {4, 24}, {5, 24},
		{3, 34}, {3, 35}, {4, 34}, {4, 35},
	},
}

// Stamp places the named shape with its top-left corner at (row, col).
// Unknown names are ignored. Portions falling outside the board clip off.
func Stamp(b *life.Board, name string, row, col int) {
	for _, o := range shapes[name] {
		b.SetCell(row+o.row, col+o.col, life.Alive)
	}
}

// Names returns the available shape names sorted by category order used
// above: still lifes, oscillators, spaceships, methuselahs, guns.
func Names() []string {
	return []string{
		"block", "beehive", "loaf", "boat",
		"blinker", "toad", "beacon", "pentadecathlon", "pulsar",
		"glider", "lwss", "mwss", "hwss",
		"r_pentomino", "diehard", "acorn",
		"gosper_gun",
	}
}

// Size returns the number of live cells in the named shape, or 0 for an
// unknown name.
func Size(name string) int { return len(shapes[name]) }
