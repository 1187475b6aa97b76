package pattern

import (
	"math/rand"

	"crossword_gen_go/internal/types"
)

// Stock patterns are hand-built layouts used when random placement
// stalls below the density band. Each is 180°-symmetric with every
// open run between MinRun and 7 cells, at 37 blocks (16.4%) for the
// 15×15 size.
var stockLayouts = map[int][][]string{
	15: {
		{
			"...#.....#.....",
			"...#.....#.....",
			"...#.....#.....",
			"###.....#......",
			"....#.....#....",
			"......#.....###",
			".....#.....#...",
			".......#.......",
			"...#.....#.....",
			"###.....#......",
			"....#.....#....",
			"......#.....###",
			".....#.....#...",
			".....#.....#...",
			".....#.....#...",
		},
		{
			".....#.....#...",
			".....#.....#...",
			".....#.....#...",
			"......#.....###",
			"....#.....#....",
			"###.....#......",
			"...#.....#.....",
			".......#.......",
			".....#.....#...",
			"......#.....###",
			"....#.....#....",
			"###.....#......",
			"...#.....#.....",
			"...#.....#.....",
			"...#.....#.....",
		},
	},
}

// stockPattern returns a fresh grid holding one of the stored layouts
// for the size, or nil when no layout exists. Callers receive their
// own copy; the fill stage writes letters into it.
func stockPattern(size int, rng *rand.Rand) *types.Grid {
	layouts, ok := stockLayouts[size]
	if !ok {
		return nil
	}
	rows := layouts[rng.Intn(len(layouts))]
	grid := types.NewGrid(size)
	for r, row := range rows {
		for c := 0; c < size; c++ {
			if row[c] == '#' {
				grid.Set(grid.Index(r, c), types.CellBlock)
			}
		}
	}
	return grid
}
