package pattern

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crossword_gen_go/internal/types"
)

func TestGenerateIsSymmetric(t *testing.T) {
	gen := NewGenerator(15, 0.18)
	for seed := int64(1); seed <= 25; seed++ {
		grid := gen.Generate(rand.New(rand.NewSource(seed)))
		total := grid.Size * grid.Size
		for idx := 0; idx < total; idx++ {
			isBlock := grid.At(idx) == types.CellBlock
			mirrored := grid.At(grid.Mirror(idx)) == types.CellBlock
			assert.Equal(t, isBlock, mirrored, "seed %d cell %d", seed, idx)
		}
	}
}

func TestGenerateHasNoShortRuns(t *testing.T) {
	gen := NewGenerator(15, 0.18)
	for seed := int64(1); seed <= 25; seed++ {
		grid := gen.Generate(rand.New(rand.NewSource(seed)))
		assert.Nil(t, findShortRun(grid), "seed %d", seed)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	gen := NewGenerator(15, 0.2)
	a := gen.Generate(rand.New(rand.NewSource(42)))
	b := gen.Generate(rand.New(rand.NewSource(42)))

	require.Equal(t, a.Size, b.Size)
	for idx := 0; idx < a.Size*a.Size; idx++ {
		assert.Equal(t, a.At(idx), b.At(idx), "cell %d", idx)
	}
}

// The default 15×15 ratio must land inside the dense band that makes
// slots fillable: never a near-open grid, never over-blocked.
func TestGenerateStaysInsideDensityBand(t *testing.T) {
	gen := NewGenerator(15, 0.18)
	for seed := int64(1); seed <= 50; seed++ {
		grid := gen.Generate(rand.New(rand.NewSource(seed)))
		ratio := float64(grid.BlockCount()) / float64(grid.Size*grid.Size)
		assert.GreaterOrEqual(t, ratio, 0.16, "seed %d", seed)
		assert.LessOrEqual(t, ratio, 0.20, "seed %d", seed)
	}
}

// No 15-cell slot may survive: the splitting bias keeps every open
// run at softMaxRun or below, and the stock layouts cap runs at 7.
func TestGenerateLeavesNoOverlongRuns(t *testing.T) {
	gen := NewGenerator(15, 0.18)
	for seed := int64(1); seed <= 25; seed++ {
		grid := gen.Generate(rand.New(rand.NewSource(seed)))
		assert.Nil(t, findLongRun(grid, softMaxRun), "seed %d", seed)
	}
}

func TestStockPatternsAreClean(t *testing.T) {
	for size, layouts := range stockLayouts {
		for li := range layouts {
			rng := fixedChoice(li, len(layouts))
			grid := stockPattern(size, rng)
			require.NotNil(t, grid)
			assert.Nil(t, findShortRun(grid), "size %d layout %d", size, li)
			total := size * size
			blocks := 0
			for idx := 0; idx < total; idx++ {
				isBlock := grid.At(idx) == types.CellBlock
				assert.Equal(t, isBlock, grid.At(grid.Mirror(idx)) == types.CellBlock,
					"size %d layout %d cell %d", size, li, idx)
				if isBlock {
					blocks++
				}
			}
			ratio := float64(blocks) / float64(total)
			assert.GreaterOrEqual(t, ratio, 0.16, "size %d layout %d", size, li)
			assert.LessOrEqual(t, ratio, 0.20, "size %d layout %d", size, li)
		}
	}
}

// fixedChoice returns an rng whose first Intn(n) call yields want.
func fixedChoice(want, n int) *rand.Rand {
	for seed := int64(0); ; seed++ {
		rng := rand.New(rand.NewSource(seed))
		if rng.Intn(n) == want {
			return rand.New(rand.NewSource(seed))
		}
	}
}

func TestStockPatternReturnsFreshGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := stockPattern(15, rand.New(rand.NewSource(1)))
	b := stockPattern(15, rand.New(rand.NewSource(1)))
	require.NotNil(t, a)
	a.Set(0, 'Q')
	assert.NotEqual(t, a.At(0), b.At(0))

	assert.Nil(t, stockPattern(13, rng))
}

func TestTinyGridStaysClean(t *testing.T) {
	gen := NewGenerator(5, 0.18)
	for seed := int64(1); seed <= 10; seed++ {
		grid := gen.Generate(rand.New(rand.NewSource(seed)))
		assert.Nil(t, findShortRun(grid), "seed %d", seed)
	}
}

func TestFindShortRunFlagsIsolatedCell(t *testing.T) {
	grid := types.NewGrid(5)
	// Wall in the center cell.
	for _, rc := range [][2]int{{1, 2}, {3, 2}, {2, 1}, {2, 3}} {
		grid.Set(grid.Index(rc[0], rc[1]), types.CellBlock)
	}
	v := findShortRun(grid)
	require.NotNil(t, v)
	assert.Less(t, v.length, MinRun)
}

func TestFindLongRunReportsRowsAndColumns(t *testing.T) {
	// Full block lines at column 4 and row 7 leave row runs of 4 and
	// 10 and column runs of 7 apiece.
	grid := types.NewGrid(15)
	for i := 0; i < 15; i++ {
		grid.Set(grid.Index(i, 4), types.CellBlock)
		grid.Set(grid.Index(7, i), types.CellBlock)
	}

	run := findLongRun(grid, 9)
	require.NotNil(t, run)
	assert.Equal(t, grid.Index(0, 5), run.start)
	assert.Equal(t, 1, run.stride)
	assert.Equal(t, 10, run.length)

	assert.Nil(t, findLongRun(grid, 10))

	// Transposed layout: long runs now live in the columns.
	grid = types.NewGrid(15)
	for i := 0; i < 15; i++ {
		grid.Set(grid.Index(4, i), types.CellBlock)
		grid.Set(grid.Index(i, 7), types.CellBlock)
	}

	run = findLongRun(grid, 9)
	require.NotNil(t, run)
	assert.Equal(t, grid.Index(5, 0), run.start)
	assert.Equal(t, 15, run.stride)
	assert.Equal(t, 10, run.length)
}
