// Package pattern produces the block/open skeleton of a crossword
// grid: 180°-rotationally symmetric, no open run shorter than three
// cells, block density near a configurable target.
package pattern

import (
	"math/rand"

	"crossword_gen_go/internal/types"
)

const (
	// MinRun is the minimum open-run length allowed in either direction.
	MinRun = 3

	// DefaultBlockRatio matches typical 15×15 American-style grids.
	DefaultBlockRatio = 0.18

	// softMaxRun is the run length beyond which placement prefers to
	// split the run rather than scatter freely. Long open runs are
	// legal but leave slots the word list can rarely fill.
	softMaxRun = 9
)

// Generator creates block patterns for a fixed grid size and density.
type Generator struct {
	size       int
	blockRatio float64
}

// NewGenerator returns a pattern generator. A zero or negative ratio
// falls back to DefaultBlockRatio; ratios above 0.4 are clamped.
func NewGenerator(size int, blockRatio float64) *Generator {
	if blockRatio <= 0 {
		blockRatio = DefaultBlockRatio
	}
	if blockRatio > 0.4 {
		blockRatio = 0.4
	}
	return &Generator{
		size:       size,
		blockRatio: blockRatio,
	}
}

// Generate produces a symmetric block pattern. Blocks are placed one
// mirrored pair at a time and a pair that leaves an open run shorter
// than MinRun is taken back, so the grid is valid after every step.
// The result is deterministic for a given rng state. If placement
// stalls below the density band, a stock pattern is used for sizes
// that have one; otherwise the sparse-but-valid grid is returned.
func (g *Generator) Generate(rng *rand.Rand) *types.Grid {
	grid := types.NewGrid(g.size)
	total := g.size * g.size
	target := int(float64(total) * g.blockRatio)

	half := (total + 1) / 2
	for tries := 0; grid.BlockCount() < target && tries < 40*target; tries++ {
		idx := g.pick(grid, rng, half)
		if grid.At(idx) == types.CellBlock {
			continue
		}
		mir := grid.Mirror(idx)
		grid.Set(idx, types.CellBlock)
		grid.Set(mir, types.CellBlock)
		if findShortRun(grid) != nil {
			grid.Set(idx, types.CellOpen)
			grid.Set(mir, types.CellOpen)
		}
	}

	// target/9 tolerance keeps the floor at roughly 0.16 for the
	// default 0.18 ratio. A leftover overlong run means placement got
	// stuck, which disqualifies the grid the same way thinness does.
	if grid.BlockCount() < target-target/9 || findLongRun(grid, softMaxRun) != nil {
		if stock := stockPattern(g.size, rng); stock != nil {
			return stock
		}
	}
	return grid
}

// pick chooses the next candidate cell. While an open run longer than
// softMaxRun exists, the split lands inside that run at an offset that
// leaves both fragments between MinRun and softMaxRun, so one block
// settles the whole run. Otherwise the choice is uniform over the
// first half of the grid; mirroring covers the rest.
func (g *Generator) pick(grid *types.Grid, rng *rand.Rand, half int) int {
	if run := findLongRun(grid, softMaxRun); run != nil {
		lo, hi := MinRun, run.length-1-MinRun
		if v := run.length - 1 - softMaxRun; v > lo {
			lo = v
		}
		if softMaxRun < hi {
			hi = softMaxRun
		}
		if hi < lo {
			// Run too long to settle with one block; any legal split
			// shortens it and later passes finish the job.
			lo, hi = MinRun, run.length-1-MinRun
		}
		off := lo + rng.Intn(hi-lo+1)
		return run.start + off*run.stride
	}
	return rng.Intn(half)
}

// shortRun describes an open run below MinRun.
type shortRun struct {
	start, length int
}

// findShortRun scans rows then columns in raster order and returns the
// first open run shorter than MinRun, or nil if the pattern is clean.
func findShortRun(grid *types.Grid) *shortRun {
	n := grid.Size
	scan := func(at func(i, j int) int) *shortRun {
		for i := 0; i < n; i++ {
			runStart := -1
			for j := 0; j <= n; j++ {
				open := j < n && grid.At(at(i, j)) != types.CellBlock
				if open {
					if runStart < 0 {
						runStart = j
					}
					continue
				}
				if runStart >= 0 && j-runStart < MinRun {
					return &shortRun{start: at(i, runStart), length: j - runStart}
				}
				runStart = -1
			}
		}
		return nil
	}

	if v := scan(func(r, c int) int { return grid.Index(r, c) }); v != nil {
		return v
	}
	return scan(func(c, r int) int { return grid.Index(r, c) })
}

// longRun is an open run longer than the soft ceiling. start is the
// flat index of its first cell and stride steps along it (1 for rows,
// Size for columns).
type longRun struct {
	start, stride, length int
}

// findLongRun returns the first open run strictly longer than limit,
// scanning rows then columns, or nil when none remains.
func findLongRun(grid *types.Grid, limit int) *longRun {
	n := grid.Size
	scan := func(stride int, at func(i, j int) int) *longRun {
		for i := 0; i < n; i++ {
			runStart := -1
			for j := 0; j <= n; j++ {
				open := j < n && grid.At(at(i, j)) != types.CellBlock
				if open {
					if runStart < 0 {
						runStart = j
					}
					continue
				}
				if runStart >= 0 && j-runStart > limit {
					return &longRun{start: at(i, runStart), stride: stride, length: j - runStart}
				}
				runStart = -1
			}
		}
		return nil
	}

	if v := scan(1, func(r, c int) int { return grid.Index(r, c) }); v != nil {
		return v
	}
	return scan(n, func(c, r int) int { return grid.Index(r, c) })
}
