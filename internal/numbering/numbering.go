// Package numbering assigns entry numbers to a placed grid. It is a
// pure pass over the block pattern: given the minimum-run invariant it
// always succeeds.
package numbering

import (
	"sort"

	"crossword_gen_go/internal/types"
)

const minRun = 3

// Numbers walks the grid in raster order and numbers every cell that
// starts an across and/or a down run of length >= 3. A cell starting
// both gets a single shared number. The returned matrix uses nil for
// blocks and unnumbered cells, matching the puzzle JSON contract.
func Numbers(g *types.Grid) [][]*int {
	matrix := make([][]*int, g.Size)
	for r := range matrix {
		matrix[r] = make([]*int, g.Size)
	}

	next := 1
	for r := 0; r < g.Size; r++ {
		for c := 0; c < g.Size; c++ {
			if g.IsBlock(r, c) {
				continue
			}
			if startsAcross(g, r, c) || startsDown(g, r, c) {
				n := next
				matrix[r][c] = &n
				next++
			}
		}
	}
	return matrix
}

// Apply stamps numbers onto entries by their start cell and returns
// them in conventional order: across entries by number, then down.
func Apply(g *types.Grid, entries []types.Entry) ([]types.Entry, [][]*int) {
	matrix := Numbers(g)

	out := make([]types.Entry, len(entries))
	copy(out, entries)
	for i := range out {
		if n := matrix[out[i].Row][out[i].Col]; n != nil {
			out[i].Number = *n
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Direction != out[j].Direction {
			return out[i].Direction == types.Across
		}
		return out[i].Number < out[j].Number
	})
	return out, matrix
}

func startsAcross(g *types.Grid, r, c int) bool {
	if c > 0 && !g.IsBlock(r, c-1) {
		return false
	}
	length := 0
	for k := c; k < g.Size && !g.IsBlock(r, k); k++ {
		length++
	}
	return length >= minRun
}

func startsDown(g *types.Grid, r, c int) bool {
	if r > 0 && !g.IsBlock(r-1, c) {
		return false
	}
	length := 0
	for k := r; k < g.Size && !g.IsBlock(k, c); k++ {
		length++
	}
	return length >= minRun
}
