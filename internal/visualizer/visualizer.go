// Package visualizer renders puzzles to the terminal for quick
// inspection during batch runs.
package visualizer

import (
	"fmt"
	"strings"

	"crossword_gen_go/internal/types"
)

// Visualizer handles puzzle visualization
type Visualizer struct {
	puzzle *types.Puzzle
}

func NewVisualizer(p *types.Puzzle) *Visualizer {
	return &Visualizer{puzzle: p}
}

// Print renders the empty grid: blocks, open cells and entry numbers.
func (v *Visualizer) Print() {
	v.printGrid(func(r, c int) string {
		if v.puzzle.Pattern[r][c] == "#" {
			return "███"
		}
		if n := v.puzzle.Numbering[r][c]; n != nil {
			return fmt.Sprintf("%-3d", *n)
		}
		return "   "
	})
}

// PrintSolution renders the fully filled grid.
func (v *Visualizer) PrintSolution() {
	v.printGrid(func(r, c int) string {
		if v.puzzle.Solution[r][c] == "#" {
			return "███"
		}
		return fmt.Sprintf(" %s ", v.puzzle.Solution[r][c])
	})
}

// PrintClues lists the across and down clues by number.
func (v *Visualizer) PrintClues() {
	for _, dir := range []types.Direction{types.Across, types.Down} {
		fmt.Printf("\n%s:\n", strings.ToUpper(string(dir)))
		for _, e := range v.puzzle.Entries {
			if e.Direction != dir {
				continue
			}
			fmt.Printf("%3d. %s (%d)\n", e.Number, e.Clue, e.Length())
		}
	}
}

func (v *Visualizer) printGrid(cell func(r, c int) string) {
	size := v.puzzle.GridSize
	border := strings.Repeat("─", size*3)

	fmt.Printf("┌%s┐\n", border)
	for r := 0; r < size; r++ {
		fmt.Print("│")
		for c := 0; c < size; c++ {
			fmt.Print(cell(r, c))
		}
		fmt.Println("│")
	}
	fmt.Printf("└%s┘\n", border)
}
