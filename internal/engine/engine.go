// Package engine runs the full construction pipeline for one seed:
// block pattern, word placement, numbering, clue binding, validation.
// A generation is a pure function of (lexicon, params, seed), which
// makes batches reproducible and safely parallel.
package engine

import (
	"fmt"
	"math/rand"

	"crossword_gen_go/internal/clues"
	"crossword_gen_go/internal/lexicon"
	"crossword_gen_go/internal/numbering"
	"crossword_gen_go/internal/pattern"
	"crossword_gen_go/internal/placement"
	"crossword_gen_go/internal/types"
	"crossword_gen_go/internal/validate"
)

// DefaultGridSize is the standard American-style grid.
const DefaultGridSize = 15

// Params configures one generation run. Zero values pick defaults.
type Params struct {
	GridSize   int
	BlockRatio float64
	Theme      string
	Backtracks int // placement budget, placement.DefaultBudget when 0
}

func (p Params) withDefaults() Params {
	if p.GridSize == 0 {
		p.GridSize = DefaultGridSize
	}
	if p.Backtracks == 0 {
		p.Backtracks = placement.DefaultBudget
	}
	return p
}

// Generate builds and validates one puzzle. The lexicon is only read,
// so a single lexicon may serve any number of concurrent calls. On
// placement failure the caller should retry with a different seed; the
// engine never retries on its own so generation time stays observable.
func Generate(lex *lexicon.Lexicon, params Params, seed uint64) (*types.Puzzle, error) {
	params = params.withDefaults()

	rng := rand.New(rand.NewSource(int64(seed)))
	grid := pattern.NewGenerator(params.GridSize, params.BlockRatio).Generate(rng)

	entries, err := placement.Fill(grid, lex, seed, params.Backtracks)
	if err != nil {
		return nil, fmt.Errorf("seed %d: %w", seed, err)
	}

	entries, matrix := numbering.Apply(grid, entries)
	entries = clues.BindAll(entries, lex, seed)

	theme := params.Theme
	if theme == "" {
		theme = lex.Theme()
	}
	puz := types.BuildPuzzle(grid, matrix, entries, seed, theme)

	if res := validate.Check(puz); !res.OK() {
		return nil, fmt.Errorf("seed %d: %w", seed, res.Err())
	}
	return puz, nil
}
