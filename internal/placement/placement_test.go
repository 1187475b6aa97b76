package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crossword_gen_go/internal/lexicon"
	"crossword_gen_go/internal/types"
)

// blockAllExcept returns a grid where only the listed cells are open.
func blockAllExcept(size int, open [][2]int) *types.Grid {
	grid := types.NewGrid(size)
	for idx := 0; idx < size*size; idx++ {
		grid.Set(idx, types.CellBlock)
	}
	for _, rc := range open {
		grid.Set(grid.Index(rc[0], rc[1]), types.CellOpen)
	}
	return grid
}

func TestFillTwoCrossingSlots(t *testing.T) {
	// Across at (0,0)-(0,2) crossing down at (0,0)-(2,0).
	grid := blockAllExcept(5, [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {2, 0}})
	lex := lexicon.New("", []string{"CAT", "CAB", "COT"}, nil)

	entries, err := Fill(grid, lex, 7, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var across, down types.Entry
	for _, e := range entries {
		if e.Direction == types.Across {
			across = e
		} else {
			down = e
		}
	}
	assert.NotEmpty(t, across.Word)
	assert.NotEmpty(t, down.Word)
	assert.NotEqual(t, across.Word, down.Word, "duplicate words are forbidden")
	assert.Equal(t, across.Word[0], down.Word[0], "shared cell (0,0) must agree")

	// Grid letters were committed.
	assert.Equal(t, across.Word[1], grid.Letter(0, 1))
	assert.Equal(t, down.Word[2], grid.Letter(2, 0))
}

func TestFillRejectsDuplicateWords(t *testing.T) {
	grid := blockAllExcept(5, [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {2, 0}})
	// Only one word fits both slots, and it may be used once.
	lex := lexicon.New("", []string{"CAT"}, nil)

	_, err := Fill(grid, lex, 1, 0)
	assert.ErrorIs(t, err, ErrPlacementFailed)
}

func TestFillPlusPatternWithoutFiveLetterWords(t *testing.T) {
	// A 5x5 plus: full middle row and column, every slot is length 5.
	var open [][2]int
	for i := 0; i < 5; i++ {
		open = append(open, [2]int{2, i}, [2]int{i, 2})
	}
	grid := blockAllExcept(5, open)
	lex := lexicon.New("", []string{"CAT", "DOG", "SUN", "RUN"}, nil)

	_, err := Fill(grid, lex, 3, 0)
	assert.ErrorIs(t, err, ErrPlacementFailed)
}

func TestFillIsDeterministic(t *testing.T) {
	lex := lexicon.New("", []string{
		"CAT", "CAB", "COT", "TAR", "TIP", "PIT", "RAT", "BAT", "TAB", "ARC",
	}, nil)

	fill := func() []types.Entry {
		grid := blockAllExcept(5, [][2]int{
			{0, 0}, {0, 1}, {0, 2},
			{1, 0}, {2, 0},
			{2, 1}, {2, 2},
			{1, 2},
		})
		entries, err := Fill(grid, lex, 42, 0)
		require.NoError(t, err)
		return entries
	}

	assert.Equal(t, fill(), fill())
}

func TestFillSeedVariesCandidateOrder(t *testing.T) {
	lex := lexicon.New("", []string{
		"CAT", "CAB", "COT", "CUP", "CAP", "CAR", "COD", "COB", "CUB", "CUT",
	}, nil)

	words := make(map[string]bool)
	for seed := uint64(1); seed <= 10; seed++ {
		grid := blockAllExcept(5, [][2]int{{0, 0}, {0, 1}, {0, 2}})
		entries, err := Fill(grid, lex, seed, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		words[entries[0].Word] = true
	}
	assert.Greater(t, len(words), 1, "different seeds should explore different candidates")
}

func TestFillUnsatisfiableRingFailsWithinBudget(t *testing.T) {
	// A ring of four crossing slots where every word starts with A and
	// ends with B: the corners can never agree, so the search must give
	// up and report failure instead of hanging.
	var open [][2]int
	for i := 0; i < 5; i++ {
		open = append(open,
			[2]int{0, i}, [2]int{4, i},
			[2]int{i, 0}, [2]int{i, 4},
		)
	}
	grid := blockAllExcept(5, open)
	lex := lexicon.New("", []string{
		"AAAAB", "AABAB", "ABAAB", "ABBAB", "AABBB", "ABABB",
	}, nil)

	_, err := Fill(grid, lex, 5, 10)
	assert.ErrorIs(t, err, ErrPlacementFailed)
}

func TestNextSlotTieBreaksOnRasterPosition(t *testing.T) {
	// An L shape: down at (0,0)-(2,0) and across at (2,0)-(2,2). Both
	// start with no fixed letters and the same length, so the slot
	// whose start cell comes first in raster order must win even
	// though across slots are enumerated before down slots.
	grid := blockAllExcept(3, [][2]int{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}})
	lex := lexicon.New("", []string{"CAT", "TAB"}, nil)

	s := &Solver{
		grid:     grid,
		lex:      lex,
		acrossAt: make(map[int]*slot),
		downAt:   make(map[int]*slot),
		used:     make(map[string]bool),
		budget:   DefaultBudget,
	}
	s.enumerateSlots(7)
	require.Len(t, s.slots, 2)
	require.Equal(t, types.Across, s.slots[0].dir)

	first := s.nextSlot()
	require.NotNil(t, first)
	assert.Equal(t, types.Down, first.dir)
	assert.Equal(t, 0, first.row)
	assert.Equal(t, 0, first.col)
}
