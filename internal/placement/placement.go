// Package placement fills the open runs of a block pattern with words
// from a lexicon so that every crossing agrees letter-for-letter.
//
// The solver is a depth-first search with chronological backtracking:
// slots are picked most-constrained-first, candidates are tried in a
// per-slot pseudo-random order derived from the puzzle seed, and an
// explicit undo log restores cells on backtrack instead of copying
// the grid.
package placement

import (
	"errors"
	"math/rand"

	"crossword_gen_go/internal/lexicon"
	"crossword_gen_go/internal/types"
)

// DefaultBudget bounds the total number of backtrack steps before a
// generation attempt is abandoned.
const DefaultBudget = 5000

// ErrPlacementFailed is returned when the search exhausts its
// backtracking budget or the lexicon cannot fill the pattern. The
// caller should retry with a fresh seed rather than repair.
var ErrPlacementFailed = errors.New("placement: could not fill grid within backtracking budget")

// slot is a maximal open run of length >= 3, across or down.
type slot struct {
	index int // position in raster enumeration, used for seeding and ties
	row   int
	col   int
	dir   types.Direction
	cells []int // flat grid indices
	order []int // candidate iteration order over the length bucket
	word  string
}

type undoRecord struct {
	cell int
	prev byte
}

// Solver carries the mutable search state for one fill attempt.
type Solver struct {
	grid       *types.Grid
	lex        *lexicon.Lexicon
	slots      []*slot
	acrossAt   map[int]*slot
	downAt     map[int]*slot
	used       map[string]bool
	budget     int
	backtracks int
}

// Fill places a word into every open run of the grid, mutating the
// grid's open cells into letters. Entries are returned in raster
// order, without numbers or clues. The result is deterministic for a
// given (grid, lexicon, seed).
func Fill(grid *types.Grid, lex *lexicon.Lexicon, seed uint64, budget int) ([]types.Entry, error) {
	if budget <= 0 {
		budget = DefaultBudget
	}
	s := &Solver{
		grid:     grid,
		lex:      lex,
		acrossAt: make(map[int]*slot),
		downAt:   make(map[int]*slot),
		used:     make(map[string]bool),
		budget:   budget,
	}
	s.enumerateSlots(seed)

	ok, err := s.solve()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPlacementFailed
	}

	entries := make([]types.Entry, 0, len(s.slots))
	for _, sl := range s.slots {
		entries = append(entries, types.Entry{
			Word:      sl.word,
			Direction: sl.dir,
			Row:       sl.row,
			Col:       sl.col,
		})
	}
	return entries, nil
}

// enumerateSlots collects maximal open runs, across first then down,
// each in raster order. Every slot gets its own fixed candidate
// permutation seeded from (puzzle seed, slot index) so batches are
// reproducible while puzzles within a batch differ.
func (s *Solver) enumerateSlots(seed uint64) {
	n := s.grid.Size
	add := func(row, col int, dir types.Direction, cells []int) {
		if len(cells) < lexicon.MinWordLength {
			return
		}
		sl := &slot{
			index: len(s.slots),
			row:   row,
			col:   col,
			dir:   dir,
			cells: cells,
		}
		rng := rand.New(rand.NewSource(int64(seed ^ uint64(sl.index)*0x9e3779b97f4a7c15)))
		sl.order = rng.Perm(len(s.lex.Bucket(len(cells))))
		s.slots = append(s.slots, sl)
		for _, c := range cells {
			if dir == types.Across {
				s.acrossAt[c] = sl
			} else {
				s.downAt[c] = sl
			}
		}
	}

	for r := 0; r < n; r++ {
		start := -1
		for c := 0; c <= n; c++ {
			if c < n && !s.grid.IsBlock(r, c) {
				if start < 0 {
					start = c
				}
				continue
			}
			if start >= 0 {
				cells := make([]int, 0, c-start)
				for k := start; k < c; k++ {
					cells = append(cells, s.grid.Index(r, k))
				}
				add(r, start, types.Across, cells)
			}
			start = -1
		}
	}
	for c := 0; c < n; c++ {
		start := -1
		for r := 0; r <= n; r++ {
			if r < n && !s.grid.IsBlock(r, c) {
				if start < 0 {
					start = r
				}
				continue
			}
			if start >= 0 {
				cells := make([]int, 0, r-start)
				for k := start; k < r; k++ {
					cells = append(cells, s.grid.Index(k, c))
				}
				add(start, c, types.Down, cells)
			}
			start = -1
		}
	}
}

func (s *Solver) solve() (bool, error) {
	sl := s.nextSlot()
	if sl == nil {
		return true, nil
	}

	fixed := s.constraints(sl)
	bucket := s.lex.Bucket(len(sl.cells))
	for _, oi := range sl.order {
		w := bucket[oi]
		if s.used[w] || !lexicon.Matches(w, fixed) {
			continue
		}
		if !s.forwardCheck(sl, w) {
			continue
		}

		undo := s.place(sl, w)
		ok, err := s.solve()
		if ok || err != nil {
			return ok, err
		}
		s.unplace(sl, undo)

		s.backtracks++
		if s.backtracks > s.budget {
			return false, ErrPlacementFailed
		}
	}
	// No viable candidate for this slot: signal the caller to undo its
	// own last commitment. A lexicon with an empty bucket lands here too.
	return false, nil
}

// nextSlot picks the unfilled slot with the most already-fixed crossing
// letters; ties go to the longer slot, then to raster position.
func (s *Solver) nextSlot() *slot {
	var best *slot
	bestFixed := -1
	for _, sl := range s.slots {
		if sl.word != "" {
			continue
		}
		f := 0
		for _, c := range sl.cells {
			if s.grid.At(c) != types.CellOpen {
				f++
			}
		}
		if best == nil || s.outranks(sl, f, best, bestFixed) {
			best = sl
			bestFixed = f
		}
	}
	return best
}

// outranks orders slots for nextSlot: more fixed letters first, then
// longer, then earlier start cell in raster order. Slots sharing all
// three keep enumeration order, which places across before down.
func (s *Solver) outranks(a *slot, af int, b *slot, bf int) bool {
	if af != bf {
		return af > bf
	}
	if len(a.cells) != len(b.cells) {
		return len(a.cells) > len(b.cells)
	}
	return a.row*s.grid.Size+a.col < b.row*s.grid.Size+b.col
}

func (s *Solver) constraints(sl *slot) []lexicon.Constraint {
	var fixed []lexicon.Constraint
	for i, c := range sl.cells {
		if l := s.grid.At(c); l != types.CellOpen {
			fixed = append(fixed, lexicon.Constraint{Pos: i, Letter: l})
		}
	}
	return fixed
}

// forwardCheck prunes candidates whose newly-fixed cells would leave a
// crossing slot with no matching word at all. This is heuristic
// pruning, not full propagation; the validator re-verifies crossings.
func (s *Solver) forwardCheck(sl *slot, word string) bool {
	for i, c := range sl.cells {
		if s.grid.At(c) != types.CellOpen {
			continue
		}
		cross := s.downAt[c]
		if sl.dir == types.Down {
			cross = s.acrossAt[c]
		}
		if cross == nil || cross.word != "" {
			continue
		}

		fixed := s.constraints(cross)
		pos := crossPos(cross, c)
		fixed = append(fixed, lexicon.Constraint{Pos: pos, Letter: word[i]})

		viable := false
		for cand := range s.lex.Candidates(len(cross.cells), fixed) {
			if !s.used[cand] && cand != word {
				viable = true
				break
			}
		}
		if !viable {
			return false
		}
	}
	return true
}

func crossPos(sl *slot, cell int) int {
	for i, c := range sl.cells {
		if c == cell {
			return i
		}
	}
	return -1
}

func (s *Solver) place(sl *slot, word string) []undoRecord {
	undo := make([]undoRecord, 0, len(sl.cells))
	for i, c := range sl.cells {
		undo = append(undo, undoRecord{cell: c, prev: s.grid.At(c)})
		s.grid.Set(c, word[i])
	}
	sl.word = word
	s.used[word] = true
	return undo
}

func (s *Solver) unplace(sl *slot, undo []undoRecord) {
	for i := len(undo) - 1; i >= 0; i-- {
		s.grid.Set(undo[i].cell, undo[i].prev)
	}
	delete(s.used, sl.word)
	sl.word = ""
}
