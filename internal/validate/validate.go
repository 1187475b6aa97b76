// Package validate accepts or rejects a completed puzzle against the
// construction invariants. Checks run independently of the solver as a
// defense against solver bugs, and a rejection carries the specific
// violated rules instead of a bare boolean. Rejected puzzles are never
// repaired; the caller requests a fresh generation attempt.
package validate

import (
	"fmt"
	"strings"

	"github.com/duke-git/lancet/v2/slice"
	"github.com/katalvlaran/lvlath/graph/algorithms"
	"github.com/katalvlaran/lvlath/graph/core"

	"crossword_gen_go/internal/types"
)

// Rule identifies a violated invariant.
type Rule string

const (
	GridShape        Rule = "grid_shape"
	Symmetry         Rule = "symmetry"
	EntryLength      Rule = "entry_length"
	DuplicateWord    Rule = "duplicate_word"
	OrphanCell       Rule = "orphan_cell"
	CrossingMismatch Rule = "crossing_mismatch"
	Numbering        Rule = "numbering"

	// SynthesizedClue is reported as a warning, never a failure: an
	// incomplete clue database must not block construction.
	SynthesizedClue Rule = "synthesized_clue"
)

// Violation is one broken rule, with the offending cell where that
// makes sense (Row/Col are -1 for grid-wide rules).
type Violation struct {
	Rule   Rule   `json:"rule"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Detail string `json:"detail"`
}

// Result of a validation pass. Warnings never block acceptance.
type Result struct {
	Violations []Violation
	Warnings   []Violation
}

// OK reports whether the puzzle is accepted.
func (r Result) OK() bool { return len(r.Violations) == 0 }

// Error wraps a failed validation for callers that want an error value.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	rules := slice.Map(e.Violations, func(_ int, v Violation) string {
		return string(v.Rule)
	})
	return fmt.Sprintf("validation failed: %s", strings.Join(slice.Unique(rules), ", "))
}

// Err converts a Result into an error, nil when accepted.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{Violations: r.Violations}
}

// Check runs every invariant against the puzzle. It has no side
// effects and is safe to call repeatedly.
func Check(p *types.Puzzle) Result {
	var res Result

	if !checkShape(p, &res) {
		// Dimensions are broken; the remaining checks would index out
		// of range and report nothing useful.
		return res
	}
	checkSymmetry(p, &res)
	checkEntries(p, &res)
	checkOrphans(p, &res)
	checkCrossings(p, &res)
	checkNumbering(p, &res)
	checkClueQuality(p, &res)
	return res
}

func checkShape(p *types.Puzzle, res *Result) bool {
	n := p.GridSize
	ok := n > 0 && len(p.Pattern) == n && len(p.Solution) == n && len(p.Numbering) == n
	if ok {
		for r := 0; r < n; r++ {
			if len(p.Pattern[r]) != n || len(p.Solution[r]) != n || len(p.Numbering[r]) != n {
				ok = false
				break
			}
		}
	}
	if !ok {
		res.Violations = append(res.Violations, Violation{
			Rule: GridShape, Row: -1, Col: -1,
			Detail: fmt.Sprintf("pattern/solution/numbering are not all %dx%d", n, n),
		})
	}
	return ok
}

func checkSymmetry(p *types.Puzzle, res *Result) {
	n := p.GridSize
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if (p.Pattern[r][c] == "#") != (p.Pattern[n-1-r][n-1-c] == "#") {
				res.Violations = append(res.Violations, Violation{
					Rule: Symmetry, Row: r, Col: c,
					Detail: fmt.Sprintf("block at (%d,%d) has no 180° counterpart", r, c),
				})
			}
		}
	}
}

func checkEntries(p *types.Puzzle, res *Result) {
	seen := make(map[string][]types.Entry)
	for _, e := range p.Entries {
		if e.Length() < 3 || e.Length() > p.GridSize {
			res.Violations = append(res.Violations, Violation{
				Rule: EntryLength, Row: e.Row, Col: e.Col,
				Detail: fmt.Sprintf("%q is %d cells, want 3..%d", e.Word, e.Length(), p.GridSize),
			})
		}
		if !entryInBounds(p, e) {
			res.Violations = append(res.Violations, Violation{
				Rule: EntryLength, Row: e.Row, Col: e.Col,
				Detail: fmt.Sprintf("%q runs off the grid", e.Word),
			})
		}
		seen[e.Word] = append(seen[e.Word], e)
	}
	for word, es := range seen {
		if len(es) > 1 {
			res.Violations = append(res.Violations, Violation{
				Rule: DuplicateWord, Row: es[1].Row, Col: es[1].Col,
				Detail: fmt.Sprintf("%q appears %d times", word, len(es)),
			})
		}
	}
}

func entryInBounds(p *types.Puzzle, e types.Entry) bool {
	if e.Row < 0 || e.Col < 0 {
		return false
	}
	if e.Direction == types.Across {
		return e.Row < p.GridSize && e.Col+e.Length() <= p.GridSize
	}
	return e.Col < p.GridSize && e.Row+e.Length() <= p.GridSize
}

// checkOrphans verifies that every open cell belongs to at least one
// entry. Isolated islands are found by running BFS over a graph whose
// vertices are the open cells and whose edges join orthogonal
// neighbours; a component of size one is unreachable from the rest of
// the grid.
func checkOrphans(p *types.Puzzle, res *Result) {
	n := p.GridSize

	covered := make(map[[2]int]bool)
	for _, e := range p.Entries {
		if !entryInBounds(p, e) {
			continue
		}
		for i := 0; i < e.Length(); i++ {
			r, c := e.Row, e.Col+i
			if e.Direction == types.Down {
				r, c = e.Row+i, e.Col
			}
			covered[[2]int{r, c}] = true
		}
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if p.Pattern[r][c] != "#" && !covered[[2]int{r, c}] {
				res.Violations = append(res.Violations, Violation{
					Rule: OrphanCell, Row: r, Col: c,
					Detail: fmt.Sprintf("open cell (%d,%d) belongs to no entry", r, c),
				})
			}
		}
	}

	id := func(r, c int) string { return fmt.Sprintf("%d,%d", r, c) }
	g := core.NewGraph(false, false)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if p.Pattern[r][c] == "#" {
				continue
			}
			g.AddVertex(&core.Vertex{ID: id(r, c)})
			if c+1 < n && p.Pattern[r][c+1] != "#" {
				g.AddEdge(id(r, c), id(r, c+1), 0)
			}
			if r+1 < n && p.Pattern[r+1][c] != "#" {
				g.AddEdge(id(r, c), id(r+1, c), 0)
			}
		}
	}
	visited := make(map[string]bool)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if p.Pattern[r][c] == "#" || visited[id(r, c)] {
				continue
			}
			trav, err := algorithms.BFS(g, id(r, c), nil)
			if err != nil {
				continue
			}
			for vid := range trav.Visited {
				visited[vid] = true
			}
			if len(trav.Order) == 1 {
				res.Violations = append(res.Violations, Violation{
					Rule: OrphanCell, Row: r, Col: c,
					Detail: fmt.Sprintf("cell (%d,%d) is an isolated island", r, c),
				})
			}
		}
	}
}

// checkCrossings rebuilds every cell's letter from the entries and
// flags any pair of entries that disagree at a shared cell, as well as
// entries that disagree with the published solution grid.
func checkCrossings(p *types.Puzzle, res *Result) {
	type claim struct {
		letter string
		word   string
	}
	claims := make(map[[2]int]claim)

	for _, e := range p.Entries {
		if !entryInBounds(p, e) {
			continue
		}
		for i := 0; i < e.Length(); i++ {
			r, c := e.Row, e.Col+i
			if e.Direction == types.Down {
				r, c = e.Row+i, e.Col
			}
			letter := string(e.Word[i])

			if prev, ok := claims[[2]int{r, c}]; ok && prev.letter != letter {
				res.Violations = append(res.Violations, Violation{
					Rule: CrossingMismatch, Row: r, Col: c,
					Detail: fmt.Sprintf("%q wants %s at (%d,%d), %q wants %s",
						prev.word, prev.letter, r, c, e.Word, letter),
				})
				continue
			}
			claims[[2]int{r, c}] = claim{letter: letter, word: e.Word}

			if sol := p.Solution[r][c]; sol != letter {
				res.Violations = append(res.Violations, Violation{
					Rule: CrossingMismatch, Row: r, Col: c,
					Detail: fmt.Sprintf("solution has %q at (%d,%d) but %q wants %s",
						sol, r, c, e.Word, letter),
				})
			}
		}
	}
}

func checkNumbering(p *types.Puzzle, res *Result) {
	seen := make(map[int][2]int)
	max := 0
	for r := 0; r < p.GridSize; r++ {
		for c := 0; c < p.GridSize; c++ {
			num := p.Numbering[r][c]
			if num == nil {
				continue
			}
			if *num < 1 {
				res.Violations = append(res.Violations, Violation{
					Rule: Numbering, Row: r, Col: c,
					Detail: fmt.Sprintf("number %d below 1", *num),
				})
				continue
			}
			if at, dup := seen[*num]; dup {
				res.Violations = append(res.Violations, Violation{
					Rule: Numbering, Row: r, Col: c,
					Detail: fmt.Sprintf("number %d repeats, first at (%d,%d)", *num, at[0], at[1]),
				})
				continue
			}
			seen[*num] = [2]int{r, c}
			if *num > max {
				max = *num
			}
		}
	}
	for n := 1; n <= max; n++ {
		if _, ok := seen[n]; !ok {
			res.Violations = append(res.Violations, Violation{
				Rule: Numbering, Row: -1, Col: -1,
				Detail: fmt.Sprintf("numbering skips %d", n),
			})
		}
	}
}

func checkClueQuality(p *types.Puzzle, res *Result) {
	for _, e := range p.Entries {
		if e.ClueSource == types.ClueSynthesized {
			res.Warnings = append(res.Warnings, Violation{
				Rule: SynthesizedClue, Row: e.Row, Col: e.Col,
				Detail: fmt.Sprintf("%q carries a placeholder clue", e.Word),
			})
		}
	}
}
