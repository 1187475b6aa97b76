package types

import "encoding/json"

// Direction of a placed entry.
type Direction string

const (
	Across Direction = "across"
	Down   Direction = "down"
)

// ClueSource tells whether an entry's clue came from the lexicon
// or was synthesized as a fallback.
type ClueSource string

const (
	ClueLexicon     ClueSource = "lexicon"
	ClueSynthesized ClueSource = "synthesized"
)

// Cell states inside a Grid. A letter cell stores the letter itself.
const (
	CellOpen  byte = 0
	CellBlock byte = '#'
)

// Grid is a square crossword grid. Cells are stored flat in row-major
// order: CellOpen for an empty fillable cell, CellBlock for a block,
// or an uppercase letter once placed.
type Grid struct {
	Size  int
	cells []byte
}

// NewGrid creates an all-open grid of the given size.
func NewGrid(size int) *Grid {
	return &Grid{
		Size:  size,
		cells: make([]byte, size*size),
	}
}

// Index converts (row, col) to a flat cell index.
func (g *Grid) Index(row, col int) int { return row*g.Size + col }

// Coord converts a flat cell index back to (row, col).
func (g *Grid) Coord(idx int) (row, col int) { return idx / g.Size, idx % g.Size }

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Size && col >= 0 && col < g.Size
}

// At returns the raw cell state at a flat index.
func (g *Grid) At(idx int) byte { return g.cells[idx] }

// Set writes a raw cell state at a flat index.
func (g *Grid) Set(idx int, state byte) { g.cells[idx] = state }

// IsBlock reports whether the cell at (row, col) is a block.
func (g *Grid) IsBlock(row, col int) bool {
	return g.cells[g.Index(row, col)] == CellBlock
}

// Letter returns the letter at (row, col), or 0 if the cell is open or a block.
func (g *Grid) Letter(row, col int) byte {
	c := g.cells[g.Index(row, col)]
	if c == CellOpen || c == CellBlock {
		return 0
	}
	return c
}

// Mirror returns the flat index of the 180°-rotated counterpart of idx.
func (g *Grid) Mirror(idx int) int { return g.Size*g.Size - 1 - idx }

// BlockCount returns the number of block cells.
func (g *Grid) BlockCount() int {
	n := 0
	for _, c := range g.cells {
		if c == CellBlock {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cp := NewGrid(g.Size)
	copy(cp.cells, g.cells)
	return cp
}

// Entry is a word placed into the grid. Entries are immutable once
// created; backtracking removes them, it never mutates them in place.
type Entry struct {
	Number     int        `json:"number"`
	Direction  Direction  `json:"direction"`
	Word       string     `json:"word"`
	Clue       string     `json:"clue"`
	ClueSource ClueSource `json:"clue_source,omitempty"`
	Row        int        `json:"row"`
	Col        int        `json:"col"`
}

// Length returns the entry length in cells.
func (e Entry) Length() int { return len(e.Word) }

// Puzzle is the output contract consumed by the page-layout renderer
// and the content QA tool. Pattern and Solution use "#" for blocks;
// Pattern uses "." for open cells, Solution holds the placed letters.
type Puzzle struct {
	GridSize  int        `json:"grid_size"`
	Pattern   [][]string `json:"pattern"`
	Solution  [][]string `json:"solution"`
	Numbering [][]*int   `json:"numbering"`
	Entries   []Entry    `json:"entries"`
	Theme     string     `json:"theme,omitempty"`
	Seed      uint64     `json:"seed"`
}

// BuildPuzzle assembles the puzzle contract from a fully placed grid,
// its numbering matrix and the final entries.
func BuildPuzzle(g *Grid, numbering [][]*int, entries []Entry, seed uint64, theme string) *Puzzle {
	pattern := make([][]string, g.Size)
	solution := make([][]string, g.Size)
	for r := 0; r < g.Size; r++ {
		pattern[r] = make([]string, g.Size)
		solution[r] = make([]string, g.Size)
		for c := 0; c < g.Size; c++ {
			if g.IsBlock(r, c) {
				pattern[r][c] = "#"
				solution[r][c] = "#"
				continue
			}
			pattern[r][c] = "."
			if l := g.Letter(r, c); l != 0 {
				solution[r][c] = string(l)
			} else {
				solution[r][c] = "."
			}
		}
	}
	return &Puzzle{
		GridSize:  g.Size,
		Pattern:   pattern,
		Solution:  solution,
		Numbering: numbering,
		Entries:   entries,
		Theme:     theme,
		Seed:      seed,
	}
}

// ToJSON converts the puzzle to JSON bytes.
func (p *Puzzle) ToJSON() ([]byte, error) {
	return json.Marshal(p)
}

// FromJSON creates a Puzzle from JSON bytes.
func FromJSON(data []byte) (*Puzzle, error) {
	var p Puzzle
	err := json.Unmarshal(data, &p)
	return &p, err
}
