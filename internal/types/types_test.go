package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridMirror(t *testing.T) {
	g := NewGrid(15)
	assert.Equal(t, 224, g.Mirror(0))
	assert.Equal(t, 112, g.Mirror(112)) // center maps to itself
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := NewGrid(5)
	g.Set(g.Index(1, 1), CellBlock)

	cp := g.Clone()
	cp.Set(cp.Index(2, 2), 'A')

	assert.True(t, g.IsBlock(1, 1))
	assert.Equal(t, byte(0), g.Letter(2, 2))
	assert.Equal(t, byte('A'), cp.Letter(2, 2))
}

func TestBuildPuzzleContract(t *testing.T) {
	g := NewGrid(3)
	g.Set(g.Index(0, 0), CellBlock)
	g.Set(g.Index(2, 2), CellBlock)
	g.Set(g.Index(0, 1), 'A')

	one := 1
	numbering := [][]*int{
		{nil, &one, nil},
		{nil, nil, nil},
		{nil, nil, nil},
	}
	puz := BuildPuzzle(g, numbering, nil, 42, "test")

	assert.Equal(t, "#", puz.Pattern[0][0])
	assert.Equal(t, ".", puz.Pattern[0][1])
	assert.Equal(t, "#", puz.Solution[0][0])
	assert.Equal(t, "A", puz.Solution[0][1])
	assert.Equal(t, ".", puz.Solution[1][1])

	// The wire format uses snake_case keys and null for unnumbered cells.
	raw, err := puz.ToJSON()
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "grid_size")
	assert.Contains(t, decoded, "numbering")
	assert.Contains(t, decoded, "seed")

	num := decoded["numbering"].([]any)[0].([]any)
	assert.Nil(t, num[0])
	assert.Equal(t, float64(1), num[1])
}

func TestPuzzleJSONRoundTrip(t *testing.T) {
	g := NewGrid(3)
	puz := BuildPuzzle(g, [][]*int{{nil, nil, nil}, {nil, nil, nil}, {nil, nil, nil}},
		[]Entry{{Number: 1, Direction: Across, Word: "CAT", Clue: "Feline pet", ClueSource: ClueLexicon}},
		7, "animals")

	raw, err := puz.ToJSON()
	require.NoError(t, err)
	back, err := FromJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, puz, back)
}
