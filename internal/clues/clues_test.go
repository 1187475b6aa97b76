package clues

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crossword_gen_go/internal/lexicon"
	"crossword_gen_go/internal/types"
)

func lexWithClues(t *testing.T, lines ...string) *lexicon.Lexicon {
	t.Helper()
	input := ""
	for _, l := range lines {
		input += l + "\n"
	}
	lex, err := lexicon.Parse("test", input)
	require.NoError(t, err)
	return lex
}

func TestBindPicksLexiconClue(t *testing.T) {
	lex := lexWithClues(t, "CAT,Feline pet", "CAT,Mouser")

	e := Bind(types.Entry{Word: "CAT"}, lex, 7)
	assert.Equal(t, types.ClueLexicon, e.ClueSource)
	assert.Contains(t, []string{"Feline pet", "Mouser"}, e.Clue)
}

func TestBindIsDeterministicPerSeed(t *testing.T) {
	lex := lexWithClues(t, "CAT,Feline pet", "CAT,Mouser", "CAT,Tabby or tom")

	first := Bind(types.Entry{Word: "CAT"}, lex, 42)
	for i := 0; i < 10; i++ {
		again := Bind(types.Entry{Word: "CAT"}, lex, 42)
		assert.Equal(t, first.Clue, again.Clue)
	}

	// With enough seeds every variant should surface.
	seen := map[string]bool{}
	for seed := uint64(0); seed < 64; seed++ {
		seen[Bind(types.Entry{Word: "CAT"}, lex, seed).Clue] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestBindSynthesizesWhenNoClueKnown(t *testing.T) {
	lex := lexWithClues(t, "CAT,Feline pet")

	e := Bind(types.Entry{Word: "DOG"}, lex, 1)
	assert.Equal(t, types.ClueSynthesized, e.ClueSource)
	assert.Equal(t, "3-letter word", e.Clue)
}

func TestBindAllKeepsClueTextUniqueWithinPuzzle(t *testing.T) {
	// Both words share their only clue text; the second binding must
	// fall through to a synthesized variant instead of duplicating it.
	lex := lexWithClues(t, "CAT,Animal", "DOG,Animal")

	out := BindAll([]types.Entry{{Word: "CAT"}, {Word: "DOG"}}, lex, 3)
	require.Len(t, out, 2)
	assert.NotEqual(t, out[0].Clue, out[1].Clue)

	sources := map[types.ClueSource]int{}
	for _, e := range out {
		sources[e.ClueSource]++
	}
	assert.Equal(t, 1, sources[types.ClueLexicon])
	assert.Equal(t, 1, sources[types.ClueSynthesized])
}

func TestBindAllStepsToAlternateLexiconClues(t *testing.T) {
	lex := lexWithClues(t,
		"CAT,Animal", "CAT,Mouser",
		"DOG,Animal", "DOG,Barker",
	)

	out := BindAll([]types.Entry{{Word: "CAT"}, {Word: "DOG"}}, lex, 3)
	require.Len(t, out, 2)
	assert.NotEqual(t, out[0].Clue, out[1].Clue)
	for _, e := range out {
		assert.Equal(t, types.ClueLexicon, e.ClueSource, "word %s", e.Word)
	}
}

func TestBindAllRepeatedWordMayShareClue(t *testing.T) {
	// Uniqueness is keyed on distinct words. The same word appearing
	// twice (which the validator rejects elsewhere) keeps its clue.
	lex := lexWithClues(t, "CAT,Animal")

	out := BindAll([]types.Entry{{Word: "CAT"}, {Word: "CAT"}}, lex, 3)
	require.Len(t, out, 2)
	assert.Equal(t, out[0].Clue, out[1].Clue)
}

func TestBindAllSynthesizedVariantsDiverge(t *testing.T) {
	// Three clueless words of the same length exhaust the plain
	// variant chain and still end up pairwise distinct.
	lex := lexWithClues(t, "ZZZZ,Unused")

	out := BindAll([]types.Entry{{Word: "AAA"}, {Word: "BBB"}, {Word: "CCC"}}, lex, 9)
	require.Len(t, out, 3)
	seen := map[string]bool{}
	for _, e := range out {
		assert.Equal(t, types.ClueSynthesized, e.ClueSource)
		assert.False(t, seen[e.Clue], "duplicate clue %q", e.Clue)
		seen[e.Clue] = true
	}
	assert.Equal(t, "3-letter word", out[0].Clue)
	assert.Equal(t, fmt.Sprintf("3-letter word starting with %c", 'B'), out[1].Clue)
}

func TestBindAllDoesNotMutateInput(t *testing.T) {
	lex := lexWithClues(t, "CAT,Animal")
	in := []types.Entry{{Word: "CAT"}}
	BindAll(in, lex, 1)
	assert.Empty(t, in[0].Clue)
}
