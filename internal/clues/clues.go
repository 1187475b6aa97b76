// Package clues binds clue text to placed entries. Selection is
// deterministic in (seed, word) so a batch of puzzles is reproducible
// while the same word gets varied clues across seeds.
package clues

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"crossword_gen_go/internal/lexicon"
	"crossword_gen_go/internal/types"
)

// Bind selects a clue for one entry: lexicon clue picked by
// hash(seed, word) modulo the clue count, or a synthesized fallback
// when the clue table has nothing for the word.
func Bind(e types.Entry, lex *lexicon.Lexicon, seed uint64) types.Entry {
	cs := lex.Clues(e.Word)
	if len(cs) == 0 {
		e.Clue = synthesize(e.Word, 0)
		e.ClueSource = types.ClueSynthesized
		return e
	}
	e.Clue = cs[clueHash(seed, e.Word)%uint64(len(cs))]
	e.ClueSource = types.ClueLexicon
	return e
}

// BindAll binds every entry and guarantees that within the puzzle no
// two entries carry identical clue text unless the word itself is
// identical. Colliding lexicon clues step to the next variant;
// when all variants collide the clue is synthesized instead.
func BindAll(entries []types.Entry, lex *lexicon.Lexicon, seed uint64) []types.Entry {
	out := make([]types.Entry, len(entries))
	copy(out, entries)

	takenBy := make(map[string]string) // clue text -> word
	for i := range out {
		word := out[i].Word
		bound := false

		cs := lex.Clues(word)
		if len(cs) > 0 {
			start := clueHash(seed, word) % uint64(len(cs))
			for step := 0; step < len(cs); step++ {
				clue := cs[(start+uint64(step))%uint64(len(cs))]
				if w, taken := takenBy[clue]; taken && w != word {
					continue
				}
				out[i].Clue = clue
				out[i].ClueSource = types.ClueLexicon
				bound = true
				break
			}
		}

		for variant := 0; !bound; variant++ {
			clue := synthesize(word, variant)
			if w, taken := takenBy[clue]; taken && w != word {
				continue
			}
			out[i].Clue = clue
			out[i].ClueSource = types.ClueSynthesized
			bound = true
		}

		takenBy[out[i].Clue] = word
	}
	return out
}

// synthesize builds a neutral placeholder clue. Later variants add
// detail so that distinct words always reach distinct text.
func synthesize(word string, variant int) string {
	switch variant {
	case 0:
		return fmt.Sprintf("%d-letter word", len(word))
	case 1:
		return fmt.Sprintf("%d-letter word starting with %c", len(word), word[0])
	case 2:
		return fmt.Sprintf("%d-letter word, %c to %c", len(word), word[0], word[len(word)-1])
	default:
		return fmt.Sprintf("%d-letter word (ref %d)", len(word), clueHash(uint64(variant), word)%10000)
	}
}

func clueHash(seed uint64, word string) uint64 {
	h := fnv.New64a()
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], seed)
	h.Write(b[:])
	h.Write([]byte(word))
	return h.Sum64()
}
