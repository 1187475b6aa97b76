package lexicon

import _ "embed"

// Embedded default bank so the generator runs without any configured
// word list.

//go:embed default_wordbank.txt
var defaultWordBank string

// Default returns the built-in general-knowledge lexicon.
func Default() *Lexicon {
	lex, err := Parse("general", defaultWordBank)
	if err != nil {
		// The embedded bank is a string reader; scanning it cannot fail.
		panic(err)
	}
	return lex
}
