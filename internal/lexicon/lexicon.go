// Package lexicon holds the word and clue database used during
// crossword construction. A lexicon is loaded once, then shared
// read-only across concurrent puzzle generations.
package lexicon

import (
	"bufio"
	"fmt"
	"iter"
	"os"
	"sort"
	"strings"

	"github.com/duke-git/lancet/v2/slice"
)

const (
	MinWordLength = 3
	MaxWordLength = 15
)

// Constraint pins a single position of a candidate word to a letter
// already committed by a crossing entry.
type Constraint struct {
	Pos    int
	Letter byte
}

// Lexicon indexes candidate words by length and maps each word to
// zero or more clue strings. Read-only after construction.
type Lexicon struct {
	theme    string
	byLength map[int][]string
	clues    map[string][]string
}

// New builds a lexicon from a themed word list and an optional clue
// table. Words are uppercased; anything outside 3–15 alphabetic
// letters is dropped here rather than during search. Duplicates are
// removed while preserving first-seen order.
func New(theme string, words []string, clues map[string][]string) *Lexicon {
	lex := &Lexicon{
		theme:    theme,
		byLength: make(map[int][]string),
		clues:    make(map[string][]string),
	}

	kept := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToUpper(strings.TrimSpace(w))
		if !isValidWord(w) {
			continue
		}
		kept = append(kept, w)
	}
	for _, w := range slice.Unique(kept) {
		lex.byLength[len(w)] = append(lex.byLength[len(w)], w)
	}

	for w, cs := range clues {
		w = strings.ToUpper(strings.TrimSpace(w))
		if !isValidWord(w) {
			continue
		}
		for _, c := range cs {
			c = strings.TrimSpace(c)
			if c != "" {
				lex.clues[w] = append(lex.clues[w], c)
			}
		}
	}

	return lex
}

// LoadFile reads a word list in "WORD,clue" form, one entry per line.
// Lines without a comma contribute a word with no clue; repeated words
// accumulate clues. Blank lines and lines starting with '#' are skipped.
func LoadFile(theme, path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	return parse(theme, bufio.NewScanner(f))
}

// Parse reads a word list from an in-memory string in the same format
// as LoadFile. Used for embedded default word banks.
func Parse(theme, data string) (*Lexicon, error) {
	return parse(theme, bufio.NewScanner(strings.NewReader(data)))
}

func parse(theme string, sc *bufio.Scanner) (*Lexicon, error) {
	var words []string
	clues := make(map[string][]string)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, clue, _ := strings.Cut(line, ",")
		word = strings.ToUpper(strings.TrimSpace(word))
		words = append(words, word)
		if clue = strings.TrimSpace(clue); clue != "" {
			clues[word] = append(clues[word], clue)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}

	return New(theme, words, clues), nil
}

// Theme returns the theme the lexicon was loaded with.
func (l *Lexicon) Theme() string { return l.theme }

// Bucket returns the words of a given length in load order. The
// returned slice must not be modified.
func (l *Lexicon) Bucket(length int) []string {
	return l.byLength[length]
}

// Candidates returns a lazy, restartable sequence of words of exactly
// the given length whose letters match every fixed-position constraint.
// An empty length bucket yields an empty sequence; absence of
// candidates is a normal backtracking signal, not an error.
func (l *Lexicon) Candidates(length int, fixed []Constraint) iter.Seq[string] {
	bucket := l.byLength[length]
	return func(yield func(string) bool) {
		for _, w := range bucket {
			if Matches(w, fixed) && !yield(w) {
				return
			}
		}
	}
}

// Matches reports whether a word satisfies every fixed-position constraint.
func Matches(word string, fixed []Constraint) bool {
	for _, c := range fixed {
		if c.Pos < 0 || c.Pos >= len(word) || word[c.Pos] != c.Letter {
			return false
		}
	}
	return true
}

// Clues returns the clue strings known for a word, or nil.
func (l *Lexicon) Clues(word string) []string {
	return l.clues[strings.ToUpper(word)]
}

// MissingClues returns every word that has no clue yet, sorted, so a
// clue writer can fill the gaps before generation starts.
func (l *Lexicon) MissingClues() []string {
	var missing []string
	for _, bucket := range l.byLength {
		for _, w := range bucket {
			if len(l.clues[w]) == 0 {
				missing = append(missing, w)
			}
		}
	}
	sort.Strings(missing)
	return missing
}

// WithExtraClues returns a copy of the lexicon with additional clues
// merged in. The receiver is left untouched; generations already
// holding it keep reading a consistent view.
func (l *Lexicon) WithExtraClues(extra map[string]string) *Lexicon {
	cp := &Lexicon{
		theme:    l.theme,
		byLength: l.byLength,
		clues:    make(map[string][]string, len(l.clues)+len(extra)),
	}
	for w, cs := range l.clues {
		cp.clues[w] = cs
	}
	for w, c := range extra {
		w = strings.ToUpper(strings.TrimSpace(w))
		if c = strings.TrimSpace(c); c != "" && isValidWord(w) {
			cp.clues[w] = append(append([]string(nil), cp.clues[w]...), c)
		}
	}
	return cp
}

// Stats returns the total word count and the number of distinct lengths.
func (l *Lexicon) Stats() (words, lengths int) {
	for _, b := range l.byLength {
		words += len(b)
	}
	return words, len(l.byLength)
}

func isValidWord(w string) bool {
	if len(w) < MinWordLength || len(w) > MaxWordLength {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return false
		}
	}
	return true
}
