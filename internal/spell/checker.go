// Package spell implements the dictionary-backed correctness oracle and
// ranked suggestion generator used by the issue scanner.
//
// Candidate ranking combines two signals from the matchr primitives:
//
//  1. Damerau-Levenshtein distance: dictionary words within distance 2
//     of the input are candidates. Transpositions count as a single
//     edit, so "teh" sits one edit from "the".
//
//  2. Double Metaphone: words that share a phonetic code with the input
//     are admitted up to distance 3, catching misspellings that sound
//     right but drift further in spelling (e.g. "foneme" → "phoneme").
//
// Candidates are ordered by ascending distance; ties are broken by
// dictionary (lexicographic) order, which makes the output fully
// deterministic for a fixed dictionary.
package spell

import (
	"sort"
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"

	"github.com/redlinehq/redline/internal/dictionary"
)

const (
	// maxDistance is the edit-distance ceiling for ordinary candidates.
	maxDistance = 2

	// maxPhoneticDistance is the relaxed ceiling for candidates that
	// share a Double Metaphone code with the input.
	maxPhoneticDistance = 3

	// DefaultSuggestions is the default cap on Suggest results.
	DefaultSuggestions = 3
)

// Checker answers word-correctness queries against a frozen
// [dictionary.Dictionary]. It holds no mutable state and is safe for
// concurrent use.
type Checker struct {
	dict *dictionary.Dictionary
}

// New returns a [Checker] backed by dict. The dictionary is shared, not
// copied, and must not be mutated after construction.
func New(dict *dictionary.Dictionary) *Checker {
	return &Checker{dict: dict}
}

// Correct reports whether word is a known dictionary word, ignoring
// case and surrounding whitespace. Inputs without any letter (including
// the empty string) are never correct. Correct never fails for any
// input string.
func (c *Checker) Correct(word string) bool {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" || !hasLetter(w) {
		return false
	}
	return c.dict.Contains(w)
}

// Suggest returns up to max candidate corrections for word, best match
// first. An empty or letter-free input yields no suggestions, as does a
// word with no dictionary neighbour within the distance ceilings.
// max <= 0 applies [DefaultSuggestions].
func (c *Checker) Suggest(word string, max int) []string {
	if max <= 0 {
		max = DefaultSuggestions
	}
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" || !hasLetter(w) {
		return nil
	}

	primary, secondary := matchr.DoubleMetaphone(w)

	type candidate struct {
		word string
		dist int
	}
	var candidates []candidate

	for _, dw := range c.dict.Words() {
		if delta := len(dw) - len(w); delta > maxPhoneticDistance || -delta > maxPhoneticDistance {
			continue
		}
		dist := matchr.DamerauLevenshtein(w, dw)
		if dist > maxPhoneticDistance {
			continue
		}
		if dist > maxDistance && !sharesCode(dw, primary, secondary) {
			continue
		}
		candidates = append(candidates, candidate{word: dw, dist: dist})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].word < candidates[j].word
	})

	if len(candidates) > max {
		candidates = candidates[:max]
	}
	out := make([]string, len(candidates))
	for i, cand := range candidates {
		out[i] = cand.word
	}
	return out
}

// sharesCode reports whether word's Double Metaphone codes overlap with
// the given primary/secondary codes.
func sharesCode(word, primary, secondary string) bool {
	if primary == "" && secondary == "" {
		return false
	}
	p, s := matchr.DoubleMetaphone(word)
	return (p != "" && (p == primary || p == secondary)) ||
		(s != "" && (s == primary || s == secondary))
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
