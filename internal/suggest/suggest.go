// Package suggest converts raw scan issues into presentation-ready
// suggestions carrying replacement candidates and explanations.
package suggest

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/redlinehq/redline/internal/scan"
	"github.com/redlinehq/redline/internal/spell"
)

// Suggestion is the user-facing form of one [scan.Issue]. Suggestions
// are ephemeral (replaced wholesale on the next scan) and an accepted
// suggestion is consumed exactly once by the correction applier.
type Suggestion struct {
	// ID is stable within one scan pass: derived from kind and offset,
	// so re-scans of unmodified text produce the same id.
	ID string `json:"id"`

	// Category is a coarse grouping for UI filtering.
	Category string `json:"category"`

	// Original is the text covered by the issue span. Empty for
	// insertion points.
	Original string `json:"original"`

	// Primary is the preferred replacement. It equals Alternatives[0]
	// whenever Alternatives is non-empty.
	Primary string `json:"primary"`

	// Alternatives lists replacement candidates best-first. May be empty.
	Alternatives []string `json:"alternatives"`

	// Offset and Length locate the span in the scanned text.
	Offset int `json:"offset"`
	Length int `json:"length"`

	// Explanation is a deterministic human-readable rationale derived
	// from the issue kind and the offending substring.
	Explanation string `json:"explanation"`
}

// Builder maps issues to suggestions using the spell checker for
// replacement candidates. Safe for concurrent use.
type Builder struct {
	checker *spell.Checker
	limit   int
}

// Option is a functional option for [NewBuilder].
type Option func(*Builder)

// WithLimit caps the number of spelling alternatives per suggestion.
// Default: [spell.DefaultSuggestions].
func WithLimit(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.limit = n
		}
	}
}

// NewBuilder returns a [Builder] that draws spelling candidates from
// checker.
func NewBuilder(checker *spell.Checker, opts ...Option) *Builder {
	b := &Builder{checker: checker, limit: spell.DefaultSuggestions}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Build converts issues into suggestions, one per issue, preserving
// order. source must be the exact text the issues were scanned from.
func (b *Builder) Build(issues []scan.Issue, source string) []Suggestion {
	if len(issues) == 0 {
		return nil
	}
	out := make([]Suggestion, 0, len(issues))
	for _, is := range issues {
		out = append(out, b.build(is, source))
	}
	return out
}

func (b *Builder) build(is scan.Issue, source string) Suggestion {
	s := Suggestion{
		ID:       fmt.Sprintf("%s-%d", is.Kind, is.Offset),
		Category: category(is),
		Original: is.Text,
		Offset:   is.Offset,
		Length:   is.Length,
	}

	switch is.Kind {
	case scan.Spelling:
		s.Alternatives = b.checker.Suggest(is.Text, b.limit)
		s.Explanation = fmt.Sprintf("%q is not a recognised word", is.Text)

	case scan.RepeatedWord:
		word := is.Text
		if i := strings.IndexFunc(word, unicode.IsSpace); i >= 0 {
			word = word[:i]
		}
		s.Alternatives = []string{word}
		s.Explanation = fmt.Sprintf("%q appears twice in a row", word)

	case scan.SentenceStart:
		s.Alternatives = []string{strings.ToUpper(is.Text)}
		s.Explanation = fmt.Sprintf("sentence starts with lowercase %q", is.Text)

	case scan.Punctuation:
		if is.Length == 0 {
			s.Alternatives = []string{".", "?", "!"}
			s.Explanation = "sentence is missing terminal punctuation"
		} else {
			s.Alternatives = []string{" "}
			s.Explanation = "multiple spaces should collapse to one"
		}

	case scan.Capitalization:
		s.Alternatives = caseForms(is.Text)
		s.Explanation = fmt.Sprintf("%q has inconsistent capitalisation", is.Text)
	}

	s.Primary = is.Text
	if len(s.Alternatives) > 0 {
		s.Primary = s.Alternatives[0]
	}
	return s
}

// caseForms returns the candidate casings {lower, Proper, UPPER} minus
// the current form, de-duplicated, in that fixed order.
func caseForms(word string) []string {
	lower := strings.ToLower(word)
	upper := strings.ToUpper(word)
	proper := properCase(lower)

	var out []string
	for _, cand := range []string{lower, proper, upper} {
		if cand == word {
			continue
		}
		dup := false
		for _, seen := range out {
			if seen == cand {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, cand)
		}
	}
	return out
}

// properCase upper-cases the first rune of an already-lowercased word.
func properCase(lower string) string {
	r, size := utf8.DecodeRuneInString(lower)
	if size == 0 {
		return lower
	}
	return string(unicode.ToUpper(r)) + lower[size:]
}

// category maps an issue kind to its coarse UI grouping.
func category(is scan.Issue) string {
	switch is.Kind {
	case scan.Spelling:
		return "spelling"
	case scan.RepeatedWord:
		return "grammar"
	case scan.SentenceStart, scan.Capitalization:
		return "capitalization"
	default:
		return "punctuation"
	}
}
