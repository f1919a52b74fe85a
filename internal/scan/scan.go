// Package scan tokenises raw text and emits typed, offset-anchored
// issues: misspellings, casing problems, repeated words, missing
// terminal punctuation, and space runs.
//
// The checks are heuristic and regex-free. Overlapping issues from
// different checks are permitted (a mis-capitalised misspelled word
// yields two issues); de-duplication is a presentation concern.
//
// All offsets are byte offsets into the scanned UTF-8 string, and every
// issue satisfies Offset+Length <= len(text). Scanning is deterministic
// and idempotent: the same text always yields the same issues.
package scan

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/redlinehq/redline/internal/spell"
)

// Kind classifies a detected issue.
type Kind string

// Issue kinds, in the order their checks run. When two issues share an
// offset, this check order decides which comes first in the scan result.
const (
	Spelling       Kind = "spelling"
	RepeatedWord   Kind = "repeated-word"
	SentenceStart  Kind = "sentence-start"
	Punctuation    Kind = "punctuation"
	Capitalization Kind = "capitalization"
)

// Issue is one detected problem. Issues are recomputed wholesale on
// every scan and never mutated in place.
type Issue struct {
	// Kind classifies the problem.
	Kind Kind `json:"kind"`

	// Offset is the byte offset of the issue span in the scanned text.
	Offset int `json:"offset"`

	// Length is the byte length of the span. A zero length marks an
	// insertion point (the missing-terminator issue).
	Length int `json:"length"`

	// Text is the offending substring, exactly as it appears in the
	// scanned text. Empty for insertion points.
	Text string `json:"text"`

	// Message is a short human-readable description of the problem.
	Message string `json:"message"`
}

// Token is a maximal run of letters and apostrophes found while
// scanning text left to right. Tokens are transient, recomputed on
// every scan and never persisted.
type Token struct {
	Text   string
	Offset int
	Length int
}

// minSpellLength is the shortest token length (in runes) the spelling
// check flags. One- and two-letter tokens generate too much noise.
const minSpellLength = 3

// Scanner runs the rule checks against a shared spell checker. It is
// stateless apart from the read-only checker and safe for concurrent use.
type Scanner struct {
	checker *spell.Checker
}

// NewScanner returns a [Scanner] backed by checker. The checker is an
// explicit dependency rather than ambient state so tests can supply a
// small fixed dictionary.
func NewScanner(checker *spell.Checker) *Scanner {
	return &Scanner{checker: checker}
}

// Scan runs every check against text and returns the union of their
// issues ordered by ascending offset; issues at the same offset keep
// the fixed check order. Empty input yields no issues.
func (s *Scanner) Scan(text string) []Issue {
	if text == "" {
		return nil
	}

	tokens := Tokenize(text)

	var issues []Issue
	issues = append(issues, s.checkSpelling(tokens)...)
	issues = append(issues, checkRepeatedWords(text, tokens)...)
	issues = append(issues, checkSentenceStarts(text)...)
	issues = append(issues, checkTerminalPunctuation(text)...)
	issues = append(issues, s.checkCapitalization(text, tokens)...)
	issues = append(issues, checkSpaceRuns(text)...)

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Offset < issues[j].Offset
	})
	return issues
}

// Tokenize splits text into maximal runs of letters and apostrophes.
// Apostrophes are kept inside tokens ("don't") but stripped from the
// edges so quoted words ('hello') tokenise cleanly.
func Tokenize(text string) []Token {
	var tokens []Token
	start := -1
	for i, r := range text {
		if unicode.IsLetter(r) || r == '\'' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if tok, ok := trimApostrophes(text[start:i], start); ok {
				tokens = append(tokens, tok)
			}
			start = -1
		}
	}
	if start >= 0 {
		if tok, ok := trimApostrophes(text[start:], start); ok {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// trimApostrophes strips leading and trailing apostrophes from a raw
// token run, adjusting the offset. Runs without letters are dropped.
func trimApostrophes(raw string, offset int) (Token, bool) {
	trimmed := strings.TrimLeft(raw, "'")
	offset += len(raw) - len(trimmed)
	trimmed = strings.TrimRight(trimmed, "'")
	if trimmed == "" {
		return Token{}, false
	}
	return Token{Text: trimmed, Offset: offset, Length: len(trimmed)}, true
}

func (s *Scanner) checkSpelling(tokens []Token) []Issue {
	var issues []Issue
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok.Text) < minSpellLength {
			continue
		}
		if s.checker.Correct(tok.Text) {
			continue
		}
		issues = append(issues, Issue{
			Kind:    Spelling,
			Offset:  tok.Offset,
			Length:  tok.Length,
			Text:    tok.Text,
			Message: fmt.Sprintf("%q may be misspelled", tok.Text),
		})
	}
	return issues
}

// checkRepeatedWords flags the same token immediately repeated with
// only whitespace in between. The issue spans both occurrences plus the
// separating whitespace.
func checkRepeatedWords(text string, tokens []Token) []Issue {
	var issues []Issue
	for i := 1; i < len(tokens); i++ {
		prev, cur := tokens[i-1], tokens[i]
		if !strings.EqualFold(prev.Text, cur.Text) {
			continue
		}
		gap := text[prev.Offset+prev.Length : cur.Offset]
		if gap == "" || strings.TrimSpace(gap) != "" {
			continue
		}
		issues = append(issues, Issue{
			Kind:    RepeatedWord,
			Offset:  prev.Offset,
			Length:  cur.Offset + cur.Length - prev.Offset,
			Text:    text[prev.Offset : cur.Offset+cur.Length],
			Message: fmt.Sprintf("%q is repeated", prev.Text),
		})
	}
	return issues
}

// checkSentenceStarts splits text into rough sentences on terminal
// punctuation and flags sentences whose first non-space character is a
// lowercase letter.
func checkSentenceStarts(text string) []Issue {
	var issues []Issue
	start := 0
	flush := func(end int) {
		sentence := text[start:end]
		for i, r := range sentence {
			if r == ' ' {
				continue
			}
			if unicode.IsLower(r) {
				issues = append(issues, Issue{
					Kind:    SentenceStart,
					Offset:  start + i,
					Length:  utf8.RuneLen(r),
					Text:    string(r),
					Message: "sentence should start with a capital letter",
				})
			}
			break
		}
	}
	for i, r := range text {
		if isTerminal(r) {
			flush(i)
			start = i + 1
		}
	}
	if start < len(text) {
		flush(len(text))
	}
	return issues
}

// checkTerminalPunctuation emits a zero-length insertion-point issue at
// the end of the text when the trimmed text does not end in a sentence
// terminator. The suggestion layer turns it into an appended character.
func checkTerminalPunctuation(text string) []Issue {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	last, _ := utf8.DecodeLastRuneInString(trimmed)
	if isTerminal(last) {
		return nil
	}
	return []Issue{{
		Kind:    Punctuation,
		Offset:  len(text),
		Length:  0,
		Text:    "",
		Message: "text does not end with terminal punctuation",
	}}
}

// checkCapitalization flags casing problems in tokens that are not at a
// sentence start: internally mixed-case tokens, and capitalised tokens
// whose lowercase form is a known dictionary word.
func (s *Scanner) checkCapitalization(text string, tokens []Token) []Issue {
	var issues []Issue
	for _, tok := range tokens {
		if atSentenceStart(text, tok.Offset) {
			continue
		}
		switch {
		case mixedCase(tok.Text):
			issues = append(issues, Issue{
				Kind:    Capitalization,
				Offset:  tok.Offset,
				Length:  tok.Length,
				Text:    tok.Text,
				Message: fmt.Sprintf("%q has ambiguous casing", tok.Text),
			})
		case capitalized(tok.Text) && s.checker.Correct(strings.ToLower(tok.Text)):
			issues = append(issues, Issue{
				Kind:    Capitalization,
				Offset:  tok.Offset,
				Length:  tok.Length,
				Text:    tok.Text,
				Message: fmt.Sprintf("%q should be lowercase here", tok.Text),
			})
		}
	}
	return issues
}

// checkSpaceRuns flags every maximal run of two or more consecutive
// space characters.
func checkSpaceRuns(text string) []Issue {
	var issues []Issue
	i := 0
	for i < len(text) {
		if text[i] != ' ' {
			i++
			continue
		}
		j := i
		for j < len(text) && text[j] == ' ' {
			j++
		}
		if j-i >= 2 {
			issues = append(issues, Issue{
				Kind:    Punctuation,
				Offset:  i,
				Length:  j - i,
				Text:    text[i:j],
				Message: "multiple consecutive spaces",
			})
		}
		i = j
	}
	return issues
}

// atSentenceStart reports whether the token starting at offset opens a
// sentence: either nothing but spaces precede it, or the nearest
// preceding non-space character is a sentence terminator.
func atSentenceStart(text string, offset int) bool {
	for i := offset - 1; i >= 0; i-- {
		r, _ := utf8.DecodeLastRuneInString(text[:i+1])
		i -= utf8.RuneLen(r) - 1
		if unicode.IsSpace(r) {
			continue
		}
		return isTerminal(r)
	}
	return true
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// mixedCase reports whether s mixes cases internally: an uppercase
// letter after the first rune alongside lowercase letters, excluding
// all-caps tokens.
func mixedCase(s string) bool {
	var hasLower, hasInnerUpper bool
	for i, r := range s {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r) && i > 0:
			hasInnerUpper = true
		}
	}
	return hasLower && hasInnerUpper
}

// capitalized reports whether s starts with an uppercase letter and
// continues in lowercase only. Single uppercase letters ("I") count as
// all-caps, not capitalised.
func capitalized(s string) bool {
	first := true
	var rest bool
	for _, r := range s {
		if first {
			if !unicode.IsUpper(r) {
				return false
			}
			first = false
			continue
		}
		rest = true
		if unicode.IsUpper(r) {
			return false
		}
	}
	return rest
}
