// Package worddiff computes a word-level diff between an original and
// a corrected string for before/after visualisation.
//
// The algorithm is a greedy two-cursor walk with a small fixed
// lookahead window, not an LCS: it trades strict minimality for
// near-linear running time and a trivially predictable output. Both
// strings are tokenised into alternating word and whitespace runs with
// the whitespace retained verbatim, which gives the round-trip
// guarantee: concatenating the Same and Removed segments reproduces the
// original exactly, and Same plus Added reproduces the corrected text.
package worddiff

import "unicode"

// Op classifies a diff segment.
type Op int

const (
	// Same text present in both strings.
	Same Op = iota
	// Added text present only in the corrected string.
	Added
	// Removed text present only in the original string.
	Removed
)

// String returns the lowercase name of the op ("same", "added",
// "removed").
func (op Op) String() string {
	switch op {
	case Same:
		return "same"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the op as its string name so API responses read
// {"op":"added",...} rather than bare integers.
func (op Op) MarshalJSON() ([]byte, error) {
	return []byte(`"` + op.String() + `"`), nil
}

// Segment is one classified run of text. Adjacent segments in a diff
// result never share the same op; equal-op runs are coalesced.
type Segment struct {
	Op   Op     `json:"op"`
	Text string `json:"text"`
}

// DefaultWindow is the default lookahead window, in tokens. The value
// was never tuned in anger; it is exposed as an option rather than
// hard-coded for that reason.
const DefaultWindow = 4

// Option is a functional option for [Diff].
type Option func(*differ)

// WithWindow sets the lookahead window in tokens. Values below 1 keep
// the default.
func WithWindow(n int) Option {
	return func(d *differ) {
		if n >= 1 {
			d.window = n
		}
	}
}

type differ struct {
	window int
}

// Diff returns the ordered segments describing how corrected differs
// from original. Deterministic for a fixed window; two empty inputs
// yield no segments.
func Diff(original, corrected string, opts ...Option) []Segment {
	d := &differ{window: DefaultWindow}
	for _, o := range opts {
		o(d)
	}

	a := tokenize(original)
	b := tokenize(corrected)

	var segs []Segment
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] == b[j] {
			segs = emit(segs, Same, a[i])
			i++
			j++
			continue
		}

		// Insertion: the current original token reappears a few tokens
		// ahead in the corrected stream.
		if k := lookahead(b, a[i], j+1, d.window); k >= 0 {
			for ; j < k; j++ {
				segs = emit(segs, Added, b[j])
			}
			continue
		}

		// Deletion: the current corrected token reappears a few tokens
		// ahead in the original stream.
		if k := lookahead(a, b[j], i+1, d.window); k >= 0 {
			for ; i < k; i++ {
				segs = emit(segs, Removed, a[i])
			}
			continue
		}

		// Direct substitution.
		segs = emit(segs, Removed, a[i])
		segs = emit(segs, Added, b[j])
		i++
		j++
	}
	for ; i < len(a); i++ {
		segs = emit(segs, Removed, a[i])
	}
	for ; j < len(b); j++ {
		segs = emit(segs, Added, b[j])
	}
	return segs
}

// lookahead scans tokens[from : from+window] for target and returns its
// index, or -1.
func lookahead(tokens []string, target string, from, window int) int {
	end := from + window
	if end > len(tokens) {
		end = len(tokens)
	}
	for k := from; k < end; k++ {
		if tokens[k] == target {
			return k
		}
	}
	return -1
}

// emit appends text under op, coalescing with the previous segment when
// the op matches.
func emit(segs []Segment, op Op, text string) []Segment {
	if n := len(segs); n > 0 && segs[n-1].Op == op {
		segs[n-1].Text += text
		return segs
	}
	return append(segs, Segment{Op: op, Text: text})
}

// tokenize splits s into alternating runs of non-whitespace and
// whitespace, each kept verbatim so concatenating the tokens restores s.
func tokenize(s string) []string {
	var tokens []string
	start := 0
	var inSpace bool
	for i, r := range s {
		space := unicode.IsSpace(r)
		if i == 0 {
			inSpace = space
			continue
		}
		if space != inSpace {
			tokens = append(tokens, s[start:i])
			start = i
			inSpace = space
		}
	}
	if len(s) > 0 {
		tokens = append(tokens, s[start:])
	}
	return tokens
}
