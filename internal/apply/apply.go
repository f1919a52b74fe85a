// Package apply splices accepted corrections back onto the source text
// they were computed against.
//
// Corrections are applied highest offset first. That ordering is the
// load-bearing invariant of this package: once a replacement changes
// the text length, every offset above the splice point is stale, but
// every offset below it is untouched. Working from the top down means
// no correction ever sees a shifted offset. Applying low-to-high
// without re-basing would silently corrupt the text at every offset
// after the first length-changing replacement.
package apply

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrOverlapping is returned when two corrections intersect or
	// share an offset. The caller must resolve conflicts before
	// applying, typically by re-scanning after each acceptance.
	ErrOverlapping = errors.New("apply: overlapping corrections")

	// ErrOutOfRange is returned when a correction span exceeds the
	// bounds of the source text.
	ErrOutOfRange = errors.New("apply: correction out of range")
)

// Correction is one accepted replacement: the span [Offset,
// Offset+Length) in the original source text is replaced by
// Replacement. A zero Length inserts at Offset.
type Correction struct {
	Offset      int    `json:"offset"`
	Length      int    `json:"length"`
	Replacement string `json:"replacement"`
}

// Apply returns source with all corrections applied. Every span must
// lie within source and the spans must be pairwise disjoint; violations
// reject the whole set with [ErrOutOfRange] or [ErrOverlapping] before
// any mutation. Because sorting happens internally, the result is
// identical regardless of the input order of corrections.
func Apply(source string, corrections []Correction) (string, error) {
	sorted, err := validate(source, corrections)
	if err != nil {
		return "", err
	}
	return splice(source, sorted), nil
}

// ApplyLenient is the documented best-effort variant: out-of-bounds
// corrections are skipped and overlapping spans are applied in
// descending offset order, letting the lower-offset splice win. Use
// only when the caller explicitly tolerates conflicting input; Apply
// is the default.
func ApplyLenient(source string, corrections []Correction) string {
	kept := make([]Correction, 0, len(corrections))
	for _, c := range corrections {
		if c.Offset < 0 || c.Length < 0 || c.Offset+c.Length > len(source) {
			continue
		}
		kept = append(kept, c)
	}
	sortDescending(kept)
	return splice(source, kept)
}

// validate checks bounds and disjointness and returns the corrections
// sorted in descending offset order, ready for splicing.
func validate(source string, corrections []Correction) ([]Correction, error) {
	sorted := make([]Correction, len(corrections))
	copy(sorted, corrections)

	for _, c := range sorted {
		if c.Offset < 0 || c.Length < 0 || c.Offset+c.Length > len(source) {
			return nil, fmt.Errorf("%w: span [%d,%d) in %d-byte text",
				ErrOutOfRange, c.Offset, c.Offset+c.Length, len(source))
		}
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		// Equal offsets always conflict: two splices at the same
		// insertion point have no well-defined order.
		if prev.Offset == cur.Offset || prev.Offset+prev.Length > cur.Offset {
			return nil, fmt.Errorf("%w: [%d,%d) and [%d,%d)",
				ErrOverlapping,
				prev.Offset, prev.Offset+prev.Length,
				cur.Offset, cur.Offset+cur.Length)
		}
	}

	sortDescending(sorted)
	return sorted, nil
}

// splice applies corrections already sorted in descending offset order.
func splice(source string, sorted []Correction) string {
	out := source
	for _, c := range sorted {
		out = out[:c.Offset] + c.Replacement + out[c.Offset+c.Length:]
	}
	return out
}

func sortDescending(cs []Correction) {
	sort.Slice(cs, func(i, j int) bool {
		return cs[i].Offset > cs[j].Offset
	})
}
