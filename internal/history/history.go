// Package history keeps a bounded linear undo/redo log of full-text
// snapshots for one editing session.
//
// A History is deliberately not safe for concurrent use: the
// truncate-then-append and evict-then-decrement sequences are not
// atomic, so an instance must be confined to a single owner. The
// session layer serialises access with a mutex.
package history

import "time"

// DefaultCap is the default maximum number of retained snapshots.
const DefaultCap = 50

type entry struct {
	text string
	at   time.Time
}

// History is a linear undo/redo log with a hard cap on retained
// entries. The cursor indexes the current snapshot; -1 means empty.
type History struct {
	entries []entry
	cursor  int
	cap     int

	// now is swappable for tests.
	now func() time.Time
}

// New returns an empty History retaining at most cap snapshots.
// cap < 1 applies [DefaultCap].
func New(cap int) *History {
	if cap < 1 {
		cap = DefaultCap
	}
	return &History{cursor: -1, cap: cap, now: time.Now}
}

// Push records text as the new current snapshot. Any redo branch past
// the cursor is discarded, and when the log exceeds its cap the oldest
// snapshot is evicted.
func (h *History) Push(text string) {
	h.entries = append(h.entries[:h.cursor+1], entry{text: text, at: h.now()})
	h.cursor++
	if len(h.entries) > h.cap {
		h.entries = h.entries[1:]
		h.cursor--
	}
}

// Undo steps the cursor back one snapshot and returns it. It fails
// (returns "", false) when there is no earlier snapshot to return to.
func (h *History) Undo() (string, bool) {
	if !h.CanUndo() {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor].text, true
}

// Redo steps the cursor forward one snapshot and returns it. It fails
// when the cursor is already at the newest snapshot.
func (h *History) Redo() (string, bool) {
	if !h.CanRedo() {
		return "", false
	}
	h.cursor++
	return h.entries[h.cursor].text, true
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.entries)-1
}

// Current returns the snapshot at the cursor, or "", false when the
// history is empty.
func (h *History) Current() (string, bool) {
	if h.cursor < 0 {
		return "", false
	}
	return h.entries[h.cursor].text, true
}

// Clear drops every snapshot and resets the cursor.
func (h *History) Clear() {
	h.entries = nil
	h.cursor = -1
}

// Len returns the number of retained snapshots.
func (h *History) Len() int {
	return len(h.entries)
}
