// Package engine composes the spell checker, issue scanner, suggestion
// builder, correction applier, and word differ into the single façade
// the HTTP server and CLI consume.
//
// Every operation is a synchronous pure function over its inputs; the
// only shared state is the frozen dictionary, so an Engine is safe for
// concurrent use.
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/redlinehq/redline/internal/apply"
	"github.com/redlinehq/redline/internal/dictionary"
	"github.com/redlinehq/redline/internal/observe"
	"github.com/redlinehq/redline/internal/scan"
	"github.com/redlinehq/redline/internal/spell"
	"github.com/redlinehq/redline/internal/suggest"
	"github.com/redlinehq/redline/internal/worddiff"
)

// Option is a functional option for [New].
type Option func(*Engine)

// WithSuggestionLimit caps the number of spelling alternatives per
// suggestion. Default: [spell.DefaultSuggestions].
func WithSuggestionLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.limit = n
		}
	}
}

// WithDiffWindow sets the word-diff lookahead window in tokens.
// Default: [worddiff.DefaultWindow].
func WithDiffWindow(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.window = n
		}
	}
}

// WithMetrics attaches observability instruments. When nil (the
// default), nothing is recorded.
func WithMetrics(m *observe.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// Engine is the correction engine façade.
type Engine struct {
	checker *spell.Checker
	scanner *scan.Scanner
	builder *suggest.Builder
	limit   int
	window  int
	metrics *observe.Metrics
}

// New builds an [Engine] over the given dictionary. The dictionary is
// threaded in explicitly rather than looked up ambiently so tests can
// supply small fixed word lists.
func New(dict *dictionary.Dictionary, opts ...Option) *Engine {
	e := &Engine{
		limit:  spell.DefaultSuggestions,
		window: worddiff.DefaultWindow,
	}
	for _, o := range opts {
		o(e)
	}
	e.checker = spell.New(dict)
	e.scanner = scan.NewScanner(e.checker)
	e.builder = suggest.NewBuilder(e.checker, suggest.WithLimit(e.limit))
	return e
}

// Check scans text and returns presentation-ready suggestions ordered
// by ascending offset. An empty result means the text is clean.
func (e *Engine) Check(ctx context.Context, text string) []suggest.Suggestion {
	start := time.Now()
	issues := e.scanner.Scan(text)
	suggestions := e.builder.Build(issues, text)

	if e.metrics != nil {
		e.metrics.ScanDuration.Record(ctx, time.Since(start).Seconds())
		counts := make(map[scan.Kind]int64, len(issues))
		for _, is := range issues {
			counts[is.Kind]++
		}
		for kind, n := range counts {
			e.metrics.RecordIssues(ctx, string(kind), n)
		}
	}
	return suggestions
}

// Apply splices the accepted corrections onto text. Overlapping or
// out-of-range spans reject the whole set; see [apply.Apply].
func (e *Engine) Apply(ctx context.Context, text string, corrections []apply.Correction) (string, error) {
	out, err := apply.Apply(text, corrections)
	if e.metrics != nil {
		switch {
		case err == nil:
			e.metrics.CorrectionsApplied.Add(ctx, int64(len(corrections)))
		case errors.Is(err, apply.ErrOverlapping):
			e.metrics.RecordApplyFailure(ctx, "overlap")
		case errors.Is(err, apply.ErrOutOfRange):
			e.metrics.RecordApplyFailure(ctx, "out_of_range")
		}
	}
	return out, err
}

// Diff computes the word-level diff between an original and a
// corrected text.
func (e *Engine) Diff(ctx context.Context, original, corrected string) []worddiff.Segment {
	start := time.Now()
	segs := worddiff.Diff(original, corrected, worddiff.WithWindow(e.window))
	if e.metrics != nil {
		e.metrics.DiffDuration.Record(ctx, time.Since(start).Seconds())
	}
	return segs
}

// Checker exposes the underlying spell checker for direct word queries.
func (e *Engine) Checker() *spell.Checker {
	return e.checker
}
