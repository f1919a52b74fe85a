package worddiff_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/redlinehq/redline/internal/worddiff"
)

func TestDiff_Insertion(t *testing.T) {
	t.Parallel()

	got := worddiff.Diff("I like cats", "I really like cats")
	want := []worddiff.Segment{
		{Op: worddiff.Same, Text: "I "},
		{Op: worddiff.Added, Text: "really "},
		{Op: worddiff.Same, Text: "like cats"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Diff = %+v, want %+v", got, want)
	}
}

func TestDiff_Removal(t *testing.T) {
	t.Parallel()

	got := worddiff.Diff("the the tea", "the tea")
	want := []worddiff.Segment{
		{Op: worddiff.Same, Text: "the "},
		{Op: worddiff.Removed, Text: "the "},
		{Op: worddiff.Same, Text: "tea"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Diff = %+v, want %+v", got, want)
	}
}

func TestDiff_Substitution(t *testing.T) {
	t.Parallel()

	got := worddiff.Diff("teh cat", "the cat")
	want := []worddiff.Segment{
		{Op: worddiff.Removed, Text: "teh"},
		{Op: worddiff.Added, Text: "the"},
		{Op: worddiff.Same, Text: " cat"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Diff = %+v, want %+v", got, want)
	}
}

func TestDiff_Identical(t *testing.T) {
	t.Parallel()

	got := worddiff.Diff("no change here", "no change here")
	want := []worddiff.Segment{
		{Op: worddiff.Same, Text: "no change here"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Diff = %+v, want %+v", got, want)
	}
}

func TestDiff_Empty(t *testing.T) {
	t.Parallel()

	if got := worddiff.Diff("", ""); got != nil {
		t.Errorf("Diff of two empty strings = %+v, want nil", got)
	}
	if got, want := worddiff.Diff("", "hi"), []worddiff.Segment{{Op: worddiff.Added, Text: "hi"}}; !reflect.DeepEqual(got, want) {
		t.Errorf("Diff(\"\", \"hi\") = %+v, want %+v", got, want)
	}
	if got, want := worddiff.Diff("hi", ""), []worddiff.Segment{{Op: worddiff.Removed, Text: "hi"}}; !reflect.DeepEqual(got, want) {
		t.Errorf("Diff(\"hi\", \"\") = %+v, want %+v", got, want)
	}
}

func TestDiff_WindowOption(t *testing.T) {
	t.Parallel()

	// Matching "b" sits four tokens ahead in the corrected stream, so
	// the default window resynchronises on it but a window of 2 gives up
	// and falls back to substitution.
	original := "a b"
	corrected := "a x y b"

	got := worddiff.Diff(original, corrected)
	want := []worddiff.Segment{
		{Op: worddiff.Same, Text: "a "},
		{Op: worddiff.Added, Text: "x y "},
		{Op: worddiff.Same, Text: "b"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Diff = %+v, want %+v", got, want)
	}

	got = worddiff.Diff(original, corrected, worddiff.WithWindow(2))
	want = []worddiff.Segment{
		{Op: worddiff.Same, Text: "a "},
		{Op: worddiff.Removed, Text: "b"},
		{Op: worddiff.Added, Text: "x y b"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Diff(window=2) = %+v, want %+v", got, want)
	}
}

var diffPairs = []struct {
	original, corrected string
}{
	{"I like cats", "I really like cats"},
	{"the the tea", "the tea"},
	{"teh cat", "the cat"},
	{"i went too teh store", "I went to the store."},
	{"a b", "a x y b"},
	{"", "something new"},
	{"all gone", ""},
	{"tabs\tand  spaces", "tabs and spaces"},
	{"same", "same"},
}

func TestDiff_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, p := range diffPairs {
		segs := worddiff.Diff(p.original, p.corrected)

		var orig, corr strings.Builder
		for _, seg := range segs {
			switch seg.Op {
			case worddiff.Same:
				orig.WriteString(seg.Text)
				corr.WriteString(seg.Text)
			case worddiff.Removed:
				orig.WriteString(seg.Text)
			case worddiff.Added:
				corr.WriteString(seg.Text)
			}
		}
		if orig.String() != p.original {
			t.Errorf("Diff(%q, %q): Same+Removed = %q, want original", p.original, p.corrected, orig.String())
		}
		if corr.String() != p.corrected {
			t.Errorf("Diff(%q, %q): Same+Added = %q, want corrected", p.original, p.corrected, corr.String())
		}
	}
}

func TestDiff_NoAdjacentEqualOps(t *testing.T) {
	t.Parallel()

	for _, p := range diffPairs {
		segs := worddiff.Diff(p.original, p.corrected)
		for i := 1; i < len(segs); i++ {
			if segs[i].Op == segs[i-1].Op {
				t.Errorf("Diff(%q, %q): adjacent segments share op %v: %+v", p.original, p.corrected, segs[i].Op, segs)
			}
		}
		for _, seg := range segs {
			if seg.Text == "" {
				t.Errorf("Diff(%q, %q): empty segment in %+v", p.original, p.corrected, segs)
			}
		}
	}
}

func TestOp_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		op   worddiff.Op
		want string
	}{
		{worddiff.Same, "same"},
		{worddiff.Added, "added"},
		{worddiff.Removed, "removed"},
		{worddiff.Op(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestOp_MarshalJSON(t *testing.T) {
	t.Parallel()

	b, err := worddiff.Added.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if got, want := string(b), `"added"`; got != want {
		t.Errorf("MarshalJSON = %s, want %s", got, want)
	}
}
