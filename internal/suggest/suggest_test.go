package suggest_test

import (
	"reflect"
	"testing"

	"github.com/redlinehq/redline/internal/dictionary"
	"github.com/redlinehq/redline/internal/scan"
	"github.com/redlinehq/redline/internal/spell"
	"github.com/redlinehq/redline/internal/suggest"
)

func newBuilder(opts ...suggest.Option) *suggest.Builder {
	d := dictionary.New([]string{"the", "tea", "ten", "store", "went"})
	return suggest.NewBuilder(spell.New(d), opts...)
}

func TestBuild_Spelling(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	issues := []scan.Issue{
		{Kind: scan.Spelling, Offset: 10, Length: 3, Text: "teh"},
	}

	got := b.Build(issues, "we went to teh store")
	if len(got) != 1 {
		t.Fatalf("Build returned %d suggestions, want 1", len(got))
	}
	s := got[0]
	if s.ID != "spelling-10" {
		t.Errorf("ID = %q, want %q", s.ID, "spelling-10")
	}
	if s.Category != "spelling" {
		t.Errorf("Category = %q, want %q", s.Category, "spelling")
	}
	want := []string{"tea", "ten", "the"}
	if !reflect.DeepEqual(s.Alternatives, want) {
		t.Errorf("Alternatives = %v, want %v", s.Alternatives, want)
	}
	if s.Primary != "tea" {
		t.Errorf("Primary = %q, want %q", s.Primary, "tea")
	}
}

func TestBuild_SpellingLimit(t *testing.T) {
	t.Parallel()

	b := newBuilder(suggest.WithLimit(1))
	issues := []scan.Issue{
		{Kind: scan.Spelling, Offset: 0, Length: 3, Text: "teh"},
	}

	got := b.Build(issues, "teh")
	if len(got[0].Alternatives) != 1 {
		t.Errorf("Alternatives = %v, want exactly one", got[0].Alternatives)
	}
}

func TestBuild_RepeatedWord(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	issues := []scan.Issue{
		{Kind: scan.RepeatedWord, Offset: 0, Length: 7, Text: "The the"},
	}

	got := b.Build(issues, "The the tea")
	s := got[0]
	if want := []string{"The"}; !reflect.DeepEqual(s.Alternatives, want) {
		t.Errorf("Alternatives = %v, want %v", s.Alternatives, want)
	}
	if s.Primary != "The" {
		t.Errorf("Primary = %q, want %q", s.Primary, "The")
	}
	if s.Category != "grammar" {
		t.Errorf("Category = %q, want %q", s.Category, "grammar")
	}
}

func TestBuild_SentenceStart(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	issues := []scan.Issue{
		{Kind: scan.SentenceStart, Offset: 0, Length: 1, Text: "i"},
	}

	got := b.Build(issues, "i went")
	s := got[0]
	if want := []string{"I"}; !reflect.DeepEqual(s.Alternatives, want) {
		t.Errorf("Alternatives = %v, want %v", s.Alternatives, want)
	}
	if s.Category != "capitalization" {
		t.Errorf("Category = %q, want %q", s.Category, "capitalization")
	}
}

func TestBuild_Punctuation(t *testing.T) {
	t.Parallel()

	b := newBuilder()

	t.Run("missing terminator", func(t *testing.T) {
		t.Parallel()
		issues := []scan.Issue{
			{Kind: scan.Punctuation, Offset: 6, Length: 0, Text: ""},
		}
		s := b.Build(issues, "i went")[0]
		if want := []string{".", "?", "!"}; !reflect.DeepEqual(s.Alternatives, want) {
			t.Errorf("Alternatives = %v, want %v", s.Alternatives, want)
		}
		if s.Primary != "." {
			t.Errorf("Primary = %q, want %q", s.Primary, ".")
		}
		if s.Original != "" {
			t.Errorf("Original = %q, want empty", s.Original)
		}
	})

	t.Run("space run", func(t *testing.T) {
		t.Parallel()
		issues := []scan.Issue{
			{Kind: scan.Punctuation, Offset: 1, Length: 3, Text: "   "},
		}
		s := b.Build(issues, "a   b")[0]
		if want := []string{" "}; !reflect.DeepEqual(s.Alternatives, want) {
			t.Errorf("Alternatives = %v, want %v", s.Alternatives, want)
		}
	})
}

func TestBuild_Capitalization(t *testing.T) {
	t.Parallel()

	b := newBuilder()

	tests := []struct {
		text string
		want []string
	}{
		{"The", []string{"the", "THE"}},
		{"tEa", []string{"tea", "Tea", "TEA"}},
		{"THE", []string{"the", "The"}},
	}
	for _, tt := range tests {
		issues := []scan.Issue{
			{Kind: scan.Capitalization, Offset: 0, Length: len(tt.text), Text: tt.text},
		}
		s := b.Build(issues, tt.text)[0]
		if !reflect.DeepEqual(s.Alternatives, tt.want) {
			t.Errorf("Alternatives for %q = %v, want %v", tt.text, s.Alternatives, tt.want)
		}
		if s.Primary != tt.want[0] {
			t.Errorf("Primary for %q = %q, want %q", tt.text, s.Primary, tt.want[0])
		}
	}
}

func TestBuild_PreservesOrderAndEmpty(t *testing.T) {
	t.Parallel()

	b := newBuilder()

	if got := b.Build(nil, ""); got != nil {
		t.Errorf("Build(nil) = %v, want nil", got)
	}

	issues := []scan.Issue{
		{Kind: scan.SentenceStart, Offset: 0, Length: 1, Text: "i"},
		{Kind: scan.Spelling, Offset: 2, Length: 3, Text: "teh"},
		{Kind: scan.Punctuation, Offset: 5, Length: 0, Text: ""},
	}
	got := b.Build(issues, "i teh")
	if len(got) != len(issues) {
		t.Fatalf("Build returned %d suggestions, want %d", len(got), len(issues))
	}
	for i := range got {
		if got[i].Offset != issues[i].Offset {
			t.Errorf("suggestion %d offset = %d, want %d", i, got[i].Offset, issues[i].Offset)
		}
	}
}

func TestBuild_StableIDs(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	issues := []scan.Issue{
		{Kind: scan.Spelling, Offset: 4, Length: 3, Text: "teh"},
	}

	first := b.Build(issues, "aaa teh")
	second := b.Build(issues, "aaa teh")
	if first[0].ID != second[0].ID {
		t.Errorf("IDs differ across builds: %q vs %q", first[0].ID, second[0].ID)
	}
}
