// Package dictionary provides the frozen word list that backs the spell
// checker. The default list is embedded into the binary and parsed once;
// a [Dictionary] is read-only after construction and therefore safe for
// unsynchronised concurrent reads.
package dictionary

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

//go:embed data/words.txt
var embedded embed.FS

// Dictionary is an immutable, case-insensitive word set. It keeps a
// sorted view of its contents so suggestion ranking can break ties in
// stable dictionary order.
type Dictionary struct {
	words  map[string]struct{}
	sorted []string
}

// Load parses the embedded default word list. Blank lines and lines
// starting with '#' are skipped.
func Load() (*Dictionary, error) {
	f, err := embedded.Open("data/words.txt")
	if err != nil {
		return nil, fmt.Errorf("dictionary: open embedded word list: %w", err)
	}
	defer f.Close()

	d, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("dictionary: read embedded word list: %w", err)
	}
	return d, nil
}

// LoadFile parses a word list file with the same format as the
// embedded list. Used when a config overrides the default dictionary.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: open %q: %w", path, err)
	}
	defer f.Close()

	d, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("dictionary: read %q: %w", path, err)
	}
	return d, nil
}

// parse reads one word per line from r, skipping blanks and comments.
func parse(r io.Reader) (*Dictionary, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return New(words), nil
}

// New builds a [Dictionary] from an explicit word list. Words are
// lowercased and de-duplicated. Useful for tests and custom dictionaries.
func New(words []string) *Dictionary {
	d := &Dictionary{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := d.words[w]; ok {
			continue
		}
		d.words[w] = struct{}{}
		d.sorted = append(d.sorted, w)
	}
	sort.Strings(d.sorted)
	return d
}

// Contains reports whether word is in the dictionary, ignoring case.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.words[strings.ToLower(word)]
	return ok
}

// Words returns the dictionary contents in sorted order. The returned
// slice is shared; callers must not modify it.
func (d *Dictionary) Words() []string {
	return d.sorted
}

// Len returns the number of distinct words in the dictionary.
func (d *Dictionary) Len() int {
	return len(d.sorted)
}
