package vocab

import (
	"fmt"
	"slices"
)

// Store holds the loaded vocabulary corpus and answers read-only queries
// over it. The corpus never changes after construction.
type Store struct {
	entries []Entry
}

// NewStore creates a Store over the given entries.
func NewStore(entries []Entry) *Store {
	return &Store{entries: entries}
}

// Open loads the embedded corpus into a new Store.
func Open() (*Store, error) {
	entries, err := LoadCorpus()
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return NewStore(entries), nil
}

// All returns every corpus entry regardless of source volume.
func (s *Store) All() []Entry {
	return slices.Clone(s.entries)
}

// Sources returns the distinct source volumes present in the corpus,
// in first-appearance order.
func (s *Store) Sources() []string {
	var out []string
	for _, e := range s.entries {
		if !slices.Contains(out, e.Source) {
			out = append(out, e.Source)
		}
	}
	return out
}

// BySources returns all entries whose source volume is in sources,
// without deduplication, preserving corpus order.
func (s *Store) BySources(sources []string) []Entry {
	var out []Entry
	for _, e := range s.entries {
		if slices.Contains(sources, e.Source) {
			out = append(out, e)
		}
	}
	return out
}

// FilterBySources returns the entries for the selected source volumes,
// deduplicated by the lower-cased trimmed word. The first occurrence of
// each key wins; input order is otherwise preserved.
func (s *Store) FilterBySources(sources []string) []Entry {
	seen := make(map[string]bool)
	var out []Entry
	for _, e := range s.BySources(sources) {
		key := e.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}

// TotalWordCount returns the raw (pre-dedup) entry count for the
// selected source volumes.
func (s *Store) TotalWordCount(sources []string) int {
	return len(s.BySources(sources))
}

// FindByWords returns the corpus entries whose word matches one of the
// given surface forms. Words with no corpus entry are skipped.
func (s *Store) FindByWords(words []string) []Entry {
	var out []Entry
	for _, e := range s.entries {
		if slices.Contains(words, e.Word) {
			out = append(out, e)
		}
	}
	return out
}
