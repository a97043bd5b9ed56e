// Package progress holds the learner's durable gamification state and
// reconciles it between local storage and the cloud document store.
package progress

import (
	"maps"
	"slices"
	"time"
)

// DateLayout is the calendar-day format used for LastStudyDate.
const DateLayout = "2006-01-02"

// Snapshot is the durable learner record. Two copies may exist
// concurrently (one local, one remote) and are reconciled with Merge.
type Snapshot struct {
	XP     int `json:"xp"`
	Gems   int `json:"gems"`
	Streak int `json:"streak"`

	// LastStudyDate is the last calendar day with a completed session,
	// in DateLayout format. Empty means never studied.
	LastStudyDate string `json:"lastStudyDate,omitempty"`

	// CompletedUnits holds the ids of passed units, sorted.
	CompletedUnits []string `json:"completedUnits,omitempty"`

	// Mistakes maps a word to its wrong-answer tally (≥1). A nil map
	// means the field is absent from the document, which matters for
	// merge semantics; an empty non-nil map means explicitly cleared.
	Mistakes map[string]int `json:"mistakes,omitempty"`
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.CompletedUnits = slices.Clone(s.CompletedUnits)
	if s.Mistakes != nil {
		out.Mistakes = maps.Clone(s.Mistakes)
	}
	return out
}

// HasCompleted reports whether the unit id is in the completed set.
func (s Snapshot) HasCompleted(unitID string) bool {
	return slices.Contains(s.CompletedUnits, unitID)
}

// MistakeWords returns the mistake words sorted by descending tally,
// ties broken alphabetically. This is the review-list order.
func (s Snapshot) MistakeWords() []string {
	words := slices.Collect(maps.Keys(s.Mistakes))
	slices.SortFunc(words, func(a, b string) int {
		if d := s.Mistakes[b] - s.Mistakes[a]; d != 0 {
			return d
		}
		return cmpString(a, b)
	})
	return words
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// laterDate returns the chronologically later of two DateLayout dates.
// An absent (empty or unparseable) date is treated as earliest.
func laterDate(a, b string) string {
	ta, errA := time.Parse(DateLayout, a)
	tb, errB := time.Parse(DateLayout, b)
	switch {
	case errA != nil:
		return b
	case errB != nil:
		return a
	case tb.After(ta):
		return b
	}
	return a
}
