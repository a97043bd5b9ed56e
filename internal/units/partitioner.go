// Package units partitions the deduplicated vocabulary into fixed-size
// learning units.
//
// Partitioning uses proportional cross-volume interleaving: within each
// selected volume, words are sorted by ascending length with a
// reversed-string tie-break (reproducible without alphabetical
// clustering), then one word is drawn from each volume group per slot
// until every group is exhausted. The interleaved sequence is chunked
// into units of 20; the last unit may be shorter.
package units

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/holavoca/internal/vocab"
)

// Size is the number of words per unit.
const Size = 20

// ReviewUnitID marks a mistake-review session. Review sessions never
// count toward unit completion.
const ReviewUnitID = "review"

// Unit is a named, ordered batch of vocabulary presented as one lesson.
type Unit struct {
	ID    string
	Title string
	Words []vocab.Entry
}

// IsReview reports whether the unit id names a review session.
func IsReview(unitID string) bool {
	return unitID == ReviewUnitID
}

// Build partitions the selected volumes into units. The result is
// deterministic: the same sources and corpus always produce the same
// unit ids, ordering and membership. An empty filtered corpus yields
// zero units.
func Build(store *vocab.Store, sources []string) []Unit {
	deduped := store.FilterBySources(sources)

	// Group by volume, keeping the caller's source order for the
	// interleave cycle.
	groups := make(map[string][]vocab.Entry, len(sources))
	for _, e := range deduped {
		groups[e.Source] = append(groups[e.Source], e)
	}
	for _, g := range groups {
		sortByDifficulty(g)
	}

	// Round-robin one word per volume per slot.
	maxLen := 0
	for _, g := range groups {
		if len(g) > maxLen {
			maxLen = len(g)
		}
	}
	interleaved := make([]vocab.Entry, 0, len(deduped))
	for i := 0; i < maxLen; i++ {
		for _, src := range sources {
			if g := groups[src]; i < len(g) {
				interleaved = append(interleaved, g[i])
			}
		}
	}

	// Chunk into fixed-size units.
	var out []Unit
	for start := 0; start < len(interleaved); start += Size {
		end := min(start+Size, len(interleaved))
		n := len(out) + 1
		out = append(out, Unit{
			ID:    fmt.Sprintf("unit-%d", n),
			Title: fmt.Sprintf("Unit %d", n),
			Words: interleaved[start:end],
		})
	}
	return out
}

// Find returns the unit with the given id, or false when out of range.
func Find(all []Unit, id string) (Unit, bool) {
	for _, u := range all {
		if u.ID == id {
			return u, true
		}
	}
	return Unit{}, false
}

// sortByDifficulty orders a volume group by ascending word length in
// runes (accented words count one per letter), then by comparing the
// reversed lower-cased words.
func sortByDifficulty(g []vocab.Entry) {
	sort.SliceStable(g, func(i, j int) bool {
		a := strings.ToLower(g[i].Word)
		b := strings.ToLower(g[j].Word)
		la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
		if la != lb {
			return la < lb
		}
		return reverse(a) < reverse(b)
	})
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
