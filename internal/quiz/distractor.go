package quiz

import (
	"math/rand/v2"

	"github.com/abhisek/holavoca/internal/vocab"
)

// Pick draws up to count entries at random, uniform and without
// replacement, from pool after removing any entry whose word is in
// exclude. When fewer eligible entries remain it returns what is
// available; it never errors and never pads.
//
// Randomness is true runtime randomness: sessions are not reproducible.
func Pick(count int, pool []vocab.Entry, exclude map[string]bool) []vocab.Entry {
	eligible := make([]vocab.Entry, 0, len(pool))
	for _, e := range pool {
		if exclude[e.Word] {
			continue
		}
		eligible = append(eligible, e)
	}
	rand.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	if count > len(eligible) {
		count = len(eligible)
	}
	return eligible[:count]
}

// distractorValues renders up to count distinct wrong option strings
// from pool, skipping the current word and any value colliding with the
// correct answer. Two corpus entries may share a meaning, so collisions
// are filtered on the rendered string, not just the word.
func distractorValues(count int, pool []vocab.Entry, currentWord, correct string, render func(vocab.Entry) string) []string {
	shuffled := Pick(len(pool), pool, map[string]bool{currentWord: true})
	seen := map[string]bool{correct: true}
	var out []string
	for _, e := range shuffled {
		v := render(e)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
		if len(out) == count {
			break
		}
	}
	return out
}
