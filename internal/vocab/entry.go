package vocab

import "strings"

// Gender identifies a grammatical gender for gendered vocabulary entries.
type Gender string

const (
	Masculine Gender = "m"
	Feminine  Gender = "f"
)

// Label returns the answer-option label used in gender quizzes.
func (g Gender) Label() string {
	if g == Feminine {
		return "Feminine"
	}
	return "Masculine"
}

// Entry is a single immutable vocabulary record from the corpus.
type Entry struct {
	// Word is the Spanish surface form. It may encode both gendered
	// forms, e.g. "abogado/a", "actor/actriz" or "escritor(a)".
	Word string `json:"word"`

	// GrammarInfo is a free-form gender/grammar marker such as
	// "m", "f" or "m/f".
	GrammarInfo string `json:"grammar"`

	// Meaning is the Korean translation.
	Meaning string `json:"meaning"`

	// Source identifies the textbook volume the entry came from.
	Source string `json:"source"`

	// Example is an optional example sentence.
	Example string `json:"example,omitempty"`
}

// Key returns the deduplication key: the word lower-cased and trimmed.
func (e Entry) Key() string {
	return strings.ToLower(strings.TrimSpace(e.Word))
}

// SupportedGenders returns the genders this entry can be quizzed on.
// A word with a dual-form marker ("/" or "(") supports both; otherwise
// the GrammarInfo field decides. Entries without gender information
// return nil.
func (e Entry) SupportedGenders() []Gender {
	if strings.ContainsAny(e.Word, "/(") {
		return []Gender{Masculine, Feminine}
	}
	info := strings.ToLower(e.GrammarInfo)
	hasM := strings.Contains(info, "m")
	hasF := strings.Contains(info, "f")
	switch {
	case hasM && hasF:
		return []Gender{Masculine, Feminine}
	case hasM:
		return []Gender{Masculine}
	case hasF:
		return []Gender{Feminine}
	}
	return nil
}

// HasGenderInfo reports whether the entry carries any gender marker.
func (e Entry) HasGenderInfo() bool {
	return len(e.SupportedGenders()) > 0
}

// GenderedForm resolves the surface form of word for the given gender.
//
// Supported encodings:
//   - "base/suffix": a single-character suffix replaces a trailing "o"
//     of the base for the feminine ("abogado/a" → "abogada"); longer
//     second segments are complete words ("actor/actriz" → "actriz").
//   - "base(suffix)": masculine is the base, feminine appends the
//     suffix ("escritor(a)" → "escritora").
//
// Words with neither marker are returned unchanged for both genders.
// Never errors.
func GenderedForm(word string, gender Gender) string {
	if gender == Masculine {
		if i := strings.Index(word, "/"); i >= 0 {
			return word[:i]
		}
		if i := strings.Index(word, "("); i >= 0 {
			return word[:i]
		}
		return word
	}

	if i := strings.Index(word, "/"); i >= 0 {
		base, suffix := word[:i], word[i+1:]
		if len(suffix) == 1 {
			if strings.HasSuffix(base, "o") {
				return base[:len(base)-1] + suffix
			}
			return base + suffix
		}
		return suffix
	}
	if i := strings.Index(word, "("); i >= 0 {
		base := word[:i]
		suffix := strings.TrimSuffix(word[i+1:], ")")
		return base + suffix
	}
	return word
}
