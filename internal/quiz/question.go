// Package quiz builds multiple-choice questions from vocabulary entries
// and drives a single learner's run through them.
package quiz

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/holavoca/internal/vocab"
)

// Type identifies the kind of question asked about a word.
type Type string

const (
	// TranslateToTarget shows the Spanish word and asks for the meaning.
	TranslateToTarget Type = "translate-to-target"
	// TranslateToSource shows the meaning and asks for the Spanish word.
	TranslateToSource Type = "translate-to-source"
	// IdentifyGender shows a gender-inflected form and asks its gender.
	IdentifyGender Type = "identify-gender"
)

// genderChance is the probability of an identify-gender question for a
// word that carries gender information.
const genderChance = 0.2

// optionCount is the option-set size for translation questions; gender
// questions always have exactly two options.
const optionCount = 4

// Question is one ephemeral quiz item. Options always contain the
// correct answer exactly once.
type Question struct {
	Entry   vocab.Entry
	Type    Type
	Prompt  string
	Options []string
	Answer  string

	// DisplayForm is the gender-inflected surface form shown for
	// identify-gender questions; empty otherwise.
	DisplayForm string
}

// BuildQuestions creates one question per unit word, drawing wrong
// options from fullPool, and shuffles the question order once. The mix
// of question types is randomized per word: words with gender markers
// are sometimes asked as gender questions, every word may be asked in
// either translation direction.
func BuildQuestions(unitWords, fullPool []vocab.Entry) []Question {
	out := make([]Question, 0, len(unitWords))
	for _, e := range unitWords {
		out = append(out, buildQuestion(e, fullPool))
	}
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func buildQuestion(e vocab.Entry, pool []vocab.Entry) Question {
	genders := e.SupportedGenders()
	if len(genders) > 0 && rand.Float64() < genderChance {
		return genderQuestion(e, genders)
	}
	if rand.IntN(2) == 0 {
		return translateToSourceQuestion(e, pool)
	}
	return translateToTargetQuestion(e, pool)
}

func translateToTargetQuestion(e vocab.Entry, pool []vocab.Entry) Question {
	correct := e.Meaning
	options := distractorValues(optionCount-1, pool, e.Word, correct, func(d vocab.Entry) string {
		return d.Meaning
	})
	options = append(options, correct)
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return Question{
		Entry:   e,
		Type:    TranslateToTarget,
		Prompt:  fmt.Sprintf("What does %q mean?", e.Word),
		Options: options,
		Answer:  correct,
	}
}

func translateToSourceQuestion(e vocab.Entry, pool []vocab.Entry) Question {
	correct := e.Word
	options := distractorValues(optionCount-1, pool, e.Word, correct, func(d vocab.Entry) string {
		return d.Word
	})
	options = append(options, correct)
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return Question{
		Entry:   e,
		Type:    TranslateToSource,
		Prompt:  fmt.Sprintf("Which word means %q?", e.Meaning),
		Options: options,
		Answer:  correct,
	}
}

func genderQuestion(e vocab.Entry, genders []vocab.Gender) Question {
	g := genders[rand.IntN(len(genders))]
	form := vocab.GenderedForm(e.Word, g)

	options := []string{vocab.Masculine.Label(), vocab.Feminine.Label()}
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return Question{
		Entry:       e,
		Type:        IdentifyGender,
		Prompt:      fmt.Sprintf("Is %q masculine or feminine?", form),
		Options:     options,
		Answer:      g.Label(),
		DisplayForm: form,
	}
}
