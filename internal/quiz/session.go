package quiz

import (
	"math"

	"github.com/abhisek/holavoca/internal/units"
)

// XPPerCorrect is the experience awarded per correct answer.
const XPPerCorrect = 10

// passRatio is the fraction of questions that must be answered
// correctly for a unit session to count as passed.
const passRatio = 0.8

// Outcome is the tri-state answer result for the current question.
type Outcome int

const (
	Unanswered Outcome = iota
	Correct
	Incorrect
)

// Sink consumes progress events emitted by a session. Implementations
// must tolerate being called from the session's single driving goroutine
// only; sessions are never mutated concurrently.
type Sink interface {
	// AddXP awards experience for a session that did not complete a unit.
	AddXP(amount int)
	// RecordMistake increments the mistake tally for a word.
	RecordMistake(word string)
	// CompleteUnit marks a unit passed and awards its experience.
	CompleteUnit(unitID string, xpEarned int)
}

// Session drives one run through a question list. It is owned by a
// single sequential actor; there is no internal locking.
type Session struct {
	unitID    string
	questions []Question
	sink      Sink

	index    int
	selected string
	outcome  Outcome
	score    int
	finished bool
}

// NewSession creates a session over the given questions. The sink may
// be nil, in which case events are dropped.
func NewSession(unitID string, questions []Question, sink Sink) *Session {
	return &Session{unitID: unitID, questions: questions, sink: sink}
}

// Current returns the active question, or false when the session is
// finished or empty.
func (s *Session) Current() (Question, bool) {
	if s.finished || s.index >= len(s.questions) {
		return Question{}, false
	}
	return s.questions[s.index], true
}

// UnitID returns the id of the unit this session plays.
func (s *Session) UnitID() string { return s.unitID }

// Index returns the zero-based position of the current question.
func (s *Session) Index() int { return s.index }

// Len returns the total question count.
func (s *Session) Len() int { return len(s.questions) }

// Score returns the running count of correct answers.
func (s *Session) Score() int { return s.score }

// Selected returns the option chosen for the current question, or the
// empty string while unanswered.
func (s *Session) Selected() string { return s.selected }

// Outcome returns the answer state of the current question.
func (s *Session) Outcome() Outcome { return s.outcome }

// Finished reports whether the session has completed all questions.
func (s *Session) Finished() bool { return s.finished }

// IsReview reports whether this is a mistake-review session.
func (s *Session) IsReview() bool { return units.IsReview(s.unitID) }

// Answer registers the learner's choice for the current question.
// A second call for the same question is a no-op (guards
// double-submission); it returns false when the answer was not
// registered. A wrong answer emits a mistake event for the word.
func (s *Session) Answer(option string) bool {
	q, ok := s.Current()
	if !ok || s.outcome != Unanswered {
		return false
	}

	s.selected = option
	if option == q.Answer {
		s.outcome = Correct
		s.score++
	} else {
		s.outcome = Incorrect
		if s.sink != nil {
			s.sink.RecordMistake(q.Entry.Word)
		}
	}
	return true
}

// Advance moves to the next question after an answer, or finishes the
// session on the last one. Calling it before Answer, or after the
// session finished, is a no-op returning false.
func (s *Session) Advance() bool {
	if s.finished || s.outcome == Unanswered {
		return false
	}

	if s.index+1 < len(s.questions) {
		s.index++
		s.selected = ""
		s.outcome = Unanswered
		return true
	}

	s.finished = true
	s.finish()
	return true
}

// Passed reports whether the score meets the pass threshold.
func (s *Session) Passed() bool {
	return s.score >= PassThreshold(len(s.questions))
}

// PassThreshold returns the minimum correct-answer count for a session
// of n questions to pass.
func PassThreshold(n int) int {
	return int(math.Ceil(passRatio * float64(n)))
}

// finish emits the terminal progress event. Passing an ordinary unit
// completes it with the earned experience; review sessions and failed
// runs only bank the per-answer experience.
func (s *Session) finish() {
	if s.sink == nil {
		return
	}
	earned := s.score * XPPerCorrect
	if !s.IsReview() && s.Passed() {
		s.sink.CompleteUnit(s.unitID, earned)
		return
	}
	if earned > 0 {
		s.sink.AddXP(earned)
	}
}
