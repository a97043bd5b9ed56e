// Package session hosts the quiz screen: one run through a unit's
// questions with immediate feedback.
package session

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/holavoca/internal/quiz"
	"github.com/abhisek/holavoca/internal/router"
	"github.com/abhisek/holavoca/internal/screen"
	"github.com/abhisek/holavoca/internal/screens/summary"
	"github.com/abhisek/holavoca/internal/store"
	"github.com/abhisek/holavoca/internal/ui/components"
	"github.com/abhisek/holavoca/internal/ui/layout"
	"github.com/abhisek/holavoca/internal/units"
	"github.com/abhisek/holavoca/internal/vocab"
)

// EventLog is the slice of the event store the quiz screen appends to.
type EventLog interface {
	AppendAnswer(ctx context.Context, ev store.AnswerEvent) error
	AppendSession(ctx context.Context, ev store.SessionEvent) error
}

// Screen drives a quiz session for one unit.
type Screen struct {
	unit   units.Unit
	pool   []vocab.Entry
	sink   quiz.Sink
	sess   *quiz.Session
	events EventLog
	log    *slog.Logger

	mc              components.MultiChoice
	showingFeedback bool
	quitConfirm     bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the quiz screen for a unit. Wrong options are drawn from
// pool, which should span the whole corpus; sink receives progress
// events and events (optional) the answer log. Review sessions pass a
// unit with the review id and the mistake words as its word list.
func New(unit units.Unit, pool []vocab.Entry, sink quiz.Sink, events EventLog, log *slog.Logger) *Screen {
	if log == nil {
		log = slog.Default()
	}
	s := &Screen{
		unit:   unit,
		pool:   pool,
		sink:   sink,
		sess:   quiz.NewSession(unit.ID, quiz.BuildQuestions(unit.Words, pool), sink),
		events: events,
		log:    log,
	}
	s.loadQuestion()
	return s
}

func (s *Screen) Init() tea.Cmd {
	s.appendSessionEvent(store.SessionStarted)
	return nil
}

func (s *Screen) Title() string {
	if s.sess.IsReview() {
		return "Review"
	}
	return s.unit.Title
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.quitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case s.showingFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.quitConfirm {
		return s.handleQuitConfirm(kmsg)
	}

	if s.showingFeedback {
		return s.advance()
	}

	if kmsg.String() == "esc" {
		s.quitConfirm = true
		return s, nil
	}

	var cmd tea.Cmd
	s.mc, cmd = s.mc.Update(msg)
	if s.mc.Submitted {
		return s.handleAnswer()
	}
	return s, cmd
}

func (s *Screen) handleQuitConfirm(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "y", "Y":
		s.appendSessionEvent(store.SessionAbandoned)
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "n", "N", "esc":
		s.quitConfirm = false
	}
	return s, nil
}

func (s *Screen) handleAnswer() (screen.Screen, tea.Cmd) {
	q, ok := s.sess.Current()
	if !ok {
		return s, nil
	}
	chosen := s.mc.Options[s.mc.ChosenIndex]
	s.sess.Answer(chosen)
	s.showingFeedback = true
	s.appendAnswerEvent(q, chosen == q.Answer)
	return s, nil
}

func (s *Screen) advance() (screen.Screen, tea.Cmd) {
	s.showingFeedback = false
	s.sess.Advance()

	if s.sess.Finished() {
		s.appendSessionEvent(store.SessionCompleted)

		earned := s.sess.Score() * quiz.XPPerCorrect
		gems := 0
		if s.sess.Passed() && !s.sess.IsReview() {
			gems = earned / 10
		}
		var retry func() tea.Msg
		if !s.sess.Passed() && !s.sess.IsReview() {
			unit, pool, sink, events, log := s.unit, s.pool, s.sink, s.events, s.log
			retry = func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: New(unit, pool, sink, events, log)}
			}
		}

		next := summary.New(summary.Result{
			UnitID:     s.unit.ID,
			UnitTitle:  s.Title(),
			Score:      s.sess.Score(),
			Total:      s.sess.Len(),
			Threshold:  quiz.PassThreshold(s.sess.Len()),
			Passed:     s.sess.Passed(),
			IsReview:   s.sess.IsReview(),
			XPEarned:   earned,
			GemsEarned: gems,
		}, retry)
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}
	}

	s.loadQuestion()
	return s, nil
}

func (s *Screen) loadQuestion() {
	q, ok := s.sess.Current()
	if !ok {
		return
	}
	correct := 0
	for i, opt := range q.Options {
		if opt == q.Answer {
			correct = i
			break
		}
	}
	s.mc = components.NewMultiChoice(q.Prompt, q.Options, correct)
}

// appendAnswerEvent logs the answer. Failures are logged and swallowed;
// the quiz never stalls on the event log.
func (s *Screen) appendAnswerEvent(q quiz.Question, correct bool) {
	if s.events == nil {
		return
	}
	err := s.events.AppendAnswer(context.Background(), store.AnswerEvent{
		Word:         q.Entry.Word,
		UnitID:       s.unit.ID,
		QuestionType: string(q.Type),
		Correct:      correct,
	})
	if err != nil {
		s.log.Warn("append answer event", "err", err)
	}
}

func (s *Screen) appendSessionEvent(action string) {
	if s.events == nil {
		return
	}
	err := s.events.AppendSession(context.Background(), store.SessionEvent{
		UnitID:    s.unit.ID,
		Action:    action,
		Questions: s.sess.Len(),
		Correct:   s.sess.Score(),
		Passed:    s.sess.Passed(),
	})
	if err != nil {
		s.log.Warn("append session event", "err", err)
	}
}
