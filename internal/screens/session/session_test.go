package session

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/holavoca/internal/router"
	"github.com/abhisek/holavoca/internal/screen"
	"github.com/abhisek/holavoca/internal/store"
	"github.com/abhisek/holavoca/internal/units"
	"github.com/abhisek/holavoca/internal/vocab"
)

// recordSink implements quiz.Sink for testing.
type recordSink struct {
	xp        int
	mistakes  []string
	completed []string
}

func (r *recordSink) AddXP(amount int)       { r.xp += amount }
func (r *recordSink) RecordMistake(w string) { r.mistakes = append(r.mistakes, w) }
func (r *recordSink) CompleteUnit(unitID string, xpEarned int) {
	r.completed = append(r.completed, unitID)
	r.xp += xpEarned
}

// recordLog implements EventLog for testing.
type recordLog struct {
	answers  []store.AnswerEvent
	sessions []store.SessionEvent
}

func (r *recordLog) AppendAnswer(_ context.Context, ev store.AnswerEvent) error {
	r.answers = append(r.answers, ev)
	return nil
}
func (r *recordLog) AppendSession(_ context.Context, ev store.SessionEvent) error {
	r.sessions = append(r.sessions, ev)
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testPool() []vocab.Entry {
	return []vocab.Entry{
		{Word: "gato", Meaning: "cat", Source: "vol-1"},
		{Word: "perro", Meaning: "dog", Source: "vol-1"},
		{Word: "casa", Meaning: "house", Source: "vol-1"},
		{Word: "libro", Meaning: "book", Source: "vol-1"},
		{Word: "agua", Meaning: "water", Source: "vol-1"},
		{Word: "pan", Meaning: "bread", Source: "vol-1"},
	}
}

func testScreen(words int) (*Screen, *recordSink, *recordLog) {
	pool := testPool()
	unit := units.Unit{ID: "unit-1", Title: "Unit 1", Words: pool[:words]}
	sink := &recordSink{}
	log := &recordLog{}
	return New(unit, pool, sink, log, nil), sink, log
}

// answerCurrent moves the cursor onto the given option and submits.
func answerCurrent(t *testing.T, s *Screen, correct bool) screen.Screen {
	t.Helper()
	if correct {
		s.mc.Selected = s.mc.CorrectIndex
	} else {
		s.mc.Selected = (s.mc.CorrectIndex + 1) % len(s.mc.Options)
	}
	scr, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		cmd()
	}
	return scr
}

func TestScreen_Title(t *testing.T) {
	s, _, _ := testScreen(2)
	if s.Title() != "Unit 1" {
		t.Errorf("Title = %q, want %q", s.Title(), "Unit 1")
	}

	review := New(units.Unit{ID: units.ReviewUnitID, Title: "x", Words: testPool()[:2]},
		testPool(), nil, nil, nil)
	if review.Title() != "Review" {
		t.Errorf("review Title = %q, want %q", review.Title(), "Review")
	}
}

func TestScreen_InitAppendsStartEvent(t *testing.T) {
	s, _, log := testScreen(2)
	s.Init()
	if len(log.sessions) != 1 || log.sessions[0].Action != store.SessionStarted {
		t.Fatalf("sessions = %+v, want one start event", log.sessions)
	}
}

func TestScreen_CorrectAnswerShowsFeedback(t *testing.T) {
	s, _, log := testScreen(2)

	answerCurrent(t, s, true)

	if !s.showingFeedback {
		t.Error("expected feedback after submit")
	}
	if s.sess.Score() != 1 {
		t.Errorf("score = %d, want 1", s.sess.Score())
	}
	if len(log.answers) != 1 || !log.answers[0].Correct {
		t.Fatalf("answers = %+v, want one correct event", log.answers)
	}
}

func TestScreen_WrongAnswerRecordsMistake(t *testing.T) {
	s, sink, log := testScreen(2)

	answerCurrent(t, s, false)

	if len(sink.mistakes) != 1 {
		t.Fatalf("mistakes = %v, want one word", sink.mistakes)
	}
	if len(log.answers) != 1 || log.answers[0].Correct {
		t.Fatalf("answers = %+v, want one wrong event", log.answers)
	}
}

func TestScreen_FeedbackAnyKeyAdvances(t *testing.T) {
	s, _, _ := testScreen(2)

	answerCurrent(t, s, true)
	if s.sess.Index() != 0 {
		t.Fatalf("index = %d before advance", s.sess.Index())
	}

	s.Update(keyPress(' '))
	if s.showingFeedback {
		t.Error("expected feedback dismissed")
	}
	if s.sess.Index() != 1 {
		t.Errorf("index = %d, want 1", s.sess.Index())
	}
}

func TestScreen_FinishEmitsCompletedEventAndSummary(t *testing.T) {
	s, sink, log := testScreen(2)

	answerCurrent(t, s, true)
	s.Update(keyPress(' '))
	answerCurrent(t, s, true)
	_, cmd := s.Update(keyPress(' '))

	if cmd == nil {
		t.Fatal("expected a command on finish")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected a replace to the summary screen")
	}

	if len(sink.completed) != 1 || sink.completed[0] != "unit-1" {
		t.Errorf("completed = %v, want [unit-1]", sink.completed)
	}
	found := false
	for _, ev := range log.sessions {
		if ev.Action == store.SessionCompleted {
			found = true
			if ev.Questions != 2 || ev.Correct != 2 || !ev.Passed {
				t.Errorf("completed event = %+v", ev)
			}
		}
	}
	if !found {
		t.Error("expected a completed session event")
	}
}

func TestScreen_QuitConfirm(t *testing.T) {
	s, _, log := testScreen(2)

	s.Update(specialKey(tea.KeyEscape))
	if !s.quitConfirm {
		t.Fatal("expected quit confirmation dialog")
	}

	s.Update(keyPress('n'))
	if s.quitConfirm {
		t.Error("expected quit confirmation dismissed")
	}

	s.Update(specialKey(tea.KeyEscape))
	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command after quit confirmation")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected a pop back to the unit list")
	}

	found := false
	for _, ev := range log.sessions {
		if ev.Action == store.SessionAbandoned {
			found = true
		}
	}
	if !found {
		t.Error("expected an abandoned session event")
	}
}

func TestScreen_ViewStates(t *testing.T) {
	s, _, _ := testScreen(2)

	if s.View(80, 24) == "" {
		t.Error("expected non-empty question view")
	}

	answerCurrent(t, s, true)
	if s.View(80, 24) == "" {
		t.Error("expected non-empty feedback view")
	}

	s.showingFeedback = false
	s.quitConfirm = true
	if s.View(80, 24) == "" {
		t.Error("expected non-empty quit confirm view")
	}
}
