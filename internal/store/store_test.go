package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/abhisek/holavoca/internal/progress"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProgressRepoRoundTrip(t *testing.T) {
	repo := openTestStore(t).ProgressRepo()
	ctx := context.Background()

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load empty: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil snapshot on fresh db, got %+v", got)
	}

	snap := progress.Snapshot{
		XP: 150, Gems: 15, Streak: 2,
		LastStudyDate:  "2026-09-01",
		CompletedUnits: []string{"unit-1", "unit-2"},
		Mistakes:       map[string]int{"abril": 3},
	}
	if err := repo.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.XP != 150 || got.Streak != 2 || len(got.CompletedUnits) != 2 || got.Mistakes["abril"] != 3 {
		t.Errorf("round trip lost data: %+v", got)
	}

	// Second save replaces the single row.
	snap.XP = 200
	if err := repo.Save(ctx, snap); err != nil {
		t.Fatalf("Save again: %v", err)
	}
	got, _ = repo.Load(ctx)
	if got.XP != 200 {
		t.Errorf("XP = %d after upsert, want 200", got.XP)
	}
}

func TestEventRepoAppendAndStats(t *testing.T) {
	s := openTestStore(t)
	repo, err := s.EventRepo()
	if err != nil {
		t.Fatalf("EventRepo: %v", err)
	}
	ctx := context.Background()

	answers := []AnswerEvent{
		{Word: "abril", UnitID: "unit-1", QuestionType: "translate-to-target", Correct: false},
		{Word: "abril", UnitID: "unit-1", QuestionType: "translate-to-target", Correct: false},
		{Word: "adiós", UnitID: "unit-1", QuestionType: "identify-gender", Correct: true},
		{Word: "casa", UnitID: "unit-2", QuestionType: "translate-to-source", Correct: true},
	}
	for _, ev := range answers {
		if err := repo.AppendAnswer(ctx, ev); err != nil {
			t.Fatalf("AppendAnswer: %v", err)
		}
	}

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 4 || stats.Correct != 2 {
		t.Errorf("stats = %+v, want 4 total / 2 correct", stats)
	}

	hard, err := repo.HardestWords(ctx, 10)
	if err != nil {
		t.Fatalf("HardestWords: %v", err)
	}
	if len(hard) != 1 || hard[0].Word != "abril" || hard[0].Wrong != 2 {
		t.Errorf("hardest = %+v, want abril with 2 wrong", hard)
	}
}

func TestEventRepoSessionCount(t *testing.T) {
	s := openTestStore(t)
	repo, err := s.EventRepo()
	if err != nil {
		t.Fatalf("EventRepo: %v", err)
	}
	ctx := context.Background()

	events := []SessionEvent{
		{UnitID: "unit-1", Action: SessionStarted, Questions: 20},
		{UnitID: "unit-1", Action: SessionCompleted, Questions: 20, Correct: 17, Passed: true},
		{UnitID: "unit-2", Action: SessionStarted, Questions: 20},
		{UnitID: "unit-2", Action: SessionAbandoned, Questions: 20, Correct: 5},
	}
	for _, ev := range events {
		if err := repo.AppendSession(ctx, ev); err != nil {
			t.Fatalf("AppendSession: %v", err)
		}
	}

	for action, want := range map[string]int{
		SessionStarted:   2,
		SessionCompleted: 1,
		SessionAbandoned: 1,
	} {
		got, err := repo.SessionCount(ctx, action)
		if err != nil {
			t.Fatalf("SessionCount(%s): %v", action, err)
		}
		if got != want {
			t.Errorf("SessionCount(%s) = %d, want %d", action, got, want)
		}
	}
}

func TestSequenceIsGlobalAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo, err := s.EventRepo()
	if err != nil {
		t.Fatalf("EventRepo: %v", err)
	}
	ctx := context.Background()

	if err := repo.AppendAnswer(ctx, AnswerEvent{Word: "sol", UnitID: "unit-1", QuestionType: "identify-gender"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendSession(ctx, SessionEvent{UnitID: "unit-1", Action: SessionStarted}); err != nil {
		t.Fatal(err)
	}

	var answerSeq, sessionSeq int64
	if err := s.DB().QueryRow(`SELECT sequence FROM answer_events`).Scan(&answerSeq); err != nil {
		t.Fatal(err)
	}
	if err := s.DB().QueryRow(`SELECT sequence FROM session_events`).Scan(&sessionSeq); err != nil {
		t.Fatal(err)
	}
	if sessionSeq != answerSeq+1 {
		t.Errorf("sequences not contiguous across tables: answer=%d session=%d", answerSeq, sessionSeq)
	}
}
