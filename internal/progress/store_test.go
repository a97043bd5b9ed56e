package progress

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

type memRepo struct {
	snap    *Snapshot
	loadErr error
	saveErr error
	saves   int
}

func (r *memRepo) Load(ctx context.Context) (*Snapshot, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.snap, nil
}

func (r *memRepo) Save(ctx context.Context, snap Snapshot) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.snap = &snap
	return nil
}

func newTestStore(t *testing.T, repo *memRepo) *Store {
	t.Helper()
	s := NewStore(repo, nil)
	s.now = func() time.Time {
		return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func TestStoreLoadsExisting(t *testing.T) {
	repo := &memRepo{snap: &Snapshot{XP: 70, Streak: 3}}
	s := newTestStore(t, repo)
	if got := s.Snapshot(); got.XP != 70 || got.Streak != 3 {
		t.Errorf("loaded snapshot = %+v", got)
	}
}

func TestStoreCorruptRepoFallsBackToDefaults(t *testing.T) {
	repo := &memRepo{loadErr: errors.New("corrupt row")}
	s := newTestStore(t, repo)
	if got := s.Snapshot(); !reflect.DeepEqual(got, Snapshot{}) {
		t.Errorf("expected zero snapshot, got %+v", got)
	}
}

func TestAddXPClampsAtZero(t *testing.T) {
	s := newTestStore(t, &memRepo{})
	s.AddXP(30)
	s.AddXP(-100)
	if got := s.Snapshot().XP; got != 0 {
		t.Errorf("XP = %d, want 0", got)
	}
	s.AddGems(5)
	s.AddGems(-50)
	if got := s.Snapshot().Gems; got != 0 {
		t.Errorf("Gems = %d, want 0", got)
	}
}

func TestCompleteUnit(t *testing.T) {
	repo := &memRepo{}
	s := newTestStore(t, repo)

	s.CompleteUnit("unit-2", 170)

	got := s.Snapshot()
	if got.XP != 170 {
		t.Errorf("XP = %d, want 170", got.XP)
	}
	if got.Gems != 17 {
		t.Errorf("Gems = %d, want 17", got.Gems)
	}
	if got.Streak != 1 {
		t.Errorf("Streak = %d, want 1", got.Streak)
	}
	if got.LastStudyDate != "2026-09-01" {
		t.Errorf("LastStudyDate = %q", got.LastStudyDate)
	}
	if !got.HasCompleted("unit-2") {
		t.Error("unit-2 not in completed set")
	}

	// Same-day completion of another unit must not grow the streak or
	// duplicate ids.
	s.CompleteUnit("unit-2", 100)
	got = s.Snapshot()
	if got.Streak != 1 {
		t.Errorf("same-day Streak = %d, want 1", got.Streak)
	}
	if len(got.CompletedUnits) != 1 {
		t.Errorf("CompletedUnits = %v, want one entry", got.CompletedUnits)
	}
	if got.XP != 270 {
		t.Errorf("XP = %d, want 270", got.XP)
	}
}

func TestStreakGrowsOnNewDay(t *testing.T) {
	s := newTestStore(t, &memRepo{snap: &Snapshot{Streak: 4, LastStudyDate: "2026-08-31"}})
	s.CompleteUnit("unit-1", 160)
	if got := s.Snapshot().Streak; got != 5 {
		t.Errorf("Streak = %d, want 5", got)
	}
}

func TestMistakeLifecycle(t *testing.T) {
	s := newTestStore(t, &memRepo{})
	s.RecordMistake("abril")
	s.RecordMistake("abril")
	s.RecordMistake("adiós")

	got := s.Snapshot()
	if got.Mistakes["abril"] != 2 || got.Mistakes["adiós"] != 1 {
		t.Errorf("Mistakes = %v", got.Mistakes)
	}

	s.ClearMistake("abril")
	got = s.Snapshot()
	if _, ok := got.Mistakes["abril"]; ok {
		t.Error("abril still present after ClearMistake")
	}
	if got.Mistakes["adiós"] != 1 {
		t.Errorf("adiós tally disturbed: %v", got.Mistakes)
	}

	s.ClearAllMistakes()
	got = s.Snapshot()
	if got.Mistakes == nil || len(got.Mistakes) != 0 {
		t.Errorf("ClearAllMistakes left %v", got.Mistakes)
	}
}

func TestUnlockProgress(t *testing.T) {
	s := newTestStore(t, &memRepo{})
	s.UnlockProgress([]string{"unit-3", "unit-1"}, 500, 50)

	got := s.Snapshot()
	if got.XP != 500 || got.Gems != 50 {
		t.Errorf("xp/gems = %d/%d", got.XP, got.Gems)
	}
	if !reflect.DeepEqual(got.CompletedUnits, []string{"unit-1", "unit-3"}) {
		t.Errorf("CompletedUnits = %v", got.CompletedUnits)
	}
}

func TestMutationsPersistAndNotify(t *testing.T) {
	repo := &memRepo{}
	s := newTestStore(t, repo)

	var notified int
	s.SetOnChange(func() { notified++ })

	s.AddXP(10)
	s.RecordMistake("casa")

	if repo.saves != 2 {
		t.Errorf("saves = %d, want 2", repo.saves)
	}
	if notified != 2 {
		t.Errorf("onChange fired %d times, want 2", notified)
	}
	if repo.snap.XP != 10 || repo.snap.Mistakes["casa"] != 1 {
		t.Errorf("persisted snapshot = %+v", repo.snap)
	}
}

func TestPersistFailureKeepsMemoryState(t *testing.T) {
	repo := &memRepo{saveErr: errors.New("disk full")}
	s := newTestStore(t, repo)
	s.AddXP(10)
	if got := s.Snapshot().XP; got != 10 {
		t.Errorf("XP = %d, want 10 despite save failure", got)
	}
}

func TestApplyRemote(t *testing.T) {
	s := newTestStore(t, &memRepo{snap: &Snapshot{XP: 150, CompletedUnits: []string{"unit-1"}}})

	var notified int
	s.SetOnChange(func() { notified++ })

	merged, pushBack := s.ApplyRemote(Snapshot{XP: 100, CompletedUnits: []string{"unit-2"}})
	if merged.XP != 150 {
		t.Errorf("merged XP = %d, want 150", merged.XP)
	}
	if !reflect.DeepEqual(merged.CompletedUnits, []string{"unit-1", "unit-2"}) {
		t.Errorf("merged units = %v", merged.CompletedUnits)
	}
	if !pushBack {
		t.Error("merge added local progress, expected pushBack")
	}
	if notified != 0 {
		t.Error("ApplyRemote must not fire onChange")
	}

	// Remote already at or ahead of local: nothing to push back.
	_, pushBack = s.ApplyRemote(Snapshot{XP: 150, Streak: 0, CompletedUnits: []string{"unit-1", "unit-2"}})
	if pushBack {
		t.Error("remote covers local, expected no pushBack")
	}
}
