package progress

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// Repo persists full snapshots to durable local storage. Load returns
// (nil, nil) when no snapshot has been saved yet.
type Repo interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}

// Store owns the in-memory snapshot and applies all state-update
// operations. Every operation persists the full snapshot synchronously;
// persistence failures are logged and the in-memory state is kept, they
// never propagate into quiz or unit logic.
type Store struct {
	mu       sync.Mutex
	repo     Repo
	snap     Snapshot
	log      *slog.Logger
	now      func() time.Time
	onChange func()
}

// NewStore loads the last saved snapshot from repo, falling back to
// all-zero defaults when the stored data is absent or unreadable.
func NewStore(repo Repo, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{repo: repo, log: log, now: time.Now}

	snap, err := repo.Load(context.Background())
	switch {
	case err != nil:
		log.Warn("local progress unreadable, starting fresh", "err", err)
	case snap != nil:
		s.snap = *snap
	}
	return s
}

// SetOnChange registers a callback invoked after every local mutation.
// Used by the syncer to schedule a debounced cloud push.
func (s *Store) SetOnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// AddXP adds experience points. The result is clamped at zero, so a
// negative amount can never drive xp negative.
func (s *Store) AddXP(amount int) {
	s.mutate(func(snap *Snapshot) {
		snap.XP = max(0, snap.XP+amount)
	})
}

// AddGems adds gems, clamped at zero like AddXP.
func (s *Store) AddGems(amount int) {
	s.mutate(func(snap *Snapshot) {
		snap.Gems = max(0, snap.Gems+amount)
	})
}

// CompleteUnit marks a unit passed: the unit joins the completed set
// (idempotent), xpEarned is added along with floor(xpEarned/10) gems,
// and the streak grows by one on the first completion of each calendar
// day.
func (s *Store) CompleteUnit(unitID string, xpEarned int) {
	today := s.now().Format(DateLayout)
	s.mutate(func(snap *Snapshot) {
		snap.XP += xpEarned
		snap.Gems += xpEarned / 10
		if snap.LastStudyDate != today {
			snap.Streak++
		}
		snap.LastStudyDate = today
		if !slices.Contains(snap.CompletedUnits, unitID) {
			snap.CompletedUnits = append(snap.CompletedUnits, unitID)
			slices.Sort(snap.CompletedUnits)
		}
	})
}

// RecordMistake increments the word's mistake tally, creating the
// entry at 1 when absent.
func (s *Store) RecordMistake(word string) {
	s.mutate(func(snap *Snapshot) {
		if snap.Mistakes == nil {
			snap.Mistakes = make(map[string]int)
		}
		snap.Mistakes[word]++
	})
}

// ClearMistake removes the word from the mistake list. No-op when the
// word has no entry.
func (s *Store) ClearMistake(word string) {
	s.mutate(func(snap *Snapshot) {
		delete(snap.Mistakes, word)
	})
}

// ClearAllMistakes resets the mistake list to empty. The map stays
// non-nil so the cleared state propagates on the next cloud push.
func (s *Store) ClearAllMistakes() {
	s.mutate(func(snap *Snapshot) {
		snap.Mistakes = make(map[string]int)
	})
}

// UnlockProgress atomically replaces the completed-unit set, xp and
// gems wholesale. Privileged/debug path.
func (s *Store) UnlockProgress(unitIDs []string, xp, gems int) {
	s.mutate(func(snap *Snapshot) {
		snap.CompletedUnits = slices.Clone(unitIDs)
		slices.Sort(snap.CompletedUnits)
		snap.XP = xp
		snap.Gems = gems
	})
}

// ApplyRemote merges a freshly observed remote snapshot into local
// state via Merge and persists the result. It returns the merged
// snapshot and whether it strictly exceeds the remote copy (in which
// case the caller must push it back). It does not fire the onChange
// callback: remote-driven merges schedule their own push.
func (s *Store) ApplyRemote(remote Snapshot) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := Merge(s.snap, remote)
	s.snap = merged
	s.persistLocked()
	return merged.Clone(), Exceeds(merged, remote)
}

// mutate applies fn to a copy of the snapshot under the lock, persists
// the full result, and notifies the change listener.
func (s *Store) mutate(fn func(*Snapshot)) {
	s.mu.Lock()
	next := s.snap.Clone()
	fn(&next)
	s.snap = next
	s.persistLocked()
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}

func (s *Store) persistLocked() {
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(context.Background(), s.snap.Clone()); err != nil {
		s.log.Warn("persist progress", "err", err)
	}
}
