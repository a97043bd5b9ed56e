package progress

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeRemote struct {
	mu     sync.Mutex
	snap   *Snapshot
	saves  int
	notify func(Snapshot)
}

func (r *fakeRemote) Load(ctx context.Context) (*Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snap == nil {
		return nil, nil
	}
	c := r.snap.Clone()
	return &c, nil
}

func (r *fakeRemote) Save(ctx context.Context, snap Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := snap.Clone()
	r.snap = &c
	r.saves++
	return nil
}

func (r *fakeRemote) Subscribe(ctx context.Context, onChange func(Snapshot)) error {
	r.mu.Lock()
	r.notify = onChange
	r.mu.Unlock()
	<-ctx.Done()
	return ctx.Err()
}

func (r *fakeRemote) push(snap Snapshot) {
	r.mu.Lock()
	fn := r.notify
	r.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

func (r *fakeRemote) state() (Snapshot, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var s Snapshot
	if r.snap != nil {
		s = r.snap.Clone()
	}
	return s, r.saves
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("condition not reached within deadline")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSyncerDebouncedPushCoalesces(t *testing.T) {
	store := newTestStore(t, &memRepo{})
	remote := &fakeRemote{}
	syncer := NewSyncer(store, remote, nil, 30*time.Millisecond)
	defer syncer.Close()

	// A burst of mutations inside one debounce window must land as a
	// single save carrying the final state.
	store.AddXP(10)
	store.AddXP(10)
	store.RecordMistake("casa")

	waitFor(t, func() bool { _, saves := remote.state(); return saves > 0 })
	snap, saves := remote.state()
	if saves != 1 {
		t.Errorf("saves = %d, want 1", saves)
	}
	if snap.XP != 20 || snap.Mistakes["casa"] != 1 {
		t.Errorf("pushed snapshot = %+v", snap)
	}
}

func TestSyncerMergesInitialRemote(t *testing.T) {
	store := newTestStore(t, &memRepo{snap: &Snapshot{XP: 150, CompletedUnits: []string{"unit-1"}}})
	remote := &fakeRemote{snap: &Snapshot{XP: 100, CompletedUnits: []string{"unit-2"}}}
	syncer := NewSyncer(store, remote, nil, 30*time.Millisecond)
	defer syncer.Close()

	// Local exceeds the merge result, so the syncer pushes back.
	waitFor(t, func() bool { snap, _ := remote.state(); return snap.XP == 150 })
	snap, _ := remote.state()
	if len(snap.CompletedUnits) != 2 {
		t.Errorf("remote units = %v, want union", snap.CompletedUnits)
	}
	if got := store.Snapshot(); len(got.CompletedUnits) != 2 {
		t.Errorf("local units = %v, want union", got.CompletedUnits)
	}
}

func TestSyncerAppliesSubscribedChanges(t *testing.T) {
	store := newTestStore(t, &memRepo{})
	remote := &fakeRemote{}
	syncer := NewSyncer(store, remote, nil, 30*time.Millisecond)
	defer syncer.Close()

	waitFor(t, func() bool {
		remote.mu.Lock()
		defer remote.mu.Unlock()
		return remote.notify != nil
	})

	remote.push(Snapshot{XP: 80, Mistakes: map[string]int{"sol": 2}})
	waitFor(t, func() bool { return store.Snapshot().XP == 80 })
	if got := store.Snapshot().Mistakes["sol"]; got != 2 {
		t.Errorf("mistakes not applied from remote: %v", store.Snapshot().Mistakes)
	}
}

func TestSyncerFlushBypassesDebounce(t *testing.T) {
	store := newTestStore(t, &memRepo{})
	remote := &fakeRemote{}
	syncer := NewSyncer(store, remote, nil, 10*time.Second)
	defer syncer.Close()

	store.AddXP(40)
	if err := syncer.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	snap, _ := remote.state()
	if snap.XP != 40 {
		t.Errorf("flushed XP = %d, want 40", snap.XP)
	}
}

func TestSyncerCloseStopsLoops(t *testing.T) {
	store := newTestStore(t, &memRepo{})
	remote := &fakeRemote{}
	syncer := NewSyncer(store, remote, nil, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		syncer.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return")
	}
}
