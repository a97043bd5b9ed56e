package progress

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultDebounce is the quiet window the syncer waits for after a
// local change before pushing to the cloud.
const DefaultDebounce = 5 * time.Second

// Remote is a cloud progress document store. Subscribe delivers the
// remote snapshot whenever it changes, until ctx is cancelled.
type Remote interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
	Subscribe(ctx context.Context, onChange func(Snapshot)) error
}

// Syncer keeps a Store and a Remote converged: local mutations are
// pushed after a debounce window (rapid changes coalesce into one
// write), and remote changes are merged in and pushed back when the
// merge produced something the remote does not yet have.
type Syncer struct {
	store    *Store
	remote   Remote
	log      *slog.Logger
	debounce time.Duration

	dirty  chan struct{}
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncer wires store to remote and starts the background push and
// subscription loops. Call Close to stop them.
func NewSyncer(store *Store, remote Remote, log *slog.Logger, debounce time.Duration) *Syncer {
	if log == nil {
		log = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Syncer{
		store:    store,
		remote:   remote,
		log:      log,
		debounce: debounce,
		dirty:    make(chan struct{}, 1),
		cancel:   cancel,
	}
	store.SetOnChange(s.markDirty)

	s.wg.Add(2)
	go s.pushLoop(ctx)
	go s.watchLoop(ctx)
	return s
}

// markDirty schedules a debounced push. The single-slot channel makes
// repeated marks during one window collapse into one push.
func (s *Syncer) markDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

// Flush pushes the current snapshot immediately, bypassing the
// debounce window. Used on exit so the last answers are not lost.
func (s *Syncer) Flush(ctx context.Context) error {
	return s.push(ctx)
}

// Close stops the background loops and waits for them to drain. It
// does not flush; callers that want the final state uploaded call
// Flush first.
func (s *Syncer) Close() {
	s.cancel()
	s.wg.Wait()
}

func (s *Syncer) pushLoop(ctx context.Context) {
	defer s.wg.Done()

	timer := time.NewTimer(s.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	armed := false

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.dirty:
			if armed && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(s.debounce)
			armed = true
		case <-timer.C:
			armed = false
			if err := s.push(ctx); err != nil {
				s.log.Warn("cloud push failed", "err", err)
			}
		}
	}
}

// watchLoop merges the initial remote snapshot, then follows the
// remote subscription. A merged snapshot that exceeds the remote copy
// is saved back so both sides converge.
func (s *Syncer) watchLoop(ctx context.Context) {
	defer s.wg.Done()

	if remote, err := s.remote.Load(ctx); err != nil {
		s.log.Warn("cloud load failed", "err", err)
	} else if remote != nil {
		s.applyRemote(ctx, *remote)
	}

	err := s.remote.Subscribe(ctx, func(snap Snapshot) {
		s.applyRemote(ctx, snap)
	})
	if err != nil && ctx.Err() == nil {
		s.log.Warn("cloud subscription ended", "err", err)
	}
}

func (s *Syncer) applyRemote(ctx context.Context, remote Snapshot) {
	merged, pushBack := s.store.ApplyRemote(remote)
	if !pushBack {
		return
	}
	if err := s.remote.Save(ctx, merged); err != nil {
		s.log.Warn("cloud push-back failed", "err", err)
	}
}

func (s *Syncer) push(ctx context.Context) error {
	return s.remote.Save(ctx, s.store.Snapshot())
}
