// Package persist mirrors the persisted subset of the application state to
// a store.Backend and restores it at startup.
package persist

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ajitpratap0/focusflow/internal/metrics"
	"github.com/ajitpratap0/focusflow/internal/models"
	"github.com/ajitpratap0/focusflow/internal/state"
	"github.com/ajitpratap0/focusflow/internal/store"
)

// DefaultKey is the storage key holding the serialized state.
const DefaultKey = "focusflow-state"

// ErrNotAttached is returned by Flush before Attach.
var ErrNotAttached = errors.New("persist: bridge not attached")

// Bridge restores state on startup and writes every change of the
// persisted subset through a single writer goroutine. Pending snapshots
// are coalesced: only the latest one is ever written.
type Bridge struct {
	backend  store.Backend
	key      string
	logger   *slog.Logger
	debounce time.Duration

	mu          sync.Mutex
	pending     *models.Snapshot
	pendingSeq  uint64 // seq of the newest enqueued snapshot
	writtenSeq  uint64 // seq of the newest snapshot whose write was attempted
	written     chan struct{}
	lastErr     error
	attached    bool
	closed      bool
	unsubscribe func()

	signal chan struct{}
	kick   chan struct{}
	stop   chan struct{}
	done   chan struct{}
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(b *Bridge) { b.key = key }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bridge) { b.logger = l }
}

// WithDebounce delays each write until changes have been quiet for d.
// Zero writes as soon as the writer is free.
func WithDebounce(d time.Duration) Option {
	return func(b *Bridge) { b.debounce = d }
}

// New creates a Bridge writing to backend.
func New(backend store.Backend, opts ...Option) *Bridge {
	b := &Bridge{
		backend: backend,
		key:     DefaultKey,
		logger:  slog.Default(),
		written: make(chan struct{}),
		signal:  make(chan struct{}, 1),
		kick:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Key returns the storage key in use.
func (b *Bridge) Key() string { return b.key }

// Restore loads the persisted blob into st. A missing or unreadable blob
// leaves st untouched; it is logged, never returned. Restore reports
// whether a blob was applied.
func (b *Bridge) Restore(ctx context.Context, st *state.Store) bool {
	raw, found, err := b.backend.Get(ctx, b.key)
	if err != nil {
		b.logger.Warn("restoring state: read failed, starting with defaults", "key", b.key, "error", err)
		return false
	}
	if !found {
		b.logger.Debug("restoring state: nothing persisted yet", "key", b.key)
		return false
	}
	load, err := Decode([]byte(raw))
	if err != nil {
		b.logger.Warn("restoring state: blob unreadable, starting with defaults", "key", b.key, "error", err)
		return false
	}
	st.Dispatch(load)
	metrics.Inc(metrics.Restores)
	b.logger.Info("state restored", "ideas", len(st.State().Ideas), "events", len(st.State().Events))
	return true
}

// Attach subscribes to st and starts the writer. ctx scopes the writes;
// cancelling it does not stop the writer, Close does.
func (b *Bridge) Attach(ctx context.Context, st *state.Store) {
	b.mu.Lock()
	if b.attached {
		b.mu.Unlock()
		return
	}
	b.attached = true
	b.mu.Unlock()

	go b.run(context.WithoutCancel(ctx))
	unsub := st.Subscribe(b.observe)

	b.mu.Lock()
	b.unsubscribe = unsub
	b.mu.Unlock()
}

func (b *Bridge) observe(prev, next state.AppState) {
	if !state.PersistedChanged(prev, next) {
		return
	}
	snap := state.Persisted(next)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	if b.pending != nil {
		metrics.Inc(metrics.PersistDropped)
	}
	b.pending = &snap
	b.pendingSeq++
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

func (b *Bridge) run(ctx context.Context) {
	defer close(b.done)
	for {
		select {
		case <-b.signal:
		case <-b.stop:
			b.writePending(ctx)
			return
		}
		if b.debounce > 0 {
			b.settle()
		}
		b.writePending(ctx)
	}
}

// settle waits until no change has arrived for the debounce period, a
// flush is requested, or the bridge is stopping.
func (b *Bridge) settle() {
	timer := time.NewTimer(b.debounce)
	defer timer.Stop()
	for {
		select {
		case <-timer.C:
			return
		case <-b.kick:
			return
		case <-b.stop:
			return
		case <-b.signal:
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(b.debounce)
		}
	}
}

func (b *Bridge) writePending(ctx context.Context) {
	b.mu.Lock()
	snap, seq := b.pending, b.pendingSeq
	b.pending = nil
	b.mu.Unlock()
	if snap == nil {
		return
	}

	err := b.write(ctx, *snap)

	b.mu.Lock()
	b.lastErr = err
	b.writtenSeq = seq
	close(b.written)
	b.written = make(chan struct{})
	b.mu.Unlock()
}

func (b *Bridge) write(ctx context.Context, snap models.Snapshot) error {
	data, err := Encode(snap)
	if err == nil {
		err = b.backend.Set(ctx, b.key, string(data))
	}
	if err != nil {
		metrics.Inc(metrics.PersistFailures)
		b.logger.Error("persisting state failed; will retry on next change", "key", b.key, "error", err)
		return err
	}
	metrics.Inc(metrics.PersistWrites)
	b.logger.Debug("state persisted", "key", b.key, "bytes", len(data))
	return nil
}

// Flush blocks until every change observed before the call has been
// written (or its write has failed). It skips any remaining debounce.
func (b *Bridge) Flush(ctx context.Context) error {
	b.mu.Lock()
	if !b.attached {
		b.mu.Unlock()
		return ErrNotAttached
	}
	target := b.pendingSeq
	b.mu.Unlock()

	select {
	case b.kick <- struct{}{}:
	default:
	}

	for {
		b.mu.Lock()
		if b.writtenSeq >= target {
			b.mu.Unlock()
			return nil
		}
		ch := b.written
		b.mu.Unlock()

		select {
		case <-ch:
		case <-b.done:
			b.mu.Lock()
			ok := b.writtenSeq >= target
			b.mu.Unlock()
			if !ok {
				return errors.New("persist: writer stopped before flush completed")
			}
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// LastError returns the result of the most recent write attempt.
func (b *Bridge) LastError() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

// Close stops observing changes, writes any pending snapshot and stops the
// writer. It is safe to call more than once.
func (b *Bridge) Close(ctx context.Context) error {
	b.mu.Lock()
	if !b.attached || b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	unsub := b.unsubscribe
	b.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	close(b.stop)
	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
