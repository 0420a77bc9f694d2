package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ajitpratap0/focusflow/internal/metrics"
)

// Opener opens the primary backend. It is called at most once per Adapter.
type Opener func(ctx context.Context) (Backend, error)

// Adapter fronts a primary Backend with a fallback. The primary is opened
// lazily on first use; if opening fails, the verdict is cached and every
// later call goes straight to the fallback. If a single primary operation
// fails, that call is retried on the fallback. Callers cannot tell which
// backend answered. An error is returned only when the fallback fails too.
type Adapter struct {
	open     Opener
	fallback Backend
	logger   *slog.Logger

	once    sync.Once
	primary Backend
	openErr error
}

// NewAdapter creates an Adapter. open may be nil, meaning no primary.
func NewAdapter(open Opener, fallback Backend, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{open: open, fallback: fallback, logger: logger}
}

// SQLiteOpener returns an Opener for OpenSQLite.
func SQLiteOpener(path, table string) Opener {
	return func(ctx context.Context) (Backend, error) {
		return OpenSQLite(ctx, path, table)
	}
}

// DisabledOpener returns an Opener that always fails, forcing the fallback.
func DisabledOpener() Opener {
	return func(context.Context) (Backend, error) {
		return nil, errors.New("primary storage disabled by configuration")
	}
}

func (a *Adapter) ensure(ctx context.Context) Backend {
	a.once.Do(func() {
		if a.open == nil {
			a.openErr = errors.New("no primary storage configured")
		} else {
			// The verdict is permanent, so a cancelled caller must not decide it.
			a.primary, a.openErr = a.open(context.WithoutCancel(ctx))
		}
		if a.openErr != nil {
			a.logger.Warn("primary storage unavailable, using fallback", "error", a.openErr)
		}
	})
	return a.primary
}

// Primary reports whether the primary backend is in use.
func (a *Adapter) Primary(ctx context.Context) bool {
	return a.ensure(ctx) != nil
}

func (a *Adapter) degrade(op, key string, err error) {
	metrics.Inc(metrics.FallbackOps)
	a.logger.Warn("primary storage operation failed, using fallback", "op", op, "key", key, "error", err)
}

// Get returns the value stored under key.
func (a *Adapter) Get(ctx context.Context, key string) (string, bool, error) {
	if p := a.ensure(ctx); p != nil {
		v, ok, err := p.Get(ctx, key)
		if err == nil {
			return v, ok, nil
		}
		a.degrade("get", key, err)
	}
	v, ok, err := a.fallback.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("fallback get %q: %w", key, err)
	}
	return v, ok, nil
}

// Set stores value under key.
func (a *Adapter) Set(ctx context.Context, key, value string) error {
	if p := a.ensure(ctx); p != nil {
		err := p.Set(ctx, key, value)
		if err == nil {
			return nil
		}
		a.degrade("set", key, err)
	}
	if err := a.fallback.Set(ctx, key, value); err != nil {
		return fmt.Errorf("fallback set %q: %w", key, err)
	}
	return nil
}

// Remove deletes key.
func (a *Adapter) Remove(ctx context.Context, key string) error {
	if p := a.ensure(ctx); p != nil {
		err := p.Remove(ctx, key)
		if err == nil {
			return nil
		}
		a.degrade("remove", key, err)
	}
	if err := a.fallback.Remove(ctx, key); err != nil {
		return fmt.Errorf("fallback remove %q: %w", key, err)
	}
	return nil
}

// Clear removes every key.
func (a *Adapter) Clear(ctx context.Context) error {
	if p := a.ensure(ctx); p != nil {
		err := p.Clear(ctx)
		if err == nil {
			return nil
		}
		a.degrade("clear", "", err)
	}
	if err := a.fallback.Clear(ctx); err != nil {
		return fmt.Errorf("fallback clear: %w", err)
	}
	return nil
}

// Keys lists every key.
func (a *Adapter) Keys(ctx context.Context) ([]string, error) {
	if p := a.ensure(ctx); p != nil {
		keys, err := p.Keys(ctx)
		if err == nil {
			return keys, nil
		}
		a.degrade("keys", "", err)
	}
	keys, err := a.fallback.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("fallback keys: %w", err)
	}
	return keys, nil
}

// Close closes the primary, if it was opened, and the fallback.
func (a *Adapter) Close() error {
	// Waits for an in-flight open and prevents later ones.
	a.once.Do(func() { a.openErr = ErrClosed })
	var errs []error
	if a.primary != nil {
		errs = append(errs, a.primary.Close())
	}
	errs = append(errs, a.fallback.Close())
	return errors.Join(errs...)
}
