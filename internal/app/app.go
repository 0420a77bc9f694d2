// Package app assembles the storage adapter, state container, persistence
// bridge and routines repository from configuration. Each entry point
// builds one App and shares it; there are no package-level singletons.
package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ajitpratap0/focusflow/internal/config"
	"github.com/ajitpratap0/focusflow/internal/lifecycle"
	"github.com/ajitpratap0/focusflow/internal/persist"
	"github.com/ajitpratap0/focusflow/internal/routines"
	"github.com/ajitpratap0/focusflow/internal/state"
	"github.com/ajitpratap0/focusflow/internal/store"
)

// App is a running FocusFlow instance.
type App struct {
	Storage   *store.Adapter
	Store     *state.Store
	Bridge    *persist.Bridge
	Routines  *routines.Repository
	Lifecycle *lifecycle.Manager

	logger *slog.Logger
}

// Option customizes Open, mostly for tests.
type Option func(*options)

type options struct {
	stateOpts []state.Option
	opener    store.Opener
}

// WithStateOptions passes options through to state.New.
func WithStateOptions(opts ...state.Option) Option {
	return func(o *options) { o.stateOpts = append(o.stateOpts, opts...) }
}

// WithOpener replaces the primary storage opener.
func WithOpener(open store.Opener) Option {
	return func(o *options) { o.opener = open }
}

// Open builds an App, restores persisted state and starts persisting
// changes. The store is ready for reads when Open returns.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	fallback := store.NewDiskv(cfg.Storage.FallbackDir)

	open := o.opener
	switch {
	case open != nil:
	case cfg.Storage.DisablePrimary:
		open = store.DisabledOpener()
	default:
		open = store.SQLiteOpener(cfg.Storage.DatabasePath(), cfg.Storage.Store)
	}
	adapter := store.NewAdapter(open, fallback, logger.With("component", "storage"))

	st := state.New(append([]state.Option{state.WithLogger(logger.With("component", "state"))}, o.stateOpts...)...)

	bridge := persist.New(adapter,
		persist.WithKey(cfg.Storage.StateKey),
		persist.WithDebounce(cfg.Persist.Debounce),
		persist.WithLogger(logger.With("component", "persist")),
	)
	bridge.Restore(ctx, st)
	bridge.Attach(ctx, st)

	return &App{
		Storage:   adapter,
		Store:     st,
		Bridge:    bridge,
		Routines:  routines.New(adapter, st, logger.With("component", "routines")),
		Lifecycle: lifecycle.NewManager(st, logger.With("component", "lifecycle")),
		logger:    logger,
	}, nil
}

// Close writes any pending state and releases storage. It reports the
// final write's failure, if any.
func (a *App) Close(ctx context.Context) error {
	err := a.Bridge.Close(ctx)
	if err == nil {
		err = a.Bridge.LastError()
	}
	if err != nil {
		a.logger.Error("final state write failed", "error", err)
	}
	return errors.Join(err, a.Storage.Close())
}
