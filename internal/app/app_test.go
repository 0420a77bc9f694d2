package app_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/focusflow/internal/app"
	"github.com/ajitpratap0/focusflow/internal/config"
	"github.com/ajitpratap0/focusflow/internal/models"
	"github.com/ajitpratap0/focusflow/internal/state"
	"github.com/ajitpratap0/focusflow/internal/store"
	"github.com/ajitpratap0/focusflow/internal/testutil"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Storage: config.StorageConfig{
			DataDir:     dir,
			Database:    "focusflow",
			Store:       "app_data",
			FallbackDir: filepath.Join(dir, "kv"),
			StateKey:    config.DefaultStateKey,
		},
		Logging: config.LoggingConfig{Level: "info", Format: "text"},
		API:     config.APIConfig{ListenAddr: "127.0.0.1:0"},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 4}))
}

func clockOpt() app.Option {
	return app.WithStateOptions(state.WithClock(testutil.NewClock(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))))
}

func TestOpen_PersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := app.Open(ctx, cfg, quietLogger(), clockOpt())
	require.NoError(t, err)
	idea := a.Store.AddIdea(state.IdeaDraft{Title: "Buy milk"})
	a.Store.Dispatch(state.SetCalmMode{Enabled: true})
	require.NoError(t, a.Close(ctx))

	_, err = os.Stat(cfg.Storage.DatabasePath())
	require.NoError(t, err, "primary database file is created")

	b, err := app.Open(ctx, cfg, quietLogger(), clockOpt())
	require.NoError(t, err)
	defer func() { _ = b.Close(ctx) }()

	active := b.Store.ActiveIdeas()
	require.Len(t, active, 1)
	assert.Equal(t, idea.ID, active[0].ID)
	assert.True(t, b.Store.State().Settings.CalmMode)
	assert.True(t, b.Storage.Primary(ctx))
}

func TestOpen_DisabledPrimaryUsesFallback(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Storage.DisablePrimary = true

	a, err := app.Open(ctx, cfg, quietLogger(), clockOpt())
	require.NoError(t, err)
	a.Store.AddIdea(state.IdeaDraft{Title: "on disk"})
	require.NoError(t, a.Close(ctx))

	_, err = os.Stat(cfg.Storage.DatabasePath())
	assert.True(t, os.IsNotExist(err), "sqlite file must not be created")

	raw, found, err := store.NewDiskv(cfg.Storage.FallbackDir).Get(ctx, config.DefaultStateKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, raw, "on disk")
}

func TestOpen_FailingOpenerFallsBack(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	failing := func(context.Context) (store.Backend, error) { return nil, errors.New("quota exceeded") }

	a, err := app.Open(ctx, cfg, quietLogger(), clockOpt(), app.WithOpener(failing))
	require.NoError(t, err)
	assert.False(t, a.Storage.Primary(ctx))

	a.Store.AddEvent(state.EventDraft{Title: "Dentist", Date: "2026-03-01", Time: "09:00"})
	require.NoError(t, a.Close(ctx))

	cfg.Storage.DisablePrimary = true
	b, err := app.Open(ctx, cfg, quietLogger(), clockOpt())
	require.NoError(t, err)
	defer func() { _ = b.Close(ctx) }()
	require.Len(t, b.Store.UpcomingEvents(), 1)
	assert.Equal(t, "Dentist", b.Store.UpcomingEvents()[0].Title)
}

func TestOpen_RoutinesShareStorage(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := app.Open(ctx, cfg, quietLogger(), clockOpt())
	require.NoError(t, err)
	_, err = a.Routines.Schedule(ctx, models.ScheduledRoutine{Modules: []string{"a", "b"}})
	require.NoError(t, err)

	keys, err := a.Storage.Keys(ctx)
	require.NoError(t, err)
	assert.Contains(t, keys, "rutinasHoy")
	assert.Equal(t, "2026-03-01", a.Routines.Scheduled(ctx)[0].Date, "routines use the store clock")
	require.NoError(t, a.Close(ctx))
}

func TestOpen_NilConfig(t *testing.T) {
	_, err := app.Open(context.Background(), nil, nil)
	assert.Error(t, err)
}
