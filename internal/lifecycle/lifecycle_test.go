package lifecycle_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/focusflow/internal/lifecycle"
	"github.com/ajitpratap0/focusflow/internal/state"
	"github.com/ajitpratap0/focusflow/internal/testutil"
)

func newManager(t *testing.T) (*lifecycle.Manager, *state.Store) {
	t.Helper()
	st := state.New(
		state.WithClock(testutil.NewClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))),
		state.WithIDs(&testutil.IDs{}),
	)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return lifecycle.NewManager(st, logger), st
}

func seed(st *state.Store) (done, open, archivedDone string) {
	done = st.AddIdea(state.IdeaDraft{Title: "done"}).ID
	open = st.AddIdea(state.IdeaDraft{Title: "open"}).ID
	archivedDone = st.AddIdea(state.IdeaDraft{Title: "archived and done"}).ID
	st.CompleteIdea(done)
	st.CompleteIdea(archivedDone)
	st.ArchiveIdea(archivedDone)
	st.AddEvent(state.EventDraft{Title: "Dentist", Date: "2026-03-01", Time: "09:00"})
	return done, open, archivedDone
}

func TestClearCompleted(t *testing.T) {
	m, st := newManager(t)
	done, open, archivedDone := seed(st)

	report, err := m.ClearCompleted(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Deleted)
	assert.ElementsMatch(t, []string{done, archivedDone}, report.IDs)

	ideas := st.State().Ideas
	require.Len(t, ideas, 1)
	assert.Equal(t, open, ideas[0].ID)
	assert.Len(t, st.State().Events, 1, "events are untouched")
}

func TestClearCompleted_DryRunKeepsIdeas(t *testing.T) {
	m, st := newManager(t)
	seed(st)
	before := st.State().Ideas

	report, err := m.ClearCompleted(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, 2, report.Deleted)
	assert.Equal(t, before, st.State().Ideas)
}

func TestClearAll(t *testing.T) {
	m, st := newManager(t)
	seed(st)
	st.Dispatch(state.SetCalmMode{Enabled: true})

	report, err := m.ClearAll(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Deleted)
	assert.Empty(t, st.State().Ideas)
	assert.True(t, st.State().Settings.CalmMode)
}

func TestClearAll_Empty(t *testing.T) {
	m, _ := newManager(t)
	report, err := m.ClearAll(context.Background(), false)
	require.NoError(t, err)
	assert.Zero(t, report.Deleted)
	assert.NotNil(t, report.IDs)
}

func TestClearAll_CanceledContext(t *testing.T) {
	m, st := newManager(t)
	seed(st)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.ClearAll(ctx, false)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, st.State().Ideas, 3)
}
