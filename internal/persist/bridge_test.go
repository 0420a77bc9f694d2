package persist_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/focusflow/internal/models"
	"github.com/ajitpratap0/focusflow/internal/persist"
	"github.com/ajitpratap0/focusflow/internal/state"
	"github.com/ajitpratap0/focusflow/internal/store"
	"github.com/ajitpratap0/focusflow/internal/testutil"
)

var t0 = time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newStore() *state.Store {
	return state.New(
		state.WithClock(testutil.NewClock(t0)),
		state.WithIDs(&testutil.IDs{}),
		state.WithLogger(quietLogger()),
	)
}

// recordingStore wraps MemoryStore, counting writes and optionally failing
// or blocking them.
type recordingStore struct {
	*store.MemoryStore

	mu     sync.Mutex
	sets   int
	fail   error
	gate   chan struct{} // when non-nil, Set waits for it to close
	values []string
}

func newRecordingStore() *recordingStore {
	return &recordingStore{MemoryStore: store.NewMemoryStore()}
}

func (r *recordingStore) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	gate, fail := r.gate, r.fail
	r.mu.Unlock()
	if gate != nil {
		<-gate
	}

	r.mu.Lock()
	r.sets++
	r.mu.Unlock()
	if fail != nil {
		return fail
	}

	r.mu.Lock()
	r.values = append(r.values, value)
	r.mu.Unlock()
	return r.MemoryStore.Set(ctx, key, value)
}

func (r *recordingStore) setCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sets
}

func populate(st *state.Store) {
	idea := st.AddIdea(state.IdeaDraft{
		Title:     "Write report",
		Layer:     models.LayerWork,
		Date:      "2026-03-01",
		Time:      "10:30",
		Reminders: []models.ReminderOffset{{Hours: 1, Minutes: 15}},
		IsUrgent:  true,
	})
	st.AddIdea(state.IdeaDraft{Title: "Read a book", EnergyBlock: models.EnergyLow})
	st.CompleteIdea(idea.ID)
	st.AddEvent(state.EventDraft{
		Title:           "Standup",
		Date:            "2026-03-02",
		Time:            "09:15",
		Recurrence:      models.RecurWeekly,
		RecurrenceDays:  []int{1, 2, 3, 4, 5},
		CustomReminders: []models.ReminderOffset{{Minutes: 10}},
		ReminderConfig:  &models.ReminderConfig{Channel: models.ChannelPopup, Frequency: models.FrequencyDaily},
	})
	st.Dispatch(state.SetCalmMode{Enabled: true})
	st.Dispatch(state.SetActiveLayer{Layer: models.LayerFilter(models.LayerProjects)})
}

func TestBridge_RoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryStore()

	st := newStore()
	b := persist.New(backend, persist.WithLogger(quietLogger()))
	b.Attach(ctx, st)
	populate(st)
	st.Dispatch(state.SetView{View: models.ViewAgenda}) // transient
	require.NoError(t, b.Flush(ctx))
	require.NoError(t, b.Close(ctx))

	restored := newStore()
	b2 := persist.New(backend, persist.WithLogger(quietLogger()))
	require.True(t, b2.Restore(ctx, restored))

	assert.Equal(t, state.Persisted(st.State()), state.Persisted(restored.State()))
	assert.Equal(t, models.ViewHome, restored.State().CurrentView, "transient fields are not persisted")
}

func TestBridge_RestoreMissingOrCorruptKeepsDefaults(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryStore()
	b := persist.New(backend, persist.WithLogger(quietLogger()))

	st := newStore()
	assert.False(t, b.Restore(ctx, st))
	assert.Equal(t, state.Initial(t0).Settings, st.State().Settings)

	require.NoError(t, backend.Set(ctx, persist.DefaultKey, "{not json"))
	assert.False(t, b.Restore(ctx, st))
	assert.Empty(t, st.State().Ideas)
}

func TestBridge_RestorePartialBlobMergesSettings(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryStore()
	require.NoError(t, backend.Set(ctx, "custom", `{"ideas":[{"id":"x","title":"legacy"}],"settings":{"modoCalma":true}}`))

	st := newStore()
	b := persist.New(backend, persist.WithKey("custom"), persist.WithLogger(quietLogger()))
	require.True(t, b.Restore(ctx, st))

	s := st.State()
	require.Len(t, s.Ideas, 1)
	assert.Equal(t, models.StatusSeed, s.Ideas[0].Status, "missing fields get defaults")
	assert.Empty(t, s.Events)
	assert.True(t, s.Settings.CalmMode)
	assert.Equal(t, models.SpaceToday, s.Settings.ActiveSpace)
}

func TestBridge_WriteFailureIsLoggedAndRetried(t *testing.T) {
	ctx := context.Background()
	backend := newRecordingStore()
	backend.fail = errors.New("quota exceeded")

	st := newStore()
	b := persist.New(backend, persist.WithLogger(quietLogger()))
	b.Attach(ctx, st)
	defer func() { _ = b.Close(ctx) }()

	idea := st.AddIdea(state.IdeaDraft{Title: "still here"})
	require.NoError(t, b.Flush(ctx))
	assert.Error(t, b.LastError())
	require.Len(t, st.ActiveIdeas(), 1)
	assert.Equal(t, idea.ID, st.ActiveIdeas()[0].ID)

	backend.mu.Lock()
	backend.fail = nil
	backend.mu.Unlock()

	st.Dispatch(state.SetCalmMode{Enabled: true})
	require.NoError(t, b.Flush(ctx))
	assert.NoError(t, b.LastError())

	raw, found, err := backend.Get(ctx, persist.DefaultKey)
	require.NoError(t, err)
	require.True(t, found)
	load, err := persist.Decode([]byte(raw))
	require.NoError(t, err)
	require.Len(t, load.Ideas, 1)
	assert.Equal(t, "still here", load.Ideas[0].Title)
}

func TestBridge_CoalescesToLatest(t *testing.T) {
	ctx := context.Background()
	backend := newRecordingStore()
	backend.gate = make(chan struct{})

	st := newStore()
	b := persist.New(backend, persist.WithLogger(quietLogger()))
	b.Attach(ctx, st)
	defer func() { _ = b.Close(ctx) }()

	const n = 25
	for i := 0; i < n; i++ {
		st.AddIdea(state.IdeaDraft{Title: "burst"})
	}
	backend.mu.Lock()
	close(backend.gate)
	backend.gate = nil
	backend.mu.Unlock()

	require.NoError(t, b.Flush(ctx))
	assert.Less(t, backend.setCount(), n)

	raw, _, err := backend.Get(ctx, persist.DefaultKey)
	require.NoError(t, err)
	load, err := persist.Decode([]byte(raw))
	require.NoError(t, err)
	assert.Len(t, load.Ideas, n, "the final write carries the latest state")
}

func TestBridge_DebounceCoalescesBursts(t *testing.T) {
	ctx := context.Background()
	backend := newRecordingStore()

	st := newStore()
	b := persist.New(backend, persist.WithDebounce(time.Hour), persist.WithLogger(quietLogger()))
	b.Attach(ctx, st)
	defer func() { _ = b.Close(ctx) }()

	for i := 0; i < 10; i++ {
		st.Dispatch(state.SetCalmMode{Enabled: i%2 == 0})
	}
	require.NoError(t, b.Flush(ctx), "flush skips the remaining debounce")
	assert.Equal(t, 1, backend.setCount())
}

func TestBridge_TransientChangesAreNotWritten(t *testing.T) {
	ctx := context.Background()
	backend := newRecordingStore()

	st := newStore()
	b := persist.New(backend, persist.WithLogger(quietLogger()))
	b.Attach(ctx, st)
	defer func() { _ = b.Close(ctx) }()

	st.Dispatch(state.SetView{View: models.ViewCalendar})
	st.Dispatch(state.ToggleQuickCapture{})
	st.Dispatch(state.DeleteIdea{ID: "nonexistent"})
	require.NoError(t, b.Flush(ctx))
	assert.Zero(t, backend.setCount())
}

func TestBridge_CloseWritesPending(t *testing.T) {
	ctx := context.Background()
	backend := newRecordingStore()

	st := newStore()
	b := persist.New(backend, persist.WithDebounce(time.Hour), persist.WithLogger(quietLogger()))
	b.Attach(ctx, st)

	st.AddIdea(state.IdeaDraft{Title: "last words"})
	require.NoError(t, b.Close(ctx))
	require.NoError(t, b.Close(ctx))

	_, found, err := backend.Get(ctx, persist.DefaultKey)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestBridge_FlushBeforeAttach(t *testing.T) {
	b := persist.New(store.NewMemoryStore())
	assert.ErrorIs(t, b.Flush(context.Background()), persist.ErrNotAttached)
}
