package state_test

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/focusflow/internal/models"
	"github.com/ajitpratap0/focusflow/internal/state"
	"github.com/ajitpratap0/focusflow/internal/testutil"
)

func newStore(t *testing.T) (*state.Store, *testutil.Clock) {
	t.Helper()
	clk := testutil.NewClock(t0)
	return state.New(state.WithClock(clk), state.WithIDs(&testutil.IDs{})), clk
}

func TestStore_BuyMilkScenario(t *testing.T) {
	st, _ := newStore(t)

	st.Dispatch(state.AddIdea{Draft: state.IdeaDraft{
		Title:  "Buy milk",
		Status: models.StatusSeed,
		Type:   models.TypeIdea,
	}})

	active := st.ActiveIdeas()
	require.Len(t, active, 1)
	assert.Equal(t, "Buy milk", active[0].Title)
	assert.NotEmpty(t, active[0].ID)
	assert.Nil(t, active[0].CompletedAt)
}

func TestStore_DentistScenario(t *testing.T) {
	st, _ := newStore(t)

	ev := st.AddEvent(state.EventDraft{
		Title:         "Dentist",
		Date:          "2026-03-01",
		Time:          "09:00",
		Kind:          models.KindEvent,
		AnxietyLevel:  models.AnxietyHigh,
		PriorityLevel: models.PriorityHigh,
		Recurrence:    models.RecurNone,
	})

	require.Len(t, st.UpcomingEvents(), 1)
	assert.Equal(t, ev.ID, st.UpcomingEvents()[0].ID)

	st.CompleteEvent(ev.ID)
	assert.Empty(t, st.UpcomingEvents())
	require.Len(t, st.CompletedEvents(), 1)
	assert.Equal(t, "Dentist", st.CompletedEvents()[0].Title)
}

func TestStore_IdeasByDateScenario(t *testing.T) {
	st, _ := newStore(t)
	a := st.AddIdea(state.IdeaDraft{Title: "a", Date: "2026-03-05"})
	b := st.AddIdea(state.IdeaDraft{Title: "b", Date: "2026-03-05"})
	c := st.AddIdea(state.IdeaDraft{Title: "archived", Date: "2026-03-05"})
	d := st.AddIdea(state.IdeaDraft{Title: "done", Date: "2026-03-05"})
	st.ArchiveIdea(c.ID)
	st.CompleteIdea(d.ID)

	got := st.IdeasByDate("2026-03-05")
	ids := []string{got[0].ID, got[1].ID}
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)
	assert.Len(t, got, 2)
}

func TestStore_SubscribeSeesCommitsInOrder(t *testing.T) {
	st, _ := newStore(t)

	var mu sync.Mutex
	var counts []int
	unsub := st.Subscribe(func(_, next state.AppState) {
		mu.Lock()
		counts = append(counts, len(next.Ideas))
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.AddIdea(state.IdeaDraft{Title: "x"})
		}()
	}
	wg.Wait()
	unsub()
	st.AddIdea(state.IdeaDraft{Title: "after"})

	require.Len(t, counts, 20)
	for i, n := range counts {
		assert.Equal(t, i+1, n)
	}
	assert.Len(t, st.State().Ideas, 21)
}

func TestStore_SelectedIdea(t *testing.T) {
	st, _ := newStore(t)
	_, ok := st.SelectedIdea()
	assert.False(t, ok)

	idea := st.AddIdea(state.IdeaDraft{Title: "pick me"})
	st.Dispatch(state.SelectIdea{ID: idea.ID})

	got, ok := st.SelectedIdea()
	require.True(t, ok)
	assert.Equal(t, idea.ID, got.ID)
}

func TestStore_TodayAndRecentUseStoreClock(t *testing.T) {
	st, clk := newStore(t)
	old := st.AddIdea(state.IdeaDraft{Title: "old"})
	clk.Advance(8 * 24 * time.Hour)
	fresh := st.AddIdea(state.IdeaDraft{Title: "fresh", Date: dateOf(t, clk)})
	st.AddIdea(state.IdeaDraft{Title: "tomorrow", Date: "2099-01-01"})

	recent := st.RecentIdeas()
	require.Len(t, recent, 2)
	assert.NotEqual(t, old.ID, recent[0].ID)

	today := st.IdeasToday()
	titles := make([]string, 0, len(today))
	for _, i := range today {
		titles = append(titles, i.Title)
	}
	assert.ElementsMatch(t, []string{"old", fresh.Title}, titles)
}

func dateOf(t *testing.T, clk *testutil.Clock) string {
	t.Helper()
	return clk.Now().Format(models.DateLayout)
}

func TestDecodeAction_AllKinds(t *testing.T) {
	payloads := map[state.Kind]string{
		state.KindAddIdea:            `{"title":"x"}`,
		state.KindUpdateIdea:         `{"id":"a","title":"y"}`,
		state.KindDeleteIdea:         `"a"`,
		state.KindArchiveIdea:        `"a"`,
		state.KindCompleteIdea:       `"a"`,
		state.KindAddEvent:           `{"titulo":"e","fecha":"2026-03-01","hora":"09:00"}`,
		state.KindUpdateEvent:        `{"id":"e","titulo":"f"}`,
		state.KindDeleteEvent:        `"e"`,
		state.KindCompleteEvent:      `"e"`,
		state.KindSetView:            `"agenda"`,
		state.KindSelectIdea:         `null`,
		state.KindToggleQuickCapture: ``,
		state.KindSetCalmMode:        `true`,
		state.KindSetActiveSpace:     `"recientes"`,
		state.KindSetActiveLayer:     `"todas"`,
		state.KindSetCurrentDate:     `"2026-03-01"`,
		state.KindLoadState:          `{"settings":{"modoCalma":true}}`,
	}
	require.Len(t, payloads, len(state.AllKinds()))

	for _, k := range state.AllKinds() {
		t.Run(string(k), func(t *testing.T) {
			a, err := state.DecodeAction(state.Envelope{Type: k, Payload: json.RawMessage(payloads[k])})
			require.NoError(t, err)
			assert.Equal(t, k, a.Kind())
			assert.NoError(t, state.Validate(a))
		})
	}
}

func TestDecodeAction_Errors(t *testing.T) {
	_, err := state.DecodeAction(state.Envelope{Type: "NOPE"})
	assert.True(t, errors.Is(err, state.ErrUnknownAction))

	_, err = state.DecodeAction(state.Envelope{Type: state.KindDeleteIdea})
	assert.True(t, errors.Is(err, state.ErrInvalidPayload))

	_, err = state.DecodeAction(state.Envelope{Type: state.KindSetCalmMode, Payload: json.RawMessage(`"yes"`)})
	assert.True(t, errors.Is(err, state.ErrInvalidPayload))
}

func TestValidate_RejectsBadInput(t *testing.T) {
	cases := map[string]state.Action{
		"empty title":    state.AddIdea{Draft: state.IdeaDraft{Title: "  "}},
		"bad layer":      state.AddIdea{Draft: state.IdeaDraft{Title: "x", Layer: "nope"}},
		"bad date":       state.AddIdea{Draft: state.IdeaDraft{Title: "x", Date: "03/01/2026"}},
		"event no time":  state.AddEvent{Draft: state.EventDraft{Title: "x", Date: "2026-03-01"}},
		"bad weekday":    state.AddEvent{Draft: state.EventDraft{Title: "x", Date: "2026-03-01", Time: "09:00", RecurrenceDays: []int{7}}},
		"patch no id":    state.UpdateIdea{Patch: state.IdeaPatch{Title: ptr("x")}},
		"bad view":       state.SetView{View: "nowhere"},
		"bad space":      state.SetActiveSpace{Space: "elsewhere"},
		"delete no id":   state.DeleteIdea{},
		"event bad hour": state.UpdateEvent{Patch: state.EventPatch{ID: "e", Time: ptr("25:00")}},
	}
	for name, a := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, state.Validate(a), state.ErrInvalidPayload)
		})
	}
}
