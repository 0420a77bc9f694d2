package state_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/focusflow/internal/models"
	"github.com/ajitpratap0/focusflow/internal/state"
	"github.com/ajitpratap0/focusflow/internal/testutil"
)

var t0 = time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)

func newEnv() (state.Env, *testutil.Clock) {
	clk := testutil.NewClock(t0)
	return state.Env{Clock: clk, IDs: &testutil.IDs{}}, clk
}

func ptr[T any](v T) *T { return &v }

func TestReduce_AddIdeaPrependsWithGeneratedIdentity(t *testing.T) {
	env, clk := newEnv()
	s := state.Initial(t0)

	s = state.Reduce(s, state.AddIdea{Draft: state.IdeaDraft{Title: "first"}}, env)
	clk.Advance(time.Minute)
	s = state.Reduce(s, state.AddIdea{Draft: state.IdeaDraft{Title: "second"}}, env)

	require.Len(t, s.Ideas, 2)
	assert.Equal(t, "second", s.Ideas[0].Title)
	assert.Equal(t, "id-2", s.Ideas[0].ID)
	assert.Equal(t, "id-1", s.Ideas[1].ID)
	assert.Equal(t, t0.Add(time.Minute), s.Ideas[0].CreatedAt)
	assert.Equal(t, s.Ideas[0].CreatedAt, s.Ideas[0].UpdatedAt)
	assert.Equal(t, models.StatusSeed, s.Ideas[0].Status)
	assert.Equal(t, models.TypeIdea, s.Ideas[0].Type)
	assert.Nil(t, s.Ideas[0].CompletedAt)
}

func TestReduce_DoesNotMutatePreviousState(t *testing.T) {
	env, _ := newEnv()
	s0 := state.Reduce(state.Initial(t0), state.AddIdea{Draft: state.IdeaDraft{Title: "a"}}, env)
	before := s0.Ideas[0]

	s1 := state.Reduce(s0, state.UpdateIdea{Patch: state.IdeaPatch{ID: before.ID, Title: ptr("b")}}, env)
	_ = state.Reduce(s1, state.ArchiveIdea{ID: before.ID}, env)

	assert.Equal(t, before, s0.Ideas[0])
	assert.Equal(t, "b", s1.Ideas[0].Title)
	assert.False(t, s1.Ideas[0].IsArchived)
}

func TestReduce_UpdateKeepsIDAndCreatedAt(t *testing.T) {
	env, clk := newEnv()
	s := state.Reduce(state.Initial(t0), state.AddIdea{Draft: state.IdeaDraft{Title: "a"}}, env)
	orig := s.Ideas[0]

	clk.Advance(time.Hour)
	s = state.Reduce(s, state.UpdateIdea{Patch: state.IdeaPatch{ID: orig.ID, Title: ptr("x")}}, env)

	got := s.Ideas[0]
	assert.Equal(t, orig.ID, got.ID)
	assert.Equal(t, orig.CreatedAt, got.CreatedAt)
	assert.Equal(t, "x", got.Title)
	assert.Equal(t, t0.Add(time.Hour), got.UpdatedAt)
}

func TestReduce_UnknownIDIsNoOp(t *testing.T) {
	env, _ := newEnv()
	s := state.Reduce(state.Initial(t0), state.AddIdea{Draft: state.IdeaDraft{Title: "a"}}, env)
	s = state.Reduce(s, state.AddEvent{Draft: state.EventDraft{Title: "e", Date: "2026-03-01", Time: "09:00"}}, env)

	actions := []state.Action{
		state.DeleteIdea{ID: "nonexistent"},
		state.UpdateIdea{Patch: state.IdeaPatch{ID: "nonexistent", Title: ptr("x")}},
		state.ArchiveIdea{ID: "nonexistent"},
		state.CompleteIdea{ID: "nonexistent"},
		state.DeleteEvent{ID: "nonexistent"},
		state.UpdateEvent{Patch: state.EventPatch{ID: "nonexistent"}},
		state.CompleteEvent{ID: "nonexistent"},
	}
	for _, a := range actions {
		t.Run(string(a.Kind()), func(t *testing.T) {
			next := state.Reduce(s, a, env)
			assert.Equal(t, s.Ideas, next.Ideas)
			assert.Equal(t, s.Events, next.Events)
			assert.False(t, state.PersistedChanged(s, next))
		})
	}
}

func TestReduce_CompleteIdeaTwiceClearsCompletedAt(t *testing.T) {
	env, clk := newEnv()
	s := state.Reduce(state.Initial(t0), state.AddIdea{Draft: state.IdeaDraft{Title: "a"}}, env)
	id := s.Ideas[0].ID

	clk.Advance(time.Minute)
	s = state.Reduce(s, state.CompleteIdea{ID: id}, env)
	require.NotNil(t, s.Ideas[0].CompletedAt)
	assert.Equal(t, t0.Add(time.Minute), *s.Ideas[0].CompletedAt)

	s = state.Reduce(s, state.CompleteIdea{ID: id}, env)
	assert.Nil(t, s.Ideas[0].CompletedAt)
}

func TestReduce_ArchiveToggles(t *testing.T) {
	env, _ := newEnv()
	s := state.Reduce(state.Initial(t0), state.AddIdea{Draft: state.IdeaDraft{Title: "a"}}, env)
	id := s.Ideas[0].ID

	s = state.Reduce(s, state.ArchiveIdea{ID: id}, env)
	assert.True(t, s.Ideas[0].IsArchived)
	s = state.Reduce(s, state.ArchiveIdea{ID: id}, env)
	assert.False(t, s.Ideas[0].IsArchived)
}

func TestReduce_UpdatedAtIsMonotonic(t *testing.T) {
	env, clk := newEnv()
	s := state.Reduce(state.Initial(t0), state.AddIdea{Draft: state.IdeaDraft{Title: "a"}}, env)
	id := s.Ideas[0].ID

	clk.Advance(-time.Hour)
	s = state.Reduce(s, state.ArchiveIdea{ID: id}, env)
	assert.Equal(t, t0, s.Ideas[0].UpdatedAt)
	assert.False(t, s.Ideas[0].UpdatedAt.Before(s.Ideas[0].CreatedAt))
}

func TestReduce_DeleteSelectedClearsSelection(t *testing.T) {
	env, _ := newEnv()
	s := state.Reduce(state.Initial(t0), state.AddIdea{Draft: state.IdeaDraft{Title: "a"}}, env)
	s = state.Reduce(s, state.AddIdea{Draft: state.IdeaDraft{Title: "b"}}, env)
	a, b := s.Ideas[1].ID, s.Ideas[0].ID

	s = state.Reduce(s, state.SelectIdea{ID: a}, env)
	assert.Equal(t, models.ViewDetail, s.CurrentView)

	s = state.Reduce(s, state.DeleteIdea{ID: b}, env)
	assert.Equal(t, a, s.SelectedIdeaID)

	s = state.Reduce(s, state.DeleteIdea{ID: a}, env)
	assert.Empty(t, s.SelectedIdeaID)
	assert.Empty(t, s.Ideas)
}

func TestReduce_SelectNilKeepsView(t *testing.T) {
	env, _ := newEnv()
	s := state.Reduce(state.Initial(t0), state.SetView{View: models.ViewAgenda}, env)
	s = state.Reduce(s, state.SelectIdea{}, env)
	assert.Equal(t, models.ViewAgenda, s.CurrentView)
	assert.Empty(t, s.SelectedIdeaID)
}

func TestReduce_EventNormalization(t *testing.T) {
	env, _ := newEnv()
	s := state.Reduce(state.Initial(t0), state.AddEvent{Draft: state.EventDraft{
		Title:           "Gym",
		Date:            "2026-03-02",
		Time:            "07:30",
		CustomReminders: []models.ReminderOffset{{Hours: 1}},
		Recurrence:      models.RecurDaily,
		RecurrenceDays:  []int{1, 3},
	}}, env)

	ev := s.Events[0]
	assert.Equal(t, models.AnxietyMedium, ev.AnxietyLevel)
	assert.Equal(t, models.PriorityNormal, ev.PriorityLevel)
	assert.Equal(t, models.KindEvent, ev.Kind)
	assert.True(t, ev.HasReminder)
	assert.Nil(t, ev.RecurrenceDays, "days only kept for weekly/custom")

	s = state.Reduce(s, state.UpdateEvent{Patch: state.EventPatch{
		ID:              ev.ID,
		Recurrence:      ptr(models.RecurWeekly),
		RecurrenceDays:  &[]int{1, 3},
		CustomReminders: &[]models.ReminderOffset{},
	}}, env)
	ev = s.Events[0]
	assert.Equal(t, []int{1, 3}, ev.RecurrenceDays)
	assert.False(t, ev.HasReminder)
}

func TestReduce_CompleteEventFlipsBoolean(t *testing.T) {
	env, _ := newEnv()
	s := state.Reduce(state.Initial(t0), state.AddEvent{Draft: state.EventDraft{Title: "e", Date: "2026-03-01", Time: "09:00"}}, env)
	id := s.Events[0].ID

	s = state.Reduce(s, state.CompleteEvent{ID: id}, env)
	assert.True(t, s.Events[0].Completed)
	s = state.Reduce(s, state.CompleteEvent{ID: id}, env)
	assert.False(t, s.Events[0].Completed)
}

func TestReduce_SettingsTransitions(t *testing.T) {
	env, _ := newEnv()
	s := state.Initial(t0)

	s = state.Reduce(s, state.SetCalmMode{Enabled: true}, env)
	s = state.Reduce(s, state.SetActiveSpace{Space: models.SpaceRecent}, env)
	s = state.Reduce(s, state.SetActiveLayer{Layer: models.LayerFilter(models.LayerWork)}, env)
	s = state.Reduce(s, state.ToggleQuickCapture{}, env)
	s = state.Reduce(s, state.SetCurrentDate{Date: t0.AddDate(0, 0, 3)}, env)

	assert.True(t, s.Settings.CalmMode)
	assert.Equal(t, models.SpaceRecent, s.Settings.ActiveSpace)
	assert.Equal(t, models.LayerFilter("trabajo"), s.Settings.ActiveLayer)
	assert.True(t, s.QuickCaptureOpen)
	assert.Equal(t, t0.AddDate(0, 0, 3), s.CurrentDate)
}

func TestReduce_LoadStateMergesSettings(t *testing.T) {
	env, _ := newEnv()
	s := state.Initial(t0)
	s = state.Reduce(s, state.SetActiveSpace{Space: models.SpaceArchived}, env)
	s = state.Reduce(s, state.AddIdea{Draft: state.IdeaDraft{Title: "kept"}}, env)
	ideas := s.Ideas

	s = state.Reduce(s, state.LoadState{Settings: &models.SettingsPatch{CalmMode: ptr(true)}}, env)

	assert.True(t, s.Settings.CalmMode)
	assert.Equal(t, models.SpaceArchived, s.Settings.ActiveSpace)
	assert.Equal(t, models.LayerAll, s.Settings.ActiveLayer)
	assert.Equal(t, ideas, s.Ideas, "absent ideas are not replaced")
}

func TestReduce_LoadStateEmptySliceReplaces(t *testing.T) {
	env, _ := newEnv()
	s := state.Reduce(state.Initial(t0), state.AddIdea{Draft: state.IdeaDraft{Title: "gone"}}, env)
	s = state.Reduce(s, state.LoadState{Ideas: []models.Idea{}}, env)
	assert.Empty(t, s.Ideas)
}

func TestReduce_TransientChangesDoNotTouchPersistedSubset(t *testing.T) {
	env, _ := newEnv()
	s := state.Reduce(state.Initial(t0), state.AddIdea{Draft: state.IdeaDraft{Title: "a"}}, env)

	for _, a := range []state.Action{
		state.SetView{View: models.ViewAgenda},
		state.SelectIdea{ID: s.Ideas[0].ID},
		state.ToggleQuickCapture{},
		state.SetCurrentDate{Date: t0.AddDate(0, 0, 1)},
	} {
		next := state.Reduce(s, a, env)
		assert.False(t, state.PersistedChanged(s, next), a.Kind())
		s = next
	}
	next := state.Reduce(s, state.SetCalmMode{Enabled: true}, env)
	assert.True(t, state.PersistedChanged(s, next))
}
