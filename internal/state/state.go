// Package state holds the application state tree and the closed set of
// transitions that may change it.
package state

import (
	"time"

	"github.com/ajitpratap0/focusflow/internal/models"
)

// AppState is the root of the in-memory state.
//
// Values are treated as immutable: Reduce never writes into the slices of
// an existing AppState, it builds new ones. Callers must do the same.
type AppState struct {
	Ideas    []models.Idea        `json:"ideas"`
	Events   []models.AgendaEvent `json:"eventos"`
	Settings models.Settings      `json:"settings"`

	// Transient presentation fields. Never persisted.
	CurrentView      models.View `json:"currentView"`
	SelectedIdeaID   string      `json:"selectedIdeaId,omitempty"`
	QuickCaptureOpen bool        `json:"isQuickCaptureOpen"`
	CurrentDate      time.Time   `json:"currentDate"`
}

// Initial returns the state of a fresh install.
func Initial(now time.Time) AppState {
	return AppState{
		Ideas:       []models.Idea{},
		Events:      []models.AgendaEvent{},
		Settings:    models.DefaultSettings(),
		CurrentView: models.ViewHome,
		CurrentDate: now,
	}
}

// Persisted extracts the subset of s that is written to storage.
func Persisted(s AppState) models.Snapshot {
	return models.Snapshot{
		Ideas:    s.Ideas,
		Events:   s.Events,
		Settings: s.Settings,
	}
}

// PersistedChanged reports whether the persisted subset differs between
// prev and next. Collections are compared by identity, which is sound
// because Reduce returns the previous slice whenever it leaves a
// collection untouched.
func PersistedChanged(prev, next AppState) bool {
	return !sameSlice(prev.Ideas, next.Ideas) ||
		!sameSlice(prev.Events, next.Events) ||
		prev.Settings != next.Settings
}

func sameSlice[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

// FindIdea returns the idea with the given id.
func (s AppState) FindIdea(id string) (models.Idea, bool) {
	if i := indexIdea(s.Ideas, id); i >= 0 {
		return s.Ideas[i], true
	}
	return models.Idea{}, false
}

// FindEvent returns the event with the given id.
func (s AppState) FindEvent(id string) (models.AgendaEvent, bool) {
	if i := indexEvent(s.Events, id); i >= 0 {
		return s.Events[i], true
	}
	return models.AgendaEvent{}, false
}

func indexIdea(ideas []models.Idea, id string) int {
	for i := range ideas {
		if ideas[i].ID == id {
			return i
		}
	}
	return -1
}

func indexEvent(events []models.AgendaEvent, id string) int {
	for i := range events {
		if events[i].ID == id {
			return i
		}
	}
	return -1
}
