package state

import (
	"slices"
	"time"

	"github.com/ajitpratap0/focusflow/internal/models"
)

// Reduce applies a to s and returns the resulting state. It never mutates
// s, and collections a transition does not touch are returned as the same
// slice. Transitions that name an unknown id return s unchanged.
func Reduce(s AppState, a Action, env Env) AppState {
	switch a := a.(type) {
	case AddIdea:
		now := env.Clock.Now()
		idea := a.Draft.build(env.IDs.NewID(), now)
		s.Ideas = prepend(s.Ideas, idea)

	case UpdateIdea:
		s.Ideas = updateIdea(s.Ideas, a.Patch.ID, env, a.Patch.apply)

	case DeleteIdea:
		i := indexIdea(s.Ideas, a.ID)
		if i < 0 {
			return s
		}
		s.Ideas = slices.Delete(slices.Clone(s.Ideas), i, i+1)
		if s.SelectedIdeaID == a.ID {
			s.SelectedIdeaID = ""
		}

	case ArchiveIdea:
		s.Ideas = updateIdea(s.Ideas, a.ID, env, func(idea models.Idea) models.Idea {
			idea.IsArchived = !idea.IsArchived
			return idea
		})

	case CompleteIdea:
		s.Ideas = updateIdea(s.Ideas, a.ID, env, func(idea models.Idea) models.Idea {
			if idea.CompletedAt != nil {
				idea.CompletedAt = nil
			} else {
				now := env.Clock.Now()
				idea.CompletedAt = &now
			}
			return idea
		})

	case AddEvent:
		now := env.Clock.Now()
		ev := a.Draft.build(env.IDs.NewID(), now)
		s.Events = prepend(s.Events, ev)

	case UpdateEvent:
		s.Events = updateEvent(s.Events, a.Patch.ID, env, a.Patch.apply)

	case DeleteEvent:
		i := indexEvent(s.Events, a.ID)
		if i < 0 {
			return s
		}
		s.Events = slices.Delete(slices.Clone(s.Events), i, i+1)

	case CompleteEvent:
		s.Events = updateEvent(s.Events, a.ID, env, func(ev models.AgendaEvent) models.AgendaEvent {
			ev.Completed = !ev.Completed
			return ev
		})

	case SetView:
		s.CurrentView = a.View

	case SelectIdea:
		s.SelectedIdeaID = a.ID
		if a.ID != "" {
			s.CurrentView = models.ViewDetail
		}

	case ToggleQuickCapture:
		s.QuickCaptureOpen = !s.QuickCaptureOpen

	case SetCalmMode:
		s.Settings.CalmMode = a.Enabled

	case SetActiveSpace:
		s.Settings.ActiveSpace = a.Space

	case SetActiveLayer:
		s.Settings.ActiveLayer = a.Layer

	case SetCurrentDate:
		s.CurrentDate = a.Date

	case LoadState:
		if a.Ideas != nil {
			ideas := make([]models.Idea, len(a.Ideas))
			for i := range a.Ideas {
				ideas[i] = a.Ideas[i].Normalized()
			}
			s.Ideas = ideas
		}
		if a.Events != nil {
			events := make([]models.AgendaEvent, len(a.Events))
			for i := range a.Events {
				events[i] = a.Events[i].Normalized()
			}
			s.Events = events
		}
		if a.Settings != nil {
			s.Settings = s.Settings.Merge(*a.Settings)
		}
		if a.CurrentView != "" {
			s.CurrentView = a.CurrentView
		}
	}
	return s
}

func prepend[T any](list []T, v T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, v)
	return append(out, list...)
}

func updateIdea(ideas []models.Idea, id string, env Env, fn func(models.Idea) models.Idea) []models.Idea {
	i := indexIdea(ideas, id)
	if i < 0 {
		return ideas
	}
	out := slices.Clone(ideas)
	prev := out[i]
	next := fn(prev)
	next.ID = prev.ID
	next.CreatedAt = prev.CreatedAt
	next.UpdatedAt = touch(prev.UpdatedAt, env.Clock.Now())
	out[i] = next
	return out
}

func updateEvent(events []models.AgendaEvent, id string, env Env, fn func(models.AgendaEvent) models.AgendaEvent) []models.AgendaEvent {
	i := indexEvent(events, id)
	if i < 0 {
		return events
	}
	out := slices.Clone(events)
	prev := out[i]
	next := fn(prev)
	next.ID = prev.ID
	next.CreatedAt = prev.CreatedAt
	next.UpdatedAt = touch(prev.UpdatedAt, env.Clock.Now())
	out[i] = next
	return out
}

// touch returns the refreshed updatedAt, never moving it backwards.
func touch(prev, now time.Time) time.Time {
	if now.Before(prev) {
		return prev
	}
	return now
}
