// Package query implements read-only projections over ideas and events.
// Every function is pure and returns a fresh slice; inputs are never
// modified.
package query

import (
	"cmp"
	"slices"
	"time"

	"github.com/ajitpratap0/focusflow/internal/models"
)

// RecentWindow is how far back RecentIdeas looks.
const RecentWindow = 7 * 24 * time.Hour

// DateKey formats t as YYYY-MM-DD in t's own location.
func DateKey(t time.Time) string {
	return t.Format(models.DateLayout)
}

func filterIdeas(ideas []models.Idea, keep func(*models.Idea) bool) []models.Idea {
	out := make([]models.Idea, 0, len(ideas))
	for i := range ideas {
		if keep(&ideas[i]) {
			out = append(out, ideas[i])
		}
	}
	return out
}

func filterEvents(events []models.AgendaEvent, keep func(*models.AgendaEvent) bool) []models.AgendaEvent {
	out := make([]models.AgendaEvent, 0, len(events))
	for i := range events {
		if keep(&events[i]) {
			out = append(out, events[i])
		}
	}
	return out
}

// IdeasToday returns active ideas dated today or carrying no date.
func IdeasToday(ideas []models.Idea, today string) []models.Idea {
	return filterIdeas(ideas, func(i *models.Idea) bool {
		return i.IsActive() && (i.Date == today || i.Date == "")
	})
}

// ActiveIdeas returns ideas that are neither archived nor completed.
func ActiveIdeas(ideas []models.Idea) []models.Idea {
	return filterIdeas(ideas, (*models.Idea).IsActive)
}

// RecentIdeas returns ideas created within RecentWindow of now, newest
// first.
func RecentIdeas(ideas []models.Idea, now time.Time) []models.Idea {
	cutoff := now.Add(-RecentWindow)
	out := filterIdeas(ideas, func(i *models.Idea) bool {
		return !i.CreatedAt.Before(cutoff)
	})
	slices.SortStableFunc(out, func(a, b models.Idea) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

// ArchivedIdeas returns archived ideas.
func ArchivedIdeas(ideas []models.Idea) []models.Idea {
	return filterIdeas(ideas, func(i *models.Idea) bool { return i.IsArchived })
}

// CompletedIdeas returns ideas with a completion timestamp.
func CompletedIdeas(ideas []models.Idea) []models.Idea {
	return filterIdeas(ideas, (*models.Idea).IsCompleted)
}

// IdeasByDate returns active ideas scheduled exactly on date.
func IdeasByDate(ideas []models.Idea, date string) []models.Idea {
	return filterIdeas(ideas, func(i *models.Idea) bool {
		return i.IsActive() && i.Date == date
	})
}

// IdeasByLayer returns active ideas in layer.
func IdeasByLayer(ideas []models.Idea, layer models.Layer) []models.Idea {
	return filterIdeas(ideas, func(i *models.Idea) bool {
		return i.IsActive() && i.Layer == layer
	})
}

// ScheduledIdeas returns active ideas that carry a date, in calendar order.
func ScheduledIdeas(ideas []models.Idea) []models.Idea {
	out := filterIdeas(ideas, func(i *models.Idea) bool {
		return i.IsActive() && i.Date != ""
	})
	slices.SortStableFunc(out, func(a, b models.Idea) int {
		return cmp.Or(cmp.Compare(a.Date, b.Date), cmp.Compare(a.Time, b.Time))
	})
	return out
}

// IdeasInSpace resolves a mental space to its idea list.
func IdeasInSpace(ideas []models.Idea, space models.MentalSpace, now time.Time) []models.Idea {
	switch space {
	case models.SpaceActive:
		return ActiveIdeas(ideas)
	case models.SpaceRecent:
		return RecentIdeas(ideas, now)
	case models.SpaceArchived:
		return ArchivedIdeas(ideas)
	case models.SpaceCalendar:
		return ScheduledIdeas(ideas)
	default:
		return IdeasToday(ideas, DateKey(now))
	}
}

// InLayer returns the ideas that pass filter, whatever their status.
func InLayer(ideas []models.Idea, filter models.LayerFilter) []models.Idea {
	return filterIdeas(ideas, func(i *models.Idea) bool {
		return filter.Matches(i.Layer)
	})
}

// Visible applies the user's settings: the active mental space, then the
// active layer filter.
func Visible(ideas []models.Idea, s models.Settings, now time.Time) []models.Idea {
	return InLayer(IdeasInSpace(ideas, s.ActiveSpace, now), s.ActiveLayer)
}

// EventsToday returns pending events dated today.
func EventsToday(events []models.AgendaEvent, today string) []models.AgendaEvent {
	return EventsByDate(events, today)
}

// EventsByDate returns pending events dated exactly date.
func EventsByDate(events []models.AgendaEvent, date string) []models.AgendaEvent {
	return filterEvents(events, func(e *models.AgendaEvent) bool {
		return !e.Completed && e.Date == date
	})
}

// UpcomingEvents returns pending events dated today or later, in
// calendar order.
func UpcomingEvents(events []models.AgendaEvent, today string) []models.AgendaEvent {
	out := filterEvents(events, func(e *models.AgendaEvent) bool {
		return !e.Completed && e.Date >= today
	})
	SortChronologically(out)
	return out
}

// CompletedEvents returns completed events.
func CompletedEvents(events []models.AgendaEvent) []models.AgendaEvent {
	return filterEvents(events, func(e *models.AgendaEvent) bool { return e.Completed })
}

// SortChronologically orders events by date, then time, in place. Ties
// keep their relative order.
func SortChronologically(events []models.AgendaEvent) {
	slices.SortStableFunc(events, func(a, b models.AgendaEvent) int {
		return cmp.Or(cmp.Compare(a.Date, b.Date), cmp.Compare(a.Time, b.Time))
	})
}

// ComputeStats summarizes ideas and events as of today.
func ComputeStats(ideas []models.Idea, events []models.AgendaEvent, today string) models.Stats {
	st := models.Stats{
		TotalIdeas:   len(ideas),
		IdeasByLayer: make(map[string]int),
		TotalEvents:  len(events),
	}
	for i := range ideas {
		idea := &ideas[i]
		switch {
		case idea.IsArchived:
			st.ArchivedIdeas++
		case idea.IsCompleted():
			st.CompletedIdeas++
		default:
			st.ActiveIdeas++
		}
		if idea.IsArchived && idea.IsCompleted() {
			st.CompletedIdeas++
		}
		if idea.IsUrgent && idea.IsActive() {
			st.UrgentIdeas++
		}
		if idea.Layer != "" {
			st.IdeasByLayer[string(idea.Layer)]++
		}
	}
	for i := range events {
		if events[i].Completed {
			st.CompletedEvents++
		} else if events[i].Date >= today {
			st.UpcomingEvents++
		}
	}
	return st
}
