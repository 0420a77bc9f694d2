package models

import "time"

// Snapshot is the persisted subset of the application state.
type Snapshot struct {
	Ideas    []Idea        `json:"ideas"`
	Events   []AgendaEvent `json:"eventos"`
	Settings Settings      `json:"settings"`
}

// ExportVersion is stamped on every export document.
const ExportVersion = "2.0.0"

// ExportDocument is the user-facing backup file.
type ExportDocument struct {
	Ideas      []Idea    `json:"ideas"`
	Settings   Settings  `json:"settings"`
	ExportedAt time.Time `json:"exportedAt"`
	Version    string    `json:"version"`
}

// Stats summarizes the current collections.
type Stats struct {
	TotalIdeas      int            `json:"total_ideas"`
	ActiveIdeas     int            `json:"active_ideas"`
	CompletedIdeas  int            `json:"completed_ideas"`
	ArchivedIdeas   int            `json:"archived_ideas"`
	UrgentIdeas     int            `json:"urgent_ideas"`
	IdeasByLayer    map[string]int `json:"ideas_by_layer"`
	TotalEvents     int            `json:"total_events"`
	UpcomingEvents  int            `json:"upcoming_events"`
	CompletedEvents int            `json:"completed_events"`
}
