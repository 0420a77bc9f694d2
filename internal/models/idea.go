package models

import (
	"slices"
	"time"
)

// DateLayout is the calendar date format used for scheduling fields.
const DateLayout = "2006-01-02"

// TimeLayout is the clock time format used for scheduling fields.
const TimeLayout = "15:04"

// ReminderOffset is a lead time before a scheduled moment.
type ReminderOffset struct {
	Hours   int `json:"horas"`
	Minutes int `json:"minutos"`
}

// ReminderConfig describes how and how often reminders fire.
type ReminderConfig struct {
	Channel   ReminderChannel   `json:"tipo"`
	Frequency ReminderFrequency `json:"frecuencia"`
	Days      []int             `json:"dias,omitempty"` // weekday indices, 0 = Sunday
}

// Idea is a captured thought or task.
type Idea struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	Layer          Layer            `json:"layer,omitempty"`
	Status         IdeaStatus       `json:"status"`
	Type           IdeaType         `json:"type"`
	EnergyBlock    EnergyLevel      `json:"energyBlock,omitempty"`
	Date           string           `json:"date,omitempty"`
	Time           string           `json:"hora,omitempty"`
	Reminders      []ReminderOffset `json:"recordatorios,omitempty"`
	ReminderConfig *ReminderConfig  `json:"tipoRecordatorio,omitempty"`
	IsArchived     bool             `json:"isArchived"`
	IsUrgent       bool             `json:"isUrgent"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
	CompletedAt    *time.Time       `json:"completedAt,omitempty"`
}

// IsCompleted reports whether the idea carries a completion timestamp.
func (i *Idea) IsCompleted() bool { return i.CompletedAt != nil }

// IsActive reports whether the idea is neither archived nor completed.
func (i *Idea) IsActive() bool { return !i.IsArchived && i.CompletedAt == nil }

// Normalized fills defaults and drops empty optional collections so that
// an idea compares equal before and after a JSON round trip.
func (i Idea) Normalized() Idea {
	if i.Status == "" {
		i.Status = StatusSeed
	}
	if i.Type == "" {
		i.Type = TypeIdea
	}
	if len(i.Reminders) == 0 {
		i.Reminders = nil
	} else {
		i.Reminders = slices.Clone(i.Reminders)
	}
	i.ReminderConfig = i.ReminderConfig.normalized()
	return i
}

func (c *ReminderConfig) normalized() *ReminderConfig {
	if c == nil {
		return nil
	}
	out := *c
	if len(out.Days) == 0 {
		out.Days = nil
	} else {
		out.Days = slices.Clone(out.Days)
	}
	return &out
}
