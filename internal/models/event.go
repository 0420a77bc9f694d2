package models

import (
	"slices"
	"time"
)

// AgendaEvent is a scheduled occurrence on the calendar.
//
// Unlike Idea, completion is a plain boolean and both Date and Time are
// mandatory.
type AgendaEvent struct {
	ID              string           `json:"id"`
	Title           string           `json:"titulo"`
	Kind            EventKind        `json:"tipo"`
	Description     string           `json:"descripcion,omitempty"`
	Date            string           `json:"fecha"`
	Time            string           `json:"hora"`
	AnxietyLevel    AnxietyLevel     `json:"nivelAnsiedad"`
	PriorityLevel   PriorityLevel    `json:"nivelPrioridad"`
	HasReminder     bool             `json:"tieneRecordatorio"`
	ReminderConfig  *ReminderConfig  `json:"tipoRecordatorio,omitempty"`
	CustomReminders []ReminderOffset `json:"recordatoriosPersonalizados,omitempty"`
	Recurrence      Recurrence       `json:"frecuenciaRepeticion"`
	RecurrenceDays  []int            `json:"diasRepeticion,omitempty"`
	Completed       bool             `json:"completado"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// Normalized applies the event invariants: default levels and recurrence,
// HasReminder derived from CustomReminders, and RecurrenceDays kept only
// for weekly or custom recurrence.
func (e AgendaEvent) Normalized() AgendaEvent {
	if e.Kind == "" {
		e.Kind = KindEvent
	}
	if e.AnxietyLevel == "" {
		e.AnxietyLevel = AnxietyMedium
	}
	if e.PriorityLevel == "" {
		e.PriorityLevel = PriorityNormal
	}
	if e.Recurrence == "" {
		e.Recurrence = RecurNone
	}
	if len(e.CustomReminders) == 0 {
		e.CustomReminders = nil
	} else {
		e.CustomReminders = slices.Clone(e.CustomReminders)
	}
	e.HasReminder = len(e.CustomReminders) > 0
	if !e.Recurrence.UsesDays() || len(e.RecurrenceDays) == 0 {
		e.RecurrenceDays = nil
	} else {
		e.RecurrenceDays = slices.Clone(e.RecurrenceDays)
	}
	e.ReminderConfig = e.ReminderConfig.normalized()
	return e
}
