package state

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ajitpratap0/focusflow/internal/models"
)

// ErrInvalidPayload is wrapped by every Validate error.
var ErrInvalidPayload = errors.New("invalid payload")

// IdeaDraft is the caller-supplied part of a new idea. Identity and
// timestamps are assigned by the reducer.
type IdeaDraft struct {
	Title          string                  `json:"title"`
	Description    string                  `json:"description,omitempty"`
	Layer          models.Layer            `json:"layer,omitempty"`
	Status         models.IdeaStatus       `json:"status,omitempty"`
	Type           models.IdeaType         `json:"type,omitempty"`
	EnergyBlock    models.EnergyLevel      `json:"energyBlock,omitempty"`
	Date           string                  `json:"date,omitempty"`
	Time           string                  `json:"hora,omitempty"`
	Reminders      []models.ReminderOffset `json:"recordatorios,omitempty"`
	ReminderConfig *models.ReminderConfig  `json:"tipoRecordatorio,omitempty"`
	IsArchived     bool                    `json:"isArchived,omitempty"`
	IsUrgent       bool                    `json:"isUrgent,omitempty"`
}

// Validate checks the draft before it is dispatched.
func (d IdeaDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidPayload)
	}
	if d.Layer != "" && !d.Layer.IsValid() {
		return fmt.Errorf("%w: unknown layer %q", ErrInvalidPayload, d.Layer)
	}
	if d.Status != "" && !d.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidPayload, d.Status)
	}
	if d.Type != "" && !d.Type.IsValid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidPayload, d.Type)
	}
	if d.EnergyBlock != "" && !d.EnergyBlock.IsValid() {
		return fmt.Errorf("%w: unknown energy block %q", ErrInvalidPayload, d.EnergyBlock)
	}
	return validateSchedule(d.Date, d.Time, false)
}

func (d IdeaDraft) build(id string, now time.Time) models.Idea {
	return models.Idea{
		ID:             id,
		Title:          d.Title,
		Description:    d.Description,
		Layer:          d.Layer,
		Status:         d.Status,
		Type:           d.Type,
		EnergyBlock:    d.EnergyBlock,
		Date:           d.Date,
		Time:           d.Time,
		Reminders:      d.Reminders,
		ReminderConfig: d.ReminderConfig,
		IsArchived:     d.IsArchived,
		IsUrgent:       d.IsUrgent,
		CreatedAt:      now,
		UpdatedAt:      now,
	}.Normalized()
}

// IdeaPatch is a partial update of an idea. Nil fields are left untouched.
// ID selects the target and is never written.
type IdeaPatch struct {
	ID             string                   `json:"id"`
	Title          *string                  `json:"title,omitempty"`
	Description    *string                  `json:"description,omitempty"`
	Layer          *models.Layer            `json:"layer,omitempty"`
	Status         *models.IdeaStatus       `json:"status,omitempty"`
	Type           *models.IdeaType         `json:"type,omitempty"`
	EnergyBlock    *models.EnergyLevel      `json:"energyBlock,omitempty"`
	Date           *string                  `json:"date,omitempty"`
	Time           *string                  `json:"hora,omitempty"`
	Reminders      *[]models.ReminderOffset `json:"recordatorios,omitempty"`
	ReminderConfig *models.ReminderConfig   `json:"tipoRecordatorio,omitempty"`
	IsArchived     *bool                    `json:"isArchived,omitempty"`
	IsUrgent       *bool                    `json:"isUrgent,omitempty"`
}

// Validate checks the patch before it is dispatched.
func (p IdeaPatch) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidPayload)
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidPayload)
	}
	if p.Layer != nil && *p.Layer != "" && !p.Layer.IsValid() {
		return fmt.Errorf("%w: unknown layer %q", ErrInvalidPayload, *p.Layer)
	}
	if p.Status != nil && !p.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidPayload, *p.Status)
	}
	if p.Type != nil && !p.Type.IsValid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidPayload, *p.Type)
	}
	if p.EnergyBlock != nil && *p.EnergyBlock != "" && !p.EnergyBlock.IsValid() {
		return fmt.Errorf("%w: unknown energy block %q", ErrInvalidPayload, *p.EnergyBlock)
	}
	var date, clock string
	if p.Date != nil {
		date = *p.Date
	}
	if p.Time != nil {
		clock = *p.Time
	}
	return validateSchedule(date, clock, false)
}

func (p IdeaPatch) apply(idea models.Idea) models.Idea {
	if p.Title != nil {
		idea.Title = *p.Title
	}
	if p.Description != nil {
		idea.Description = *p.Description
	}
	if p.Layer != nil {
		idea.Layer = *p.Layer
	}
	if p.Status != nil {
		idea.Status = *p.Status
	}
	if p.Type != nil {
		idea.Type = *p.Type
	}
	if p.EnergyBlock != nil {
		idea.EnergyBlock = *p.EnergyBlock
	}
	if p.Date != nil {
		idea.Date = *p.Date
	}
	if p.Time != nil {
		idea.Time = *p.Time
	}
	if p.Reminders != nil {
		idea.Reminders = *p.Reminders
	}
	if p.ReminderConfig != nil {
		idea.ReminderConfig = p.ReminderConfig
	}
	if p.IsArchived != nil {
		idea.IsArchived = *p.IsArchived
	}
	if p.IsUrgent != nil {
		idea.IsUrgent = *p.IsUrgent
	}
	return idea.Normalized()
}

// EventDraft is the caller-supplied part of a new agenda event.
type EventDraft struct {
	Title           string                  `json:"titulo"`
	Kind            models.EventKind        `json:"tipo,omitempty"`
	Description     string                  `json:"descripcion,omitempty"`
	Date            string                  `json:"fecha"`
	Time            string                  `json:"hora"`
	AnxietyLevel    models.AnxietyLevel     `json:"nivelAnsiedad,omitempty"`
	PriorityLevel   models.PriorityLevel    `json:"nivelPrioridad,omitempty"`
	ReminderConfig  *models.ReminderConfig  `json:"tipoRecordatorio,omitempty"`
	CustomReminders []models.ReminderOffset `json:"recordatoriosPersonalizados,omitempty"`
	Recurrence      models.Recurrence       `json:"frecuenciaRepeticion,omitempty"`
	RecurrenceDays  []int                   `json:"diasRepeticion,omitempty"`
	Completed       bool                    `json:"completado,omitempty"`
}

// Validate checks the draft before it is dispatched.
func (d EventDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: titulo is required", ErrInvalidPayload)
	}
	if d.Kind != "" && !d.Kind.IsValid() {
		return fmt.Errorf("%w: unknown event kind %q", ErrInvalidPayload, d.Kind)
	}
	if d.AnxietyLevel != "" && !d.AnxietyLevel.IsValid() {
		return fmt.Errorf("%w: unknown anxiety level %q", ErrInvalidPayload, d.AnxietyLevel)
	}
	if d.PriorityLevel != "" && !d.PriorityLevel.IsValid() {
		return fmt.Errorf("%w: unknown priority level %q", ErrInvalidPayload, d.PriorityLevel)
	}
	if d.Recurrence != "" && !d.Recurrence.IsValid() {
		return fmt.Errorf("%w: unknown recurrence %q", ErrInvalidPayload, d.Recurrence)
	}
	if err := validateWeekdays(d.RecurrenceDays); err != nil {
		return err
	}
	return validateSchedule(d.Date, d.Time, true)
}

func (d EventDraft) build(id string, now time.Time) models.AgendaEvent {
	return models.AgendaEvent{
		ID:              id,
		Title:           d.Title,
		Kind:            d.Kind,
		Description:     d.Description,
		Date:            d.Date,
		Time:            d.Time,
		AnxietyLevel:    d.AnxietyLevel,
		PriorityLevel:   d.PriorityLevel,
		ReminderConfig:  d.ReminderConfig,
		CustomReminders: d.CustomReminders,
		Recurrence:      d.Recurrence,
		RecurrenceDays:  d.RecurrenceDays,
		Completed:       d.Completed,
		CreatedAt:       now,
		UpdatedAt:       now,
	}.Normalized()
}

// EventPatch is a partial update of an agenda event.
type EventPatch struct {
	ID              string                   `json:"id"`
	Title           *string                  `json:"titulo,omitempty"`
	Kind            *models.EventKind        `json:"tipo,omitempty"`
	Description     *string                  `json:"descripcion,omitempty"`
	Date            *string                  `json:"fecha,omitempty"`
	Time            *string                  `json:"hora,omitempty"`
	AnxietyLevel    *models.AnxietyLevel     `json:"nivelAnsiedad,omitempty"`
	PriorityLevel   *models.PriorityLevel    `json:"nivelPrioridad,omitempty"`
	ReminderConfig  *models.ReminderConfig   `json:"tipoRecordatorio,omitempty"`
	CustomReminders *[]models.ReminderOffset `json:"recordatoriosPersonalizados,omitempty"`
	Recurrence      *models.Recurrence       `json:"frecuenciaRepeticion,omitempty"`
	RecurrenceDays  *[]int                   `json:"diasRepeticion,omitempty"`
}

// Validate checks the patch before it is dispatched.
func (p EventPatch) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidPayload)
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: titulo must not be empty", ErrInvalidPayload)
	}
	if p.Kind != nil && !p.Kind.IsValid() {
		return fmt.Errorf("%w: unknown event kind %q", ErrInvalidPayload, *p.Kind)
	}
	if p.AnxietyLevel != nil && !p.AnxietyLevel.IsValid() {
		return fmt.Errorf("%w: unknown anxiety level %q", ErrInvalidPayload, *p.AnxietyLevel)
	}
	if p.PriorityLevel != nil && !p.PriorityLevel.IsValid() {
		return fmt.Errorf("%w: unknown priority level %q", ErrInvalidPayload, *p.PriorityLevel)
	}
	if p.Recurrence != nil && !p.Recurrence.IsValid() {
		return fmt.Errorf("%w: unknown recurrence %q", ErrInvalidPayload, *p.Recurrence)
	}
	if p.RecurrenceDays != nil {
		if err := validateWeekdays(*p.RecurrenceDays); err != nil {
			return err
		}
	}
	if p.Date != nil && *p.Date == "" {
		return fmt.Errorf("%w: fecha must not be empty", ErrInvalidPayload)
	}
	if p.Time != nil && *p.Time == "" {
		return fmt.Errorf("%w: hora must not be empty", ErrInvalidPayload)
	}
	var date, clock string
	if p.Date != nil {
		date = *p.Date
	}
	if p.Time != nil {
		clock = *p.Time
	}
	return validateSchedule(date, clock, false)
}

func (p EventPatch) apply(ev models.AgendaEvent) models.AgendaEvent {
	if p.Title != nil {
		ev.Title = *p.Title
	}
	if p.Kind != nil {
		ev.Kind = *p.Kind
	}
	if p.Description != nil {
		ev.Description = *p.Description
	}
	if p.Date != nil {
		ev.Date = *p.Date
	}
	if p.Time != nil {
		ev.Time = *p.Time
	}
	if p.AnxietyLevel != nil {
		ev.AnxietyLevel = *p.AnxietyLevel
	}
	if p.PriorityLevel != nil {
		ev.PriorityLevel = *p.PriorityLevel
	}
	if p.ReminderConfig != nil {
		ev.ReminderConfig = p.ReminderConfig
	}
	if p.CustomReminders != nil {
		ev.CustomReminders = *p.CustomReminders
	}
	if p.Recurrence != nil {
		ev.Recurrence = *p.Recurrence
	}
	if p.RecurrenceDays != nil {
		ev.RecurrenceDays = *p.RecurrenceDays
	}
	return ev.Normalized()
}

func validateSchedule(date, clock string, required bool) error {
	if required && date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidPayload)
	}
	if required && clock == "" {
		return fmt.Errorf("%w: time is required", ErrInvalidPayload)
	}
	if date != "" {
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidPayload, date)
		}
	}
	if clock != "" {
		if _, err := time.Parse(models.TimeLayout, clock); err != nil {
			return fmt.Errorf("%w: time %q is not HH:mm", ErrInvalidPayload, clock)
		}
	}
	return nil
}

func validateWeekdays(days []int) error {
	for _, d := range days {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: weekday %d out of range 0-6", ErrInvalidPayload, d)
		}
	}
	return nil
}
