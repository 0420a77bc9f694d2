package models

// Layer classifies an idea into one of a fixed set of categories.
type Layer string

const (
	LayerPersonal    Layer = "personal"
	LayerWork        Layer = "trabajo"
	LayerProjects    Layer = "proyectos"
	LayerInspiration Layer = "inspiracion"
	LayerReferences  Layer = "referencias"
)

// ValidLayers is the set of all valid layers.
var ValidLayers = []Layer{
	LayerPersonal,
	LayerWork,
	LayerProjects,
	LayerInspiration,
	LayerReferences,
}

// IsValid returns true if the layer is recognized.
func (l Layer) IsValid() bool {
	for _, v := range ValidLayers {
		if l == v {
			return true
		}
	}
	return false
}

// LayerFilter is either a Layer or LayerAll.
type LayerFilter string

// LayerAll selects every layer.
const LayerAll LayerFilter = "todas"

// IsValid returns true if the filter is LayerAll or a valid layer.
func (f LayerFilter) IsValid() bool {
	return f == LayerAll || Layer(f).IsValid()
}

// Matches reports whether an idea in layer l passes the filter.
func (f LayerFilter) Matches(l Layer) bool {
	return f == LayerAll || f == "" || Layer(f) == l
}

// IdeaStatus is the lifecycle stage of an idea.
type IdeaStatus string

const (
	StatusSeed       IdeaStatus = "semilla"
	StatusInProgress IdeaStatus = "en_desarrollo"
	StatusReady      IdeaStatus = "lista"
)

// ValidIdeaStatuses is the set of all valid idea statuses.
var ValidIdeaStatuses = []IdeaStatus{StatusSeed, StatusInProgress, StatusReady}

// IsValid returns true if the status is recognized.
func (s IdeaStatus) IsValid() bool {
	for _, v := range ValidIdeaStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IdeaType distinguishes a plain idea from a project.
type IdeaType string

const (
	TypeIdea    IdeaType = "idea"
	TypeProject IdeaType = "proyecto"
)

// IsValid returns true if the type is recognized.
func (t IdeaType) IsValid() bool {
	return t == TypeIdea || t == TypeProject
}

// EnergyLevel is the effort hint attached to ideas and routines.
type EnergyLevel string

const (
	EnergyHigh   EnergyLevel = "alta"
	EnergyMedium EnergyLevel = "media"
	EnergyLow    EnergyLevel = "baja"
)

// ValidEnergyLevels is the set of all valid energy levels.
var ValidEnergyLevels = []EnergyLevel{EnergyHigh, EnergyMedium, EnergyLow}

// IsValid returns true if the energy level is recognized.
func (e EnergyLevel) IsValid() bool {
	for _, v := range ValidEnergyLevels {
		if e == v {
			return true
		}
	}
	return false
}

// EventKind classifies an agenda event.
type EventKind string

const (
	KindEvent      EventKind = "evento"
	KindReminder   EventKind = "recordatorio"
	KindBirthday   EventKind = "cumpleanos"
	KindObligation EventKind = "obligacion"
)

// ValidEventKinds is the set of all valid event kinds.
var ValidEventKinds = []EventKind{KindEvent, KindReminder, KindBirthday, KindObligation}

// IsValid returns true if the kind is recognized.
func (k EventKind) IsValid() bool {
	for _, v := range ValidEventKinds {
		if k == v {
			return true
		}
	}
	return false
}

// AnxietyLevel is how stressful an event is expected to be.
type AnxietyLevel string

const (
	AnxietyLow    AnxietyLevel = "bajo"
	AnxietyMedium AnxietyLevel = "medio"
	AnxietyHigh   AnxietyLevel = "alto"
)

// IsValid returns true if the anxiety level is recognized.
func (a AnxietyLevel) IsValid() bool {
	return a == AnxietyLow || a == AnxietyMedium || a == AnxietyHigh
}

// PriorityLevel ranks an event.
type PriorityLevel string

const (
	PriorityLow    PriorityLevel = "baja"
	PriorityNormal PriorityLevel = "normal"
	PriorityHigh   PriorityLevel = "alta"
	PriorityUrgent PriorityLevel = "urgente"
)

// ValidPriorityLevels is the set of all valid priority levels.
var ValidPriorityLevels = []PriorityLevel{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}

// IsValid returns true if the priority level is recognized.
func (p PriorityLevel) IsValid() bool {
	for _, v := range ValidPriorityLevels {
		if p == v {
			return true
		}
	}
	return false
}

// Recurrence describes how an event repeats.
type Recurrence string

const (
	RecurNone    Recurrence = "no_repite"
	RecurDaily   Recurrence = "diario"
	RecurWeekly  Recurrence = "semanal"
	RecurMonthly Recurrence = "mensual"
	RecurYearly  Recurrence = "anual"
	RecurCustom  Recurrence = "personalizado"
)

// ValidRecurrences is the set of all valid recurrences.
var ValidRecurrences = []Recurrence{RecurNone, RecurDaily, RecurWeekly, RecurMonthly, RecurYearly, RecurCustom}

// IsValid returns true if the recurrence is recognized.
func (r Recurrence) IsValid() bool {
	for _, v := range ValidRecurrences {
		if r == v {
			return true
		}
	}
	return false
}

// UsesDays reports whether the recurrence carries a weekday set.
func (r Recurrence) UsesDays() bool {
	return r == RecurWeekly || r == RecurCustom
}

// ReminderChannel is how a reminder is delivered.
type ReminderChannel string

const (
	ChannelNotification ReminderChannel = "notificacion"
	ChannelEmail        ReminderChannel = "email"
	ChannelPopup        ReminderChannel = "popup"
)

// IsValid returns true if the channel is recognized.
func (c ReminderChannel) IsValid() bool {
	return c == ChannelNotification || c == ChannelEmail || c == ChannelPopup
}

// ReminderFrequency is how often a reminder fires.
type ReminderFrequency string

const (
	FrequencyOnce   ReminderFrequency = "una_vez"
	FrequencyDaily  ReminderFrequency = "diario"
	FrequencyWeekly ReminderFrequency = "semanal"
	FrequencyCustom ReminderFrequency = "personalizado"
)

// IsValid returns true if the frequency is recognized.
func (f ReminderFrequency) IsValid() bool {
	switch f {
	case FrequencyOnce, FrequencyDaily, FrequencyWeekly, FrequencyCustom:
		return true
	}
	return false
}

// MentalSpace is a named filter over ideas.
type MentalSpace string

const (
	SpaceToday    MentalSpace = "hoy"
	SpaceActive   MentalSpace = "activas"
	SpaceRecent   MentalSpace = "recientes"
	SpaceArchived MentalSpace = "archivadas"
	SpaceCalendar MentalSpace = "calendario"
)

// ValidMentalSpaces is the set of all valid mental spaces.
var ValidMentalSpaces = []MentalSpace{SpaceToday, SpaceActive, SpaceRecent, SpaceArchived, SpaceCalendar}

// IsValid returns true if the mental space is recognized.
func (m MentalSpace) IsValid() bool {
	for _, v := range ValidMentalSpaces {
		if m == v {
			return true
		}
	}
	return false
}

// View is the screen the presentation layer is showing. Not persisted.
type View string

const (
	ViewHome     View = "home"
	ViewToday    View = "hoy"
	ViewCapture  View = "captura"
	ViewCalendar View = "calendario"
	ViewAgenda   View = "agenda"
	ViewWeek     View = "semana"
	ViewSpaces   View = "espacios"
	ViewSettings View = "configuracion"
	ViewDetail   View = "detalle"
	ViewRoutines View = "rutinas"
)

// ValidViews is the set of all valid views.
var ValidViews = []View{
	ViewHome, ViewToday, ViewCapture, ViewCalendar, ViewAgenda,
	ViewWeek, ViewSpaces, ViewSettings, ViewDetail, ViewRoutines,
}

// IsValid returns true if the view is recognized.
func (v View) IsValid() bool {
	for _, x := range ValidViews {
		if v == x {
			return true
		}
	}
	return false
}
