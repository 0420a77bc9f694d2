package models

import "time"

// RoutineModule is one step of an active routine. Minutes is its planned
// duration.
type RoutineModule struct {
	Name    string      `json:"name"`
	Minutes int         `json:"time"`
	Energy  EnergyLevel `json:"energy"`
}

// Routine is a reusable sequence of modules. Created is a YYYY-MM-DD date.
type Routine struct {
	Title   string          `json:"titulo"`
	Created string          `json:"creada"`
	Energy  EnergyLevel     `json:"energia"`
	Modules []RoutineModule `json:"modulos"`
}

// ScheduledRoutine is a routine planned for a specific day.
type ScheduledRoutine struct {
	Date      string      `json:"fecha"`
	Block     string      `json:"bloqueo"`
	Category  string      `json:"categoria"`
	Energy    EnergyLevel `json:"energia"`
	Time      string      `json:"hora"`
	Modules   []string    `json:"modulos"`
	Completed bool        `json:"completada"`
}

// Achievement records a routine milestone.
type Achievement struct {
	Date    time.Time `json:"fecha"`
	Message string    `json:"mensaje"`
}
