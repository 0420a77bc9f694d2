// Package routines stores routines, today's scheduled routines and routine
// achievements as JSON lists under fixed keys of a store.Backend.
package routines

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ajitpratap0/focusflow/internal/models"
	"github.com/ajitpratap0/focusflow/internal/query"
	"github.com/ajitpratap0/focusflow/internal/state"
	"github.com/ajitpratap0/focusflow/internal/store"
)

// Storage keys, shared with the persisted data of earlier releases.
const (
	KeyActive       = "rutinasActivas"
	KeyScheduled    = "rutinasHoy"
	KeyAchievements = "logrosRutina"
)

// Module count bounds for a scheduled routine.
const (
	MinModules = 2
	MaxModules = 4
)

var (
	// ErrInvalidRoutine is returned when a routine fails validation.
	ErrInvalidRoutine = errors.New("invalid routine")

	// ErrNotFound is returned when a scheduled routine index is out of range.
	ErrNotFound = errors.New("scheduled routine not found")
)

// Repository reads and writes routine lists. Writes are read-modify-write
// and serialized within the process.
type Repository struct {
	backend store.Backend
	clock   state.Clock
	logger  *slog.Logger
	mu      sync.Mutex
}

// New creates a Repository. A nil clock uses the system clock; a nil
// logger uses slog.Default.
func New(backend store.Backend, clock state.Clock, logger *slog.Logger) *Repository {
	if clock == nil {
		clock = state.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{backend: backend, clock: clock, logger: logger}
}

// load decodes the list under key. Missing, unreadable or corrupt data
// reads as an empty list; the cause is logged.
func load[T any](ctx context.Context, r *Repository, key string) []T {
	raw, found, err := r.backend.Get(ctx, key)
	if err != nil {
		r.logger.Error("loading routines", "key", key, "error", err)
		return []T{}
	}
	if !found || strings.TrimSpace(raw) == "" {
		return []T{}
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		r.logger.Error("decoding routines", "key", key, "error", err)
		return []T{}
	}
	if out == nil {
		out = []T{}
	}
	return out
}

func save[T any](ctx context.Context, r *Repository, key string, list []T) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := r.backend.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// Active returns the saved routines.
func (r *Repository) Active(ctx context.Context) []models.Routine {
	return load[models.Routine](ctx, r, KeyActive)
}

// AddActive appends a routine. An empty Created date is set to today.
func (r *Repository) AddActive(ctx context.Context, rt models.Routine) (models.Routine, error) {
	rt.Title = strings.TrimSpace(rt.Title)
	if rt.Title == "" {
		return models.Routine{}, fmt.Errorf("%w: title is required", ErrInvalidRoutine)
	}
	if rt.Energy != "" && !rt.Energy.IsValid() {
		return models.Routine{}, fmt.Errorf("%w: energy %q", ErrInvalidRoutine, rt.Energy)
	}
	for _, m := range rt.Modules {
		if m.Minutes < 0 {
			return models.Routine{}, fmt.Errorf("%w: module %q has negative duration", ErrInvalidRoutine, m.Name)
		}
	}
	if rt.Created == "" {
		rt.Created = query.DateKey(r.clock.Now())
	}
	if rt.Modules == nil {
		rt.Modules = []models.RoutineModule{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	list := append(load[models.Routine](ctx, r, KeyActive), rt)
	if err := save(ctx, r, KeyActive, list); err != nil {
		return models.Routine{}, err
	}
	return rt, nil
}

// Scheduled returns every scheduled routine, in the order they were added.
func (r *Repository) Scheduled(ctx context.Context) []models.ScheduledRoutine {
	return load[models.ScheduledRoutine](ctx, r, KeyScheduled)
}

// ScheduledOn returns the scheduled routines for date.
func (r *Repository) ScheduledOn(ctx context.Context, date string) []models.ScheduledRoutine {
	var out []models.ScheduledRoutine
	for _, sr := range r.Scheduled(ctx) {
		if sr.Date == date {
			out = append(out, sr)
		}
	}
	return out
}

// Schedule appends a routine to the scheduled list. It must carry between
// MinModules and MaxModules modules. An empty date means today; the
// routine always starts out not completed.
func (r *Repository) Schedule(ctx context.Context, sr models.ScheduledRoutine) (models.ScheduledRoutine, error) {
	if n := len(sr.Modules); n < MinModules || n > MaxModules {
		return models.ScheduledRoutine{}, fmt.Errorf("%w: %d modules, want %d to %d", ErrInvalidRoutine, n, MinModules, MaxModules)
	}
	if sr.Date == "" {
		sr.Date = query.DateKey(r.clock.Now())
	}
	if _, err := time.Parse(models.DateLayout, sr.Date); err != nil {
		return models.ScheduledRoutine{}, fmt.Errorf("%w: date %q", ErrInvalidRoutine, sr.Date)
	}
	if sr.Energy != "" && !sr.Energy.IsValid() {
		return models.ScheduledRoutine{}, fmt.Errorf("%w: energy %q", ErrInvalidRoutine, sr.Energy)
	}
	sr.Completed = false

	r.mu.Lock()
	defer r.mu.Unlock()
	list := append(load[models.ScheduledRoutine](ctx, r, KeyScheduled), sr)
	if err := save(ctx, r, KeyScheduled, list); err != nil {
		return models.ScheduledRoutine{}, err
	}
	return sr, nil
}

// CompleteScheduled marks the scheduled routine at index as completed.
func (r *Repository) CompleteScheduled(ctx context.Context, index int) (models.ScheduledRoutine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := load[models.ScheduledRoutine](ctx, r, KeyScheduled)
	if index < 0 || index >= len(list) {
		return models.ScheduledRoutine{}, fmt.Errorf("%w: index %d", ErrNotFound, index)
	}
	list[index].Completed = true
	if err := save(ctx, r, KeyScheduled, list); err != nil {
		return models.ScheduledRoutine{}, err
	}
	return list[index], nil
}

// Achievements returns the recorded achievements, oldest first.
func (r *Repository) Achievements(ctx context.Context) []models.Achievement {
	return load[models.Achievement](ctx, r, KeyAchievements)
}

// RecordAchievement appends an achievement stamped with the current time.
func (r *Repository) RecordAchievement(ctx context.Context, message string) (models.Achievement, error) {
	a := models.Achievement{Date: r.clock.Now().UTC(), Message: message}

	r.mu.Lock()
	defer r.mu.Unlock()
	list := append(load[models.Achievement](ctx, r, KeyAchievements), a)
	if err := save(ctx, r, KeyAchievements, list); err != nil {
		return models.Achievement{}, err
	}
	return a, nil
}
