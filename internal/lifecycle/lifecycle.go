// Package lifecycle implements bulk maintenance over the idea collection.
// Every removal goes through the state container as a DELETE_IDEA dispatch.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ajitpratap0/focusflow/internal/metrics"
	"github.com/ajitpratap0/focusflow/internal/models"
	"github.com/ajitpratap0/focusflow/internal/state"
)

// Report summarizes the results of a lifecycle run.
type Report struct {
	Deleted int      `json:"deleted"`
	IDs     []string `json:"ids"`
	DryRun  bool     `json:"dry_run"`
}

// Manager handles idea lifecycle operations.
type Manager struct {
	store  *state.Store
	logger *slog.Logger
}

// NewManager creates a new lifecycle manager.
func NewManager(st *state.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:  st,
		logger: logger,
	}
}

// ClearCompleted deletes every completed idea. Archived ideas that are
// also completed are included.
func (m *Manager) ClearCompleted(ctx context.Context, dryRun bool) (*Report, error) {
	return m.purge(ctx, "completed", dryRun, (*models.Idea).IsCompleted)
}

// ClearAll deletes every idea. Events and settings are left alone.
func (m *Manager) ClearAll(ctx context.Context, dryRun bool) (*Report, error) {
	return m.purge(ctx, "all", dryRun, func(*models.Idea) bool { return true })
}

func (m *Manager) purge(ctx context.Context, scope string, dryRun bool, match func(*models.Idea) bool) (*Report, error) {
	ideas := m.store.State().Ideas
	report := &Report{IDs: []string{}, DryRun: dryRun}

	for i := range ideas {
		idea := &ideas[i]
		if !match(idea) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("clearing %s ideas: %w", scope, err)
		}
		m.logger.Info("purging idea", "scope", scope, "id", idea.ID, "title", idea.Title, "dry_run", dryRun)
		if !dryRun {
			m.store.DeleteIdea(idea.ID)
			metrics.Inc(metrics.IdeasPurged)
		}
		report.Deleted++
		report.IDs = append(report.IDs, idea.ID)
	}

	return report, nil
}
