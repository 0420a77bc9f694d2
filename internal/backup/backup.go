// Package backup produces and reads the user-facing backup document.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ajitpratap0/focusflow/internal/models"
	"github.com/ajitpratap0/focusflow/internal/state"
)

// ErrMalformedImport is returned when an import document cannot be used.
var ErrMalformedImport = errors.New("malformed import file")

// maxImportSize bounds how much of an import file is read.
const maxImportSize = 32 << 20

// NewExport builds the export document for s.
func NewExport(s state.AppState, now time.Time) models.ExportDocument {
	ideas := s.Ideas
	if ideas == nil {
		ideas = []models.Idea{}
	}
	return models.ExportDocument{
		Ideas:      ideas,
		Settings:   s.Settings,
		ExportedAt: now.UTC(),
		Version:    models.ExportVersion,
	}
}

// FileName is the suggested file name for an export taken at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("focusflow-backup-%s.json", now.Format(models.DateLayout))
}

// Write encodes doc as indented JSON.
func Write(w io.Writer, doc models.ExportDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// importDoc is the accepted import shape. Ideas is raw so that a missing
// or non-array value can be told apart from an empty list.
type importDoc struct {
	Ideas    json.RawMessage       `json:"ideas"`
	Settings *models.SettingsPatch `json:"settings"`
	Version  string                `json:"version"`
}

// ParseImport validates an export document and converts it to the
// LOAD_STATE transition that applies it. Settings are only included when
// the document carries them. Nothing is dispatched here.
func ParseImport(r io.Reader) (state.LoadState, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxImportSize+1))
	if err != nil {
		return state.LoadState{}, fmt.Errorf("reading import: %w", err)
	}
	if len(data) > maxImportSize {
		return state.LoadState{}, fmt.Errorf("%w: file exceeds %d bytes", ErrMalformedImport, maxImportSize)
	}

	var doc importDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return state.LoadState{}, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	raw := bytes.TrimSpace(doc.Ideas)
	if len(raw) == 0 || raw[0] != '[' {
		return state.LoadState{}, fmt.Errorf("%w: ideas must be an array", ErrMalformedImport)
	}
	ideas := []models.Idea{}
	if err := json.Unmarshal(raw, &ideas); err != nil {
		return state.LoadState{}, fmt.Errorf("%w: ideas: %v", ErrMalformedImport, err)
	}
	for i := range ideas {
		if ideas[i].ID == "" {
			return state.LoadState{}, fmt.Errorf("%w: idea %d has no id", ErrMalformedImport, i)
		}
	}
	return state.LoadState{Ideas: ideas, Settings: doc.Settings}, nil
}
