package persist

import (
	"encoding/json"
	"fmt"

	"github.com/ajitpratap0/focusflow/internal/models"
	"github.com/ajitpratap0/focusflow/internal/state"
)

// blob is the on-disk form. Pointer settings and nil slices let Decode
// tell absent fields from empty ones, so older blobs merge cleanly.
type blob struct {
	Ideas    []models.Idea         `json:"ideas"`
	Events   []models.AgendaEvent  `json:"eventos"`
	Settings *models.SettingsPatch `json:"settings"`
}

// Encode serializes the persisted subset.
func Encode(snap models.Snapshot) ([]byte, error) {
	if snap.Ideas == nil {
		snap.Ideas = []models.Idea{}
	}
	if snap.Events == nil {
		snap.Events = []models.AgendaEvent{}
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return b, nil
}

// Decode parses a persisted blob into a LOAD_STATE transition. Fields
// missing from the blob are left nil so the merge keeps current values.
func Decode(data []byte) (state.LoadState, error) {
	var b blob
	if err := json.Unmarshal(data, &b); err != nil {
		return state.LoadState{}, fmt.Errorf("decoding state: %w", err)
	}
	return state.LoadState{Ideas: b.Ideas, Events: b.Events, Settings: b.Settings}, nil
}
