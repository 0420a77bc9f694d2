package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ajitpratap0/focusflow/internal/models"
)

// ErrUnknownAction is returned by DecodeAction for an unrecognized kind.
var ErrUnknownAction = errors.New("unknown action")

// Envelope is the wire form of an action: {"type": ..., "payload": ...}.
type Envelope struct {
	Type    Kind            `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// loadStatePayload is the wire form of LOAD_STATE.
type loadStatePayload struct {
	Ideas       []models.Idea         `json:"ideas"`
	Events      []models.AgendaEvent  `json:"eventos"`
	Settings    *models.SettingsPatch `json:"settings"`
	CurrentView models.View           `json:"currentView"`
}

// DecodeAction builds an Action from its wire envelope. Payload shapes
// follow the action: id transitions take a JSON string, SET_MODO_CALMA a
// boolean, ADD_* a draft object and UPDATE_* a patch object with an id.
func DecodeAction(env Envelope) (Action, error) {
	switch env.Type {
	case KindAddIdea:
		var d IdeaDraft
		if err := decodePayload(env, &d); err != nil {
			return nil, err
		}
		return AddIdea{Draft: d}, nil
	case KindUpdateIdea:
		var p IdeaPatch
		if err := decodePayload(env, &p); err != nil {
			return nil, err
		}
		return UpdateIdea{Patch: p}, nil
	case KindDeleteIdea, KindArchiveIdea, KindCompleteIdea,
		KindDeleteEvent, KindCompleteEvent:
		var id string
		if err := decodePayload(env, &id); err != nil {
			return nil, err
		}
		return idAction(env.Type, id), nil
	case KindAddEvent:
		var d EventDraft
		if err := decodePayload(env, &d); err != nil {
			return nil, err
		}
		return AddEvent{Draft: d}, nil
	case KindUpdateEvent:
		var p EventPatch
		if err := decodePayload(env, &p); err != nil {
			return nil, err
		}
		return UpdateEvent{Patch: p}, nil
	case KindSetView:
		var v models.View
		if err := decodePayload(env, &v); err != nil {
			return nil, err
		}
		return SetView{View: v}, nil
	case KindSelectIdea:
		var id *string
		if len(env.Payload) > 0 {
			if err := decodePayload(env, &id); err != nil {
				return nil, err
			}
		}
		if id == nil {
			return SelectIdea{}, nil
		}
		return SelectIdea{ID: *id}, nil
	case KindToggleQuickCapture:
		return ToggleQuickCapture{}, nil
	case KindSetCalmMode:
		var on bool
		if err := decodePayload(env, &on); err != nil {
			return nil, err
		}
		return SetCalmMode{Enabled: on}, nil
	case KindSetActiveSpace:
		var sp models.MentalSpace
		if err := decodePayload(env, &sp); err != nil {
			return nil, err
		}
		return SetActiveSpace{Space: sp}, nil
	case KindSetActiveLayer:
		var l models.LayerFilter
		if err := decodePayload(env, &l); err != nil {
			return nil, err
		}
		return SetActiveLayer{Layer: l}, nil
	case KindSetCurrentDate:
		var raw string
		if err := decodePayload(env, &raw); err != nil {
			return nil, err
		}
		t, err := ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", env.Type, err)
		}
		return SetCurrentDate{Date: t}, nil
	case KindLoadState:
		var p loadStatePayload
		if err := decodePayload(env, &p); err != nil {
			return nil, err
		}
		return LoadState{Ideas: p.Ideas, Events: p.Events, Settings: p.Settings, CurrentView: p.CurrentView}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Type)
}

func idAction(k Kind, id string) Action {
	switch k {
	case KindDeleteIdea:
		return DeleteIdea{ID: id}
	case KindArchiveIdea:
		return ArchiveIdea{ID: id}
	case KindCompleteIdea:
		return CompleteIdea{ID: id}
	case KindDeleteEvent:
		return DeleteEvent{ID: id}
	default:
		return CompleteEvent{ID: id}
	}
}

func decodePayload(env Envelope, v any) error {
	if len(env.Payload) == 0 {
		return fmt.Errorf("decoding %s: %w: missing payload", env.Type, ErrInvalidPayload)
	}
	if err := json.Unmarshal(env.Payload, v); err != nil {
		return fmt.Errorf("decoding %s: %w: %v", env.Type, ErrInvalidPayload, err)
	}
	return nil
}

// ParseDate accepts either YYYY-MM-DD or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(models.DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// Validate checks an action coming from an untrusted caller. The reducer
// itself tolerates any payload; this is for collaborators that want to
// reject bad input before dispatch.
func Validate(a Action) error {
	switch a := a.(type) {
	case AddIdea:
		return a.Draft.Validate()
	case UpdateIdea:
		return a.Patch.Validate()
	case AddEvent:
		return a.Draft.Validate()
	case UpdateEvent:
		return a.Patch.Validate()
	case DeleteIdea, ArchiveIdea, CompleteIdea, DeleteEvent, CompleteEvent:
		if actionID(a) == "" {
			return fmt.Errorf("%s: %w: id is required", a.Kind(), ErrInvalidPayload)
		}
	case SetView:
		if !a.View.IsValid() {
			return fmt.Errorf("%s: %w: unknown view %q", a.Kind(), ErrInvalidPayload, a.View)
		}
	case SetActiveSpace:
		if !a.Space.IsValid() {
			return fmt.Errorf("%s: %w: unknown mental space %q", a.Kind(), ErrInvalidPayload, a.Space)
		}
	case SetActiveLayer:
		if !a.Layer.IsValid() {
			return fmt.Errorf("%s: %w: unknown layer %q", a.Kind(), ErrInvalidPayload, a.Layer)
		}
	case LoadState:
		if a.CurrentView != "" && !a.CurrentView.IsValid() {
			return fmt.Errorf("%s: %w: unknown view %q", a.Kind(), ErrInvalidPayload, a.CurrentView)
		}
	}
	return nil
}

func actionID(a Action) string {
	switch a := a.(type) {
	case DeleteIdea:
		return a.ID
	case ArchiveIdea:
		return a.ID
	case CompleteIdea:
		return a.ID
	case DeleteEvent:
		return a.ID
	case CompleteEvent:
		return a.ID
	}
	return ""
}
