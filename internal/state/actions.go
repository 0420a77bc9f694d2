package state

import (
	"time"

	"github.com/ajitpratap0/focusflow/internal/models"
)

// Kind is the canonical name of a transition.
type Kind string

const (
	KindAddIdea            Kind = "ADD_IDEA"
	KindUpdateIdea         Kind = "UPDATE_IDEA"
	KindDeleteIdea         Kind = "DELETE_IDEA"
	KindArchiveIdea        Kind = "ARCHIVE_IDEA"
	KindCompleteIdea       Kind = "COMPLETE_IDEA"
	KindAddEvent           Kind = "ADD_EVENTO"
	KindUpdateEvent        Kind = "UPDATE_EVENTO"
	KindDeleteEvent        Kind = "DELETE_EVENTO"
	KindCompleteEvent      Kind = "COMPLETE_EVENTO"
	KindSetView            Kind = "SET_VIEW"
	KindSelectIdea         Kind = "SELECT_IDEA"
	KindToggleQuickCapture Kind = "TOGGLE_QUICK_CAPTURE"
	KindSetCalmMode        Kind = "SET_MODO_CALMA"
	KindSetActiveSpace     Kind = "SET_ESPACIO_ACTIVO"
	KindSetActiveLayer     Kind = "SET_CAPA_ACTIVA"
	KindSetCurrentDate     Kind = "SET_CURRENT_DATE"
	KindLoadState          Kind = "LOAD_STATE"
)

// AllKinds lists every transition in declaration order.
func AllKinds() []Kind {
	return []Kind{
		KindAddIdea, KindUpdateIdea, KindDeleteIdea, KindArchiveIdea, KindCompleteIdea,
		KindAddEvent, KindUpdateEvent, KindDeleteEvent, KindCompleteEvent,
		KindSetView, KindSelectIdea, KindToggleQuickCapture,
		KindSetCalmMode, KindSetActiveSpace, KindSetActiveLayer, KindSetCurrentDate,
		KindLoadState,
	}
}

// Action is a state transition. The set of implementations is closed:
// only types in this package satisfy it.
type Action interface {
	Kind() Kind
	action()
}

// AddIdea prepends a new idea built from Draft.
type AddIdea struct{ Draft IdeaDraft }

// UpdateIdea merges Patch into the idea with Patch.ID.
type UpdateIdea struct{ Patch IdeaPatch }

// DeleteIdea removes an idea.
type DeleteIdea struct{ ID string }

// ArchiveIdea toggles the archived flag of an idea.
type ArchiveIdea struct{ ID string }

// CompleteIdea toggles the completion timestamp of an idea.
type CompleteIdea struct{ ID string }

// AddEvent prepends a new agenda event built from Draft.
type AddEvent struct{ Draft EventDraft }

// UpdateEvent merges Patch into the event with Patch.ID.
type UpdateEvent struct{ Patch EventPatch }

// DeleteEvent removes an agenda event.
type DeleteEvent struct{ ID string }

// CompleteEvent flips the completed flag of an event.
type CompleteEvent struct{ ID string }

// SetView switches the current view.
type SetView struct{ View models.View }

// SelectIdea selects an idea, or clears the selection when ID is empty.
type SelectIdea struct{ ID string }

// ToggleQuickCapture opens or closes the capture panel.
type ToggleQuickCapture struct{}

// SetCalmMode sets the calm mode setting.
type SetCalmMode struct{ Enabled bool }

// SetActiveSpace sets the active mental space.
type SetActiveSpace struct{ Space models.MentalSpace }

// SetActiveLayer sets the active layer filter.
type SetActiveLayer struct{ Layer models.LayerFilter }

// SetCurrentDate sets the date the presentation layer is focused on.
type SetCurrentDate struct{ Date time.Time }

// LoadState shallow-merges the provided fields into the state. A nil slice
// means "not provided"; an empty non-nil slice replaces the collection.
// Settings are merged field by field.
type LoadState struct {
	Ideas       []models.Idea
	Events      []models.AgendaEvent
	Settings    *models.SettingsPatch
	CurrentView models.View
}

func (AddIdea) Kind() Kind            { return KindAddIdea }
func (UpdateIdea) Kind() Kind         { return KindUpdateIdea }
func (DeleteIdea) Kind() Kind         { return KindDeleteIdea }
func (ArchiveIdea) Kind() Kind        { return KindArchiveIdea }
func (CompleteIdea) Kind() Kind       { return KindCompleteIdea }
func (AddEvent) Kind() Kind           { return KindAddEvent }
func (UpdateEvent) Kind() Kind        { return KindUpdateEvent }
func (DeleteEvent) Kind() Kind        { return KindDeleteEvent }
func (CompleteEvent) Kind() Kind      { return KindCompleteEvent }
func (SetView) Kind() Kind            { return KindSetView }
func (SelectIdea) Kind() Kind         { return KindSelectIdea }
func (ToggleQuickCapture) Kind() Kind { return KindToggleQuickCapture }
func (SetCalmMode) Kind() Kind        { return KindSetCalmMode }
func (SetActiveSpace) Kind() Kind     { return KindSetActiveSpace }
func (SetActiveLayer) Kind() Kind     { return KindSetActiveLayer }
func (SetCurrentDate) Kind() Kind     { return KindSetCurrentDate }
func (LoadState) Kind() Kind          { return KindLoadState }

func (AddIdea) action()            {}
func (UpdateIdea) action()         {}
func (DeleteIdea) action()         {}
func (ArchiveIdea) action()        {}
func (CompleteIdea) action()       {}
func (AddEvent) action()           {}
func (UpdateEvent) action()        {}
func (DeleteEvent) action()        {}
func (CompleteEvent) action()      {}
func (SetView) action()            {}
func (SelectIdea) action()         {}
func (ToggleQuickCapture) action() {}
func (SetCalmMode) action()        {}
func (SetActiveSpace) action()     {}
func (SetActiveLayer) action()     {}
func (SetCurrentDate) action()     {}
func (LoadState) action()          {}
