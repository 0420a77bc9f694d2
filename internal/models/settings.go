package models

// Settings holds user preferences persisted alongside ideas and events.
type Settings struct {
	CalmMode      bool        `json:"modoCalma"`
	ActiveSpace   MentalSpace `json:"espacioActivo"`
	ActiveLayer   LayerFilter `json:"capaActiva"`
	ShowCompleted bool        `json:"mostrarCompletadas"`
	ShowArchived  bool        `json:"mostrarArchivadas"`
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		ActiveSpace: SpaceToday,
		ActiveLayer: LayerAll,
	}
}

// SettingsPatch is a partial Settings; nil fields are left untouched by Merge.
type SettingsPatch struct {
	CalmMode      *bool        `json:"modoCalma,omitempty"`
	ActiveSpace   *MentalSpace `json:"espacioActivo,omitempty"`
	ActiveLayer   *LayerFilter `json:"capaActiva,omitempty"`
	ShowCompleted *bool        `json:"mostrarCompletadas,omitempty"`
	ShowArchived  *bool        `json:"mostrarArchivadas,omitempty"`
}

// Merge returns s with every non-nil field of p applied.
func (s Settings) Merge(p SettingsPatch) Settings {
	if p.CalmMode != nil {
		s.CalmMode = *p.CalmMode
	}
	if p.ActiveSpace != nil {
		s.ActiveSpace = *p.ActiveSpace
	}
	if p.ActiveLayer != nil {
		s.ActiveLayer = *p.ActiveLayer
	}
	if p.ShowCompleted != nil {
		s.ShowCompleted = *p.ShowCompleted
	}
	if p.ShowArchived != nil {
		s.ShowArchived = *p.ShowArchived
	}
	return s
}

// Patch returns a SettingsPatch that sets every field to the value in s.
func (s Settings) Patch() SettingsPatch {
	return SettingsPatch{
		CalmMode:      &s.CalmMode,
		ActiveSpace:   &s.ActiveSpace,
		ActiveLayer:   &s.ActiveLayer,
		ShowCompleted: &s.ShowCompleted,
		ShowArchived:  &s.ShowArchived,
	}
}
