package store

import "github.com/philippauer/ha-wartungsplaner/internal/model"

// SettingsPatch is a partial settings update; nil pointer means "no change".
type SettingsPatch struct {
	DueSoonDays         *int    `json:"due_soon_days,omitempty"`
	EnableNotifications *bool   `json:"enable_notifications,omitempty"`
	ConversationAgentID *string `json:"conversation_agent_id,omitempty"`
}

// UpdateSettings merges the provided fields and persists.
func (s *FileStore) UpdateSettings(p SettingsPatch) (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.s.Settings
	next := prev

	if p.DueSoonDays != nil {
		if *p.DueSoonDays < model.MinDueSoonDays || *p.DueSoonDays > model.MaxDueSoonDays {
			return model.Settings{}, invalidf("due_soon_days", "must be between %d and %d", model.MinDueSoonDays, model.MaxDueSoonDays)
		}
		next.DueSoonDays = *p.DueSoonDays
	}
	if p.EnableNotifications != nil {
		next.EnableNotifications = *p.EnableNotifications
	}
	if p.ConversationAgentID != nil {
		next.ConversationAgentID = *p.ConversationAgentID
	}

	s.s.Settings = next
	if err := s.saveLocked(); err != nil {
		s.s.Settings = prev
		return model.Settings{}, err
	}
	return next, nil
}
