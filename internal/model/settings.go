package model

const (
	DefaultDueSoonDays = 7

	MinDueSoonDays = 1
	MaxDueSoonDays = 90
)

// Settings is the single process-wide settings record.
type Settings struct {
	DueSoonDays         int    `json:"due_soon_days"`
	EnableNotifications bool   `json:"enable_notifications"`
	ConversationAgentID string `json:"conversation_agent_id,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		DueSoonDays:         DefaultDueSoonDays,
		EnableNotifications: true,
	}
}
