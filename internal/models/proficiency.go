package models

import "time"

const (
	// ProficiencyMin and ProficiencyMax bound every per-topic level.
	ProficiencyMin = 0.5
	ProficiencyMax = 5.0

	// ProficiencyDefault is the level assigned on first access to a core
	// subject. Locked subjects start at zero in the store and are raised to
	// the default once touched.
	ProficiencyDefault = 1.0
)

// ProficiencyRecord is the persisted skill level for one (user, topic) pair.
type ProficiencyRecord struct {
	UserID    string    `json:"user_id" gorm:"primaryKey;size:64"`
	Topic     string    `json:"topic" gorm:"primaryKey;size:64"`
	Level     float64   `json:"level" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProficiencyRecord) TableName() string {
	return "proficiency_records"
}
