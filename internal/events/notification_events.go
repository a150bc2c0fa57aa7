package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of notification events
type EventType string

const (
	// Session events
	EventSessionStarted   EventType = "session.started"
	EventSessionCompleted EventType = "session.completed"

	// Gamification events, consumed by the notification/reward service
	EventAchievementUnlocked EventType = "achievement.unlocked"
	EventQuestCompleted      EventType = "quest.completed"
	EventRewardGranted       EventType = "reward.granted"
)

// NotificationEvent is the base event structure for all notification events
type NotificationEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewNotificationEvent wraps a payload in the standard envelope.
func NewNotificationEvent(eventType EventType, data interface{}) *NotificationEvent {
	return &NotificationEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    "assessment-engine",
		Version:   "1.0",
		Data:      data,
	}
}

// Session event payloads

type SessionStartedEvent struct {
	SessionID     string    `json:"session_id"`
	UserID        string    `json:"user_id"`
	TestKind      string    `json:"test_kind"`
	StartingLevel float64   `json:"starting_level"`
	StartedAt     time.Time `json:"started_at"`
}

type SessionCompletedEvent struct {
	SessionID       string   `json:"session_id"`
	UserID          string   `json:"user_id"`
	TestKind        string   `json:"test_kind"`
	RawScore        int      `json:"raw_score"`
	NormalizedScore float64  `json:"normalized_score"`
	Ability         float64  `json:"ability"`
	WeakAreas       []string `json:"weak_areas"`
}

// Gamification event payloads

type AchievementUnlockedEvent struct {
	UserID      string `json:"user_id"`
	Achievement string `json:"achievement"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

type QuestCompletedEvent struct {
	UserID string `json:"user_id"`
	Quest  string `json:"quest"`
	Reward int    `json:"reward"`
}

type RewardGrantedEvent struct {
	UserID string `json:"user_id"`
	Points int    `json:"points"`
	Coins  int    `json:"coins"`
	Reason string `json:"reason"`
}
