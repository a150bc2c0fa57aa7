package repositories

import (
	"context"
	"sync"
)

// ProficiencyStore persists per-user topic skill levels across sessions.
// The engine calls Load at session start and Save at finalize; the store
// never applies the update rule itself.
type ProficiencyStore interface {
	Load(ctx context.Context, userID string) (map[string]float64, error)
	Save(ctx context.Context, userID string, levels map[string]float64) error
}

type memoryProficiencyStore struct {
	mu    sync.RWMutex
	users map[string]map[string]float64
}

// NewMemoryProficiencyStore returns an in-memory store. Used in tests and as
// the default when no database is configured.
func NewMemoryProficiencyStore() ProficiencyStore {
	return &memoryProficiencyStore{users: make(map[string]map[string]float64)}
}

func (s *memoryProficiencyStore) Load(ctx context.Context, userID string) (map[string]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	levels := make(map[string]float64, len(s.users[userID]))
	for topic, level := range s.users[userID] {
		levels[topic] = level
	}
	return levels, nil
}

func (s *memoryProficiencyStore) Save(ctx context.Context, userID string, levels map[string]float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := make(map[string]float64, len(levels))
	for topic, level := range levels {
		saved[topic] = level
	}
	s.users[userID] = saved
	return nil
}
