package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/asmec-academy/assessment-engine/internal/repositories"
	"github.com/redis/go-redis/v9"
)

// CachedProficiencyStore is a read-through decorator over a ProficiencyStore.
// Loads hit Redis first; saves write through to the backing store and refresh
// the cached copy. Cache failures degrade to the backing store, they never
// fail the operation.
type CachedProficiencyStore struct {
	store  repositories.ProficiencyStore
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedProficiencyStore(store repositories.ProficiencyStore, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedProficiencyStore {
	return &CachedProficiencyStore{
		store:  store,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(userID string) string {
	return fmt.Sprintf("proficiency:%s", userID)
}

func (c *CachedProficiencyStore) Load(ctx context.Context, userID string) (map[string]float64, error) {
	payload, err := c.client.Get(ctx, cacheKey(userID)).Bytes()
	if err == nil {
		var levels map[string]float64
		if err := json.Unmarshal(payload, &levels); err == nil {
			return levels, nil
		}
		c.logger.Warn("Discarding corrupt proficiency cache entry", "user_id", userID)
	} else if err != redis.Nil {
		c.logger.Warn("Proficiency cache read failed", "user_id", userID, "error", err)
	}

	levels, err := c.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.put(ctx, userID, levels)
	return levels, nil
}

func (c *CachedProficiencyStore) Save(ctx context.Context, userID string, levels map[string]float64) error {
	if err := c.store.Save(ctx, userID, levels); err != nil {
		return err
	}
	c.put(ctx, userID, levels)
	return nil
}

func (c *CachedProficiencyStore) put(ctx context.Context, userID string, levels map[string]float64) {
	payload, err := json.Marshal(levels)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(userID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Proficiency cache write failed", "user_id", userID, "error", err)
	}
}
