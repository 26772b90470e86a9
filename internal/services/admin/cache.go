package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/investwisepro/admin-console/internal/models"
)

const (
	statsCacheKey = "admin:stats"
	statsCacheTTL = 30 * time.Second
)

// StatsCache кэширует агрегированную сводку между запросами.
type StatsCache interface {
	Get(ctx context.Context) (*models.AdminStats, bool, error)
	Set(ctx context.Context, stats models.AdminStats) error
	Invalidate(ctx context.Context) error
}

// RedisStatsCache хранит сводку в Redis с коротким TTL.
type RedisStatsCache struct {
	db *redis.Client
}

// NewRedisStatsCache создает кэш поверх готового клиента Redis.
func NewRedisStatsCache(db *redis.Client) *RedisStatsCache {
	return &RedisStatsCache{db: db}
}

// Get возвращает закэшированную сводку, если она ещё не истекла.
func (c *RedisStatsCache) Get(ctx context.Context) (*models.AdminStats, bool, error) {
	const op = "services.admin.cache.Get"

	data, err := c.db.Get(ctx, statsCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	var stats models.AdminStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return &stats, true, nil
}

// Set записывает сводку с TTL.
func (c *RedisStatsCache) Set(ctx context.Context, stats models.AdminStats) error {
	const op = "services.admin.cache.Set"

	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.db.Set(ctx, statsCacheKey, data, statsCacheTTL).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Invalidate удаляет закэшированную сводку.
func (c *RedisStatsCache) Invalidate(ctx context.Context) error {
	const op = "services.admin.cache.Invalidate"

	if err := c.db.Del(ctx, statsCacheKey).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// NoopCache используется, когда Redis не настроен: сводка
// пересчитывается при каждом запросе.
type NoopCache struct{}

func (NoopCache) Get(context.Context) (*models.AdminStats, bool, error) { return nil, false, nil }
func (NoopCache) Set(context.Context, models.AdminStats) error          { return nil }
func (NoopCache) Invalidate(context.Context) error                      { return nil }
