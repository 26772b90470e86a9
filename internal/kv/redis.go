package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions — параметры подключения к Redis.
type RedisOptions struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
}

// RedisStore хранит слоты в Redis без TTL.
type RedisStore struct {
	db *redis.Client
}

// NewRedisStore подключается к Redis и проверяет соединение.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	const op = "kv.NewRedisStore"
	db := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		Username:     opts.User,
		MaxRetries:   opts.MaxRetries,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.Timeout,
		WriteTimeout: opts.Timeout,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &RedisStore{db: db}, nil
}

// Client возвращает низкоуровневый клиент (для кэша статистики).
func (s *RedisStore) Client() *redis.Client {
	return s.db
}

// Get десериализует значение слота в result, false — если ключ отсутствует.
func (s *RedisStore) Get(ctx context.Context, key string, result any) (bool, error) {
	const op = "kv.RedisStore.Get"
	val, err := s.db.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal([]byte(val), result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сериализует значение и перезаписывает слот.
func (s *RedisStore) Set(ctx context.Context, key string, value any) error {
	const op = "kv.RedisStore.Set"
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.db.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete удаляет слот.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	const op = "kv.RedisStore.Delete"
	if err := s.db.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает клиент Redis.
func (s *RedisStore) Close() error {
	return s.db.Close()
}
