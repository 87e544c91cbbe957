package cache

import (
	"context"
	"fmt"

	"home-assistant/internal/infrastructure/config"
	"home-assistant/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// RedisCache Redis 快取，多個實例共用同一份 AI 回應
type RedisCache struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewRedisCache 創建 Redis 快取
func NewRedisCache(cfg *config.CacheConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取緩存
func (s *RedisCache) Get(ctx context.Context, prompt, imageData string) (string, error) {
	value, err := s.client.Get(ctx, s.key(prompt, imageData)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", common.ErrCacheDisabled
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}
	return value, nil
}

// Set 設置緩存
func (s *RedisCache) Set(ctx context.Context, prompt, imageData, value string) error {
	if err := s.client.Set(ctx, s.key(prompt, imageData), value, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

func (s *RedisCache) key(prompt, imageData string) string {
	return fmt.Sprintf("ai:response:%s", generateKey(prompt, imageData))
}

// Close 關閉 Redis 連接
func (s *RedisCache) Close() error {
	return s.client.Close()
}

var _ Cache = (*RedisCache)(nil)
