package cache

import (
	"context"
	"fmt"

	"home-assistant/internal/infrastructure/config"
)

// Cache AI 回應快取。兩個實作：記憶體內（單機）與 Redis（共用）。
type Cache interface {
	Get(ctx context.Context, prompt, imageData string) (string, error)
	Set(ctx context.Context, prompt, imageData, value string) error
	Close() error
}

// New 依設定選擇快取後端；快取停用時回傳 nil
func New(cfg *config.CacheConfig) (Cache, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	switch cfg.Backend {
	case "memory":
		return NewManager(cfg), nil
	case "redis":
		return NewRedisCache(cfg)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}
