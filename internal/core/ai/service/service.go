package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"home-assistant/internal/core/ai"
	"home-assistant/internal/core/ai/cache"
	"home-assistant/internal/core/image"
	"home-assistant/internal/infrastructure/config"
	"home-assistant/internal/pkg/common"
)

// Service AI 服務：統一的請求入口，處理快取、限流與影像前處理
type Service struct {
	config      *config.Config
	client      *ai.Client
	cache       cache.Cache
	imageSvc    *image.Service
	mu          sync.Mutex
	lastRequest time.Time
}

// NewService 創建 AI 服務
func NewService(cfg *config.Config, c cache.Cache, imageSvc *image.Service) *Service {
	return &Service{
		config:   cfg,
		client:   ai.NewClient(cfg),
		cache:    c,
		imageSvc: imageSvc,
	}
}

// ProcessRequest 統一對外方法
func (s *Service) ProcessRequest(ctx context.Context, prompt string, imageData string) (*ai.Response, error) {
	if err := s.checkRequestRate(); err != nil {
		return nil, err
	}

	// 統一 prompt 格式，去除多餘空白，確保快取 key 一致
	prompt = strings.TrimSpace(prompt)
	prompt = strings.Join(strings.Fields(prompt), " ")

	var processedImageData string
	if imageData != "" {
		var err error
		processedImageData, err = s.imageSvc.ProcessImage(ctx, imageData)
		if err != nil {
			return nil, common.NewError(common.ErrCodeInvalidRequest, "failed to process image", 400, err)
		}
	}

	// 檢查緩存
	if s.cache != nil {
		if val, err := s.cache.Get(ctx, prompt, processedImageData); err == nil && val != "" {
			return &ai.Response{Content: val, CacheHit: true}, nil
		}
	}

	start := time.Now()
	content, err := s.client.Generate(ctx, prompt, processedImageData)
	common.LogAICall("generate", time.Since(start), err)
	if err != nil {
		return nil, common.NewAIServiceError(err)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, prompt, processedImageData, content)
	}

	return &ai.Response{Content: content}, nil
}

// checkRequestRate 檢查請求頻率
func (s *Service) checkRequestRate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if s.config.RateLimit.Enabled && now.Sub(s.lastRequest) < s.config.RateLimit.Window/time.Duration(max(s.config.RateLimit.Requests, 1)) {
		return common.ErrTooManyRequests
	}

	s.lastRequest = now
	return nil
}
