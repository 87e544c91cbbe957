package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif" // 支援 GIF
	_ "image/png" // 支援 PNG

	"home-assistant/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Service 圖片處理服務：入站影像驗證與轉檔，以及食譜配圖下載
type Service struct {
	maxSizeBytes int64
	downloadDir  string
	client       *resty.Client
}

// NewService 創建新的圖片處理服務
func NewService(maxSizeBytes int64, downloadDir string) *Service {
	return &Service{
		maxSizeBytes: maxSizeBytes,
		downloadDir:  downloadDir,
		client:       resty.New(),
	}
}

// ProcessImage 處理圖片：URL 先下載，base64 直接解碼；
// 統一驗證大小與格式後轉成 JPEG data URI。
func (s *Service) ProcessImage(ctx context.Context, imageData string) (string, error) {
	raw, err := s.rawBytes(ctx, imageData)
	if err != nil {
		return "", err
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	if !isSupportedFormat(format) {
		return "", fmt.Errorf("unsupported image format: %s", format)
	}

	// 統一轉為 JPEG
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode image as JPEG: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return fmt.Sprintf("data:image/jpeg;base64,%s", encoded), nil
}

// ValidateImage 驗證圖片大小與格式
func (s *Service) ValidateImage(ctx context.Context, imageData string) error {
	raw, err := s.rawBytes(ctx, imageData)
	if err != nil {
		return err
	}
	_, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	if !isSupportedFormat(format) {
		return fmt.Errorf("unsupported image format: %s", format)
	}
	return nil
}

// Download 下載食譜配圖到本機，回傳檔案路徑
func (s *Service) Download(ctx context.Context, url string) (string, error) {
	if err := os.MkdirAll(s.downloadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	path := filepath.Join(s.downloadDir, common.GenerateUUID()+".jpg")
	resp, err := s.client.R().
		SetContext(ctx).
		SetOutput(path).
		Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	if resp.StatusCode() != 200 {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to download image: status code %d", resp.StatusCode())
	}

	common.LogDebug("圖片已下載",
		zap.String("url", url),
		zap.String("path", path),
	)
	return path, nil
}

// rawBytes 取得原始影像位元組：URL 下載或 base64 解碼
func (s *Service) rawBytes(ctx context.Context, imageData string) ([]byte, error) {
	if strings.HasPrefix(imageData, "http://") || strings.HasPrefix(imageData, "https://") {
		resp, err := s.client.R().SetContext(ctx).Get(imageData)
		if err != nil {
			return nil, fmt.Errorf("failed to download image: %w", err)
		}
		if resp.StatusCode() != 200 {
			return nil, fmt.Errorf("failed to download image: status code %d", resp.StatusCode())
		}
		body := resp.Body()
		if int64(len(body)) > s.maxSizeBytes {
			return nil, fmt.Errorf("image size exceeds maximum limit of %d bytes", s.maxSizeBytes)
		}
		return body, nil
	}

	payload := imageData
	if strings.HasPrefix(imageData, "data:image/") {
		parts := strings.Split(imageData, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid base64 data format")
		}
		payload = parts[1]
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 data: %w", err)
	}
	if int64(len(decoded)) > s.maxSizeBytes {
		return nil, fmt.Errorf("image size exceeds maximum limit of %d bytes", s.maxSizeBytes)
	}
	return decoded, nil
}

// isSupportedFormat 檢查圖片格式是否支援
func isSupportedFormat(format string) bool {
	supportedFormats := map[string]bool{
		"jpeg": true,
		"jpg":  true,
		"png":  true,
		"gif":  true,
	}
	return supportedFormats[format]
}
