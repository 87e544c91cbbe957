package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"home-assistant/internal/infrastructure/config"
	"home-assistant/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client 外部 AI 後端（OpenRouter 相容 chat/completions 介面）
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient 創建 AI 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL("https://openrouter.ai/api/v1").
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("HTTP-Referer", "https://home-assistant.local").
		SetHeader("X-Title", "Home Assistant")

	return &Client{
		config: cfg,
		client: client,
	}
}

// Generate 生成回應。imageData 非空時走多模態請求。
func (c *Client) Generate(ctx context.Context, prompt string, imageData string) (string, error) {
	// 簡化 prompt：去除多餘換行、前後空白、連續空白合併為一格
	simplePrompt := strings.TrimSpace(prompt)
	simplePrompt = strings.Join(strings.Fields(simplePrompt), " ")

	msgContent := []map[string]interface{}{
		{
			"type": "text",
			"text": simplePrompt,
		},
	}
	if imageData != "" {
		url := imageData
		if !strings.HasPrefix(imageData, "data:image/") {
			url = fmt.Sprintf("data:image/jpeg;base64,%s", imageData)
		}
		msgContent = append(msgContent, map[string]interface{}{
			"type": "image_url",
			"image_url": map[string]string{
				"url": url,
			},
		})
		common.LogDebug("多模態請求",
			zap.Int("image_data_length", len(url)),
		)
	}

	// 構建請求
	req := map[string]interface{}{
		"model": c.config.OpenRouter.Model,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": msgContent,
			},
		},
		"max_tokens": c.config.OpenRouter.MaxTokens,
	}

	// 發送請求
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")

	if err != nil {
		return "", fmt.Errorf("failed to send request to AI backend: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("AI backend returned error: %s", resp.String())
	}

	// 解析回應
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse AI backend response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in AI backend response")
	}

	return result.Choices[0].Message.Content, nil
}
