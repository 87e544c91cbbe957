// Package assistant 彙整所有對外 AI 能力：聊天、影像辨識、熱量與
// 分類估算、每日食譜、餐廳推薦與食譜配圖。每個能力都有同步阻塞
// 形式與用 task.Run 包出來的非同步形式，兩者除交付時機外行為一致。
package assistant

import (
	"context"
	"fmt"
	"strings"

	"home-assistant/internal/core/ai/service"
	"home-assistant/internal/core/ai/task"
	"home-assistant/internal/core/image"
	"home-assistant/internal/core/recipe"
	"home-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// Recognition 影像辨識結果
type Recognition struct {
	Name       string  `json:"name"`
	NameEn     string  `json:"name_en"`
	Quantity   float64 `json:"quantity"`
	ExpiryDays int     `json:"expiry_days"`
	Area       string  `json:"area"`
}

// RestaurantRecommendation 餐廳推薦結果
type RestaurantRecommendation struct {
	Recommendation string `json:"recommendation"`
	MapQuery       string `json:"map_query"`
}

// Assistant AI 助理
type Assistant struct {
	ai       *service.Service
	imageSvc *image.Service
}

// New 創建 AI 助理
func New(ai *service.Service, imageSvc *image.Service) *Assistant {
	return &Assistant{ai: ai, imageSvc: imageSvc}
}

// Chat 聊天回覆，帶入家庭、庫存與設備上下文
func (a *Assistant) Chat(ctx context.Context, message string, family []common.FamilyMember, inventory []common.Lot, equipment []string) (string, error) {
	prompt := fmt.Sprintf(`你是家庭飲食助理，請用繁體中文簡潔回答。
		家庭成員：
		%s
		目前庫存：
		%s
		廚房設備：%s
		使用者訊息：%s`,
		common.FormatFamilyContext(family),
		common.FormatInventoryContext(inventory),
		common.FormatEquipmentContext(equipment),
		message)

	resp, err := a.ai.ProcessRequest(ctx, prompt, "")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}

// ChatAsync Chat 的非同步形式；失敗時回呼收到空字串與 ok=false
func (a *Assistant) ChatAsync(ctx context.Context, message string, family []common.FamilyMember, inventory []common.Lot, equipment []string, cb task.Callback[string]) {
	task.Run(ctx, "chat", func(ctx context.Context) (string, error) {
		return a.Chat(ctx, message, family, inventory, equipment)
	}, cb)
}

// RecognizeFood 影像辨識：回傳食物名稱、估計數量、建議效期與存放區域
func (a *Assistant) RecognizeFood(ctx context.Context, imageData string) (*Recognition, error) {
	prompt := fmt.Sprintf(`請辨識圖片中的食物並以最緊湊的 JSON 回覆，不要加任何說明文字。
		格式：{"name":"中文名稱","name_en":"English name","quantity":數量,"expiry_days":建議保存天數,"area":"存放區域"}
		area 必須是以下其中之一：%s`,
		strings.Join(common.Areas, ", "))

	resp, err := a.ai.ProcessRequest(ctx, prompt, imageData)
	if err != nil {
		return nil, err
	}

	var result Recognition
	if err := common.ParseJSON(common.StripCodeFence(resp.Content), &result); err != nil {
		common.LogError("影像辨識回應無法解析",
			zap.String("response", resp.Content),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to parse recognition response: %w", err)
	}
	if result.Quantity <= 0 {
		result.Quantity = 1
	}
	if !common.IsValidArea(result.Area) {
		result.Area = common.AreaGeneral
	}
	return &result, nil
}

// RecognizeFoodAsync RecognizeFood 的非同步形式
func (a *Assistant) RecognizeFoodAsync(ctx context.Context, imageData string, cb task.Callback[*Recognition]) {
	task.Run(ctx, "recognize_food", func(ctx context.Context) (*Recognition, error) {
		return a.RecognizeFood(ctx, imageData)
	}, cb)
}

// EstimateCalories 估算單一食物的熱量（kcal）
func (a *Assistant) EstimateCalories(ctx context.Context, foodName string) (int, error) {
	prompt := fmt.Sprintf(`請估算「%s」一份的熱量，只回覆 JSON：{"calories":整數}`, foodName)

	resp, err := a.ai.ProcessRequest(ctx, prompt, "")
	if err != nil {
		return 0, err
	}

	var result struct {
		Calories int `json:"calories"`
	}
	if err := common.ParseJSON(common.StripCodeFence(resp.Content), &result); err != nil {
		return 0, fmt.Errorf("failed to parse calorie response: %w", err)
	}
	return result.Calories, nil
}

// EstimateCaloriesAsync EstimateCalories 的非同步形式
func (a *Assistant) EstimateCaloriesAsync(ctx context.Context, foodName string, cb task.Callback[int]) {
	task.Run(ctx, "estimate_calories", func(ctx context.Context) (int, error) {
		return a.EstimateCalories(ctx, foodName)
	}, cb)
}

// RecognizeAndEstimateAsync 影像辨識後接熱量估算的組合操作。
// 需要順序時用這個，不要連發兩個獨立的非同步呼叫。
func (a *Assistant) RecognizeAndEstimateAsync(ctx context.Context, imageData string, cb task.Callback[*RecognizedFood]) {
	task.RunChained(ctx, "recognize_and_estimate",
		func(ctx context.Context) (*Recognition, error) {
			return a.RecognizeFood(ctx, imageData)
		},
		func(ctx context.Context, r *Recognition) (*RecognizedFood, error) {
			calories, err := a.EstimateCalories(ctx, r.Name)
			if err != nil {
				// 熱量估不出來不影響辨識結果
				common.LogWarn("熱量估算失敗", zap.String("食物", r.Name), zap.Error(err))
				calories = 0
			}
			return &RecognizedFood{Recognition: *r, Calories: calories}, nil
		},
		cb)
}

// RecognizedFood 影像辨識加熱量估算的合併結果
type RecognizedFood struct {
	Recognition
	Calories int `json:"calories"`
}

// EstimateCategory 將品項分類到五個固定存放區域之一。
// 回應不明確時固定回 General，只有傳輸層失敗才回傳錯誤。
func (a *Assistant) EstimateCategory(ctx context.Context, itemName string) (string, error) {
	prompt := fmt.Sprintf(`「%s」應該存放在哪個區域？只回覆以下其中一個詞，不要加任何其他文字：%s`,
		itemName, strings.Join(common.Areas, ", "))

	resp, err := a.ai.ProcessRequest(ctx, prompt, "")
	if err != nil {
		return "", err
	}

	answer := strings.TrimSpace(resp.Content)
	for _, area := range common.Areas {
		if strings.EqualFold(answer, area) || strings.Contains(strings.ToLower(answer), strings.ToLower(area)) {
			return area, nil
		}
	}
	return common.AreaGeneral, nil
}

// EstimateCategoryAsync EstimateCategory 的非同步形式
func (a *Assistant) EstimateCategoryAsync(ctx context.Context, itemName string, cb task.Callback[string]) {
	task.Run(ctx, "estimate_category", func(ctx context.Context) (string, error) {
		return a.EstimateCategory(ctx, itemName)
	}, cb)
}

// Suggest 營養師檢查清單：採買缺口、避開過敏原的 1–2 道食譜建議、
// 即將過期品項提醒
func (a *Assistant) Suggest(ctx context.Context, family []common.FamilyMember, inventory []common.Lot, shopping []common.ShoppingItem) (string, error) {
	prompt := fmt.Sprintf(`你是家庭營養師，請根據以下資料用繁體中文提出一份檢查清單：
		1. 採買清單還缺什麼常備食材
		2. 用現有庫存能做的 1-2 道料理（避開所有成員的過敏原）
		3. 哪些庫存即將過期需優先使用
		家庭成員：
		%s
		目前庫存：
		%s
		採買清單：
		%s`,
		common.FormatFamilyContext(family),
		common.FormatInventoryContext(inventory),
		common.FormatShoppingContext(shopping))

	resp, err := a.ai.ProcessRequest(ctx, prompt, "")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}

// SuggestAsync Suggest 的非同步形式
func (a *Assistant) SuggestAsync(ctx context.Context, family []common.FamilyMember, inventory []common.Lot, shopping []common.ShoppingItem, cb task.Callback[string]) {
	task.Run(ctx, "suggest", func(ctx context.Context) (string, error) {
		return a.Suggest(ctx, family, inventory, shopping)
	}, cb)
}

// GenerateDailyRecipe 產生當日食譜，嚴格只取一道
func (a *Assistant) GenerateDailyRecipe(ctx context.Context, family []common.FamilyMember, equipment []string, inventory []common.Lot) (*recipe.Proposal, error) {
	prompt := fmt.Sprintf(`請根據家庭成員、廚房設備與現有庫存，設計「一道」今日料理（嚴格只要一道），用繁體中文。
		家庭成員：
		%s
		廚房設備：%s
		目前庫存：
		%s
		要求：
		1. 優先使用現有庫存的食材，缺的放進 shopping_list
		2. 避開所有成員的過敏原
		3. 所有字段都必須使用雙引號，回傳最緊湊的 JSON，不要加任何說明文字
		格式：
		{"recipes":[{"name":"菜名","calories":整數,"intro":"一句話介紹",
		"ingredients":[{"name":"食材","quantity":數量,"unit":"g|ml|unit"}],
		"shopping_list":[{"name":"待買食材","quantity":數量,"unit":"g|ml|unit"}],
		"steps":["步驟一","步驟二"],"image_keywords":"english keywords for food photo"}]}`,
		common.FormatFamilyContext(family),
		common.FormatEquipmentContext(equipment),
		common.FormatInventoryContext(inventory))

	resp, err := a.ai.ProcessRequest(ctx, prompt, "")
	if err != nil {
		return nil, err
	}
	return recipe.ParseProposal(resp.Content)
}

// GenerateDailyRecipeAsync GenerateDailyRecipe 的非同步形式
func (a *Assistant) GenerateDailyRecipeAsync(ctx context.Context, family []common.FamilyMember, equipment []string, inventory []common.Lot, cb task.Callback[*recipe.Proposal]) {
	task.Run(ctx, "daily_recipe", func(ctx context.Context) (*recipe.Proposal, error) {
		return a.GenerateDailyRecipe(ctx, family, equipment, inventory)
	}, cb)
}

// RecommendRestaurant 外食餐廳推薦
func (a *Assistant) RecommendRestaurant(ctx context.Context, family []common.FamilyMember) (*RestaurantRecommendation, error) {
	prompt := fmt.Sprintf(`請根據家庭成員狀況推薦適合的外食類型，用繁體中文。
		家庭成員：
		%s
		只回覆最緊湊的 JSON：{"recommendation":"推薦內容","map_query":"地圖搜尋關鍵字"}`,
		common.FormatFamilyContext(family))

	resp, err := a.ai.ProcessRequest(ctx, prompt, "")
	if err != nil {
		return nil, err
	}

	var result RestaurantRecommendation
	if err := common.ParseJSON(common.StripCodeFence(resp.Content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse restaurant response: %w", err)
	}
	return &result, nil
}

// RecommendRestaurantAsync RecommendRestaurant 的非同步形式
func (a *Assistant) RecommendRestaurantAsync(ctx context.Context, family []common.FamilyMember, cb task.Callback[*RestaurantRecommendation]) {
	task.Run(ctx, "recommend_restaurant", func(ctx context.Context) (*RestaurantRecommendation, error) {
		return a.RecommendRestaurant(ctx, family)
	}, cb)
}

// GenerateRecipeImage 依關鍵字產生食譜配圖並下載到本機，回傳檔案路徑
func (a *Assistant) GenerateRecipeImage(ctx context.Context, keywords string) (string, error) {
	if strings.TrimSpace(keywords) == "" {
		return "", fmt.Errorf("image keywords are empty")
	}
	url := fmt.Sprintf("https://image.pollinations.ai/prompt/%s", strings.ReplaceAll(strings.TrimSpace(keywords), " ", "%20"))
	return a.imageSvc.Download(ctx, url)
}

// GenerateRecipeImageAsync GenerateRecipeImage 的非同步形式
func (a *Assistant) GenerateRecipeImageAsync(ctx context.Context, keywords string, cb task.Callback[string]) {
	task.Run(ctx, "recipe_image", func(ctx context.Context) (string, error) {
		return a.GenerateRecipeImage(ctx, keywords)
	}, cb)
}
