package handlers

import (
	"net/http"
	"time"

	"home-assistant/internal/api/middleware"
	"home-assistant/internal/core/assistant"
	"home-assistant/internal/core/inventory"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"home-assistant/internal/pkg/common"
)

// RecognizeRequest 影像辨識請求。image 為 base64 或 URL。
// auto_add 為 true 時辨識結果直接入庫。
type RecognizeRequest struct {
	Image   string `json:"image" binding:"required"`
	AutoAdd bool   `json:"auto_add"`
}

// EstimateCaloriesRequest 熱量估算請求
type EstimateCaloriesRequest struct {
	FoodName string `json:"food_name" binding:"required"`
}

// EstimateCategoryRequest 分區估算請求
type EstimateCategoryRequest struct {
	ItemName string `json:"item_name" binding:"required"`
}

// HandleRecognizeFood 處理 POST /assistant/recognize
func HandleRecognizeFood(a *assistant.Assistant, inv *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
			c.Header("X-Request-ID", requestID)
		}

		var req RecognizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		common.LogInfo("開始處理影像辨識請求",
			zap.String("request_id", requestID),
			zap.Int("image_length", len(req.Image)),
		)

		result, err := a.RecognizeFood(c.Request.Context(), req.Image)
		if err != nil {
			respondError(c, err, "Food recognition failed")
			return
		}

		if req.AutoAdd {
			expiry := ""
			if result.ExpiryDays > 0 {
				expiry = time.Now().AddDate(0, 0, result.ExpiryDays).Format("2006-01-02")
			}
			today := time.Now().Format("2006-01-02")
			if err := inv.AddItem(c.Request.Context(), sess.OwnerID, result.Name, result.Quantity, "", expiry, today, result.Area); err != nil {
				common.LogWarn("辨識結果入庫失敗",
					zap.String("request_id", requestID),
					zap.String("名稱", result.Name),
					zap.Error(err),
				)
			}
		}

		c.JSON(http.StatusOK, result)
	}
}

// HandleEstimateCalories 處理 POST /assistant/calories
func HandleEstimateCalories(a *assistant.Assistant) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EstimateCaloriesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		calories, err := a.EstimateCalories(c.Request.Context(), req.FoodName)
		if err != nil {
			respondError(c, err, "Calorie estimation failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"food_name": req.FoodName, "calories": calories})
	}
}

// HandleEstimateCategory 處理 POST /assistant/category
func HandleEstimateCategory(a *assistant.Assistant) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EstimateCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		area, err := a.EstimateCategory(c.Request.Context(), req.ItemName)
		if err != nil {
			respondError(c, err, "Category estimation failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"item_name": req.ItemName, "area": area})
	}
}

// HandleSuggest 處理 GET /assistant/suggest
func HandleSuggest(a *assistant.Assistant) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)
		ctx := c.Request.Context()

		family, err := sess.Store.GetFamilyMembers(ctx, sess.OwnerID)
		if err != nil {
			respondError(c, err, "Failed to load family members")
			return
		}
		lots, err := sess.Store.GetAllLots(ctx, sess.OwnerID)
		if err != nil {
			respondError(c, err, "Failed to load inventory")
			return
		}
		shopping, err := sess.Store.GetShoppingList(ctx, sess.OwnerID)
		if err != nil {
			respondError(c, err, "Failed to load shopping list")
			return
		}

		suggestion, err := a.Suggest(ctx, family, lots, shopping)
		if err != nil {
			respondError(c, err, "Suggestion failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
	}
}

// HandleRecommendRestaurant 處理 GET /assistant/restaurant
func HandleRecommendRestaurant(a *assistant.Assistant) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		family, err := sess.Store.GetFamilyMembers(c.Request.Context(), sess.OwnerID)
		if err != nil {
			respondError(c, err, "Failed to load family members")
			return
		}

		rec, err := a.RecommendRestaurant(c.Request.Context(), family)
		if err != nil {
			respondError(c, err, "Restaurant recommendation failed")
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}
