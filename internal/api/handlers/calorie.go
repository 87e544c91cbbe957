package handlers

import (
	"net/http"
	"time"

	"home-assistant/internal/api/middleware"
	"home-assistant/internal/core/calorie"
	"home-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// CalorieRecordRequest 熱量紀錄請求
type CalorieRecordRequest struct {
	Date     string `json:"date"`
	MealType string `json:"meal_type" binding:"required"`
	FoodName string `json:"food_name" binding:"required"`
	Calories int    `json:"calories"`
	Note     string `json:"note"`
}

// HandleAddCalorieRecord 處理 POST /calories
func HandleAddCalorieRecord(svc *calorie.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		var req CalorieRecordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		id, err := svc.AddRecord(c.Request.Context(), sess.OwnerID, common.CalorieRecord{
			Date:     req.Date,
			MealType: req.MealType,
			FoodName: req.FoodName,
			Calories: req.Calories,
			Note:     req.Note,
		})
		if err != nil {
			respondError(c, err, "Failed to add calorie record")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id})
	}
}

// HandleListCalorieRecords 處理 GET /calories（?date=，預設今天）
func HandleListCalorieRecords(svc *calorie.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		date := c.Query("date")
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		records, err := svc.Records(c.Request.Context(), sess.OwnerID, date)
		if err != nil {
			respondError(c, err, "Failed to list calorie records")
			return
		}
		if records == nil {
			records = []common.CalorieRecord{}
		}
		c.JSON(http.StatusOK, gin.H{"records": records, "date": date})
	}
}

// HandleDeleteCalorieRecord 處理 DELETE /calories/:id
func HandleDeleteCalorieRecord(svc *calorie.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		if err := svc.DeleteRecord(c.Request.Context(), sess.OwnerID, id); err != nil {
			respondError(c, err, "Failed to delete calorie record")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// HandleDailyCalories 處理 GET /calories/daily
func HandleDailyCalories(svc *calorie.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		date := c.Query("date")
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		summary, err := svc.Daily(c.Request.Context(), sess.OwnerID, date)
		if err != nil {
			respondError(c, err, "Failed to summarize calories")
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// HandleWeeklyCalories 處理 GET /calories/weekly（?end=，預設今天）
func HandleWeeklyCalories(svc *calorie.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		end := c.Query("end")
		if end == "" {
			end = time.Now().Format("2006-01-02")
		}

		week, err := svc.Weekly(c.Request.Context(), sess.OwnerID, end)
		if err != nil {
			respondError(c, err, "Failed to summarize weekly calories")
			return
		}
		c.JSON(http.StatusOK, gin.H{"days": week})
	}
}
