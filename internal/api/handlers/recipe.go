package handlers

import (
	"net/http"
	"time"

	"home-assistant/internal/api/middleware"
	"home-assistant/internal/core/recipe"

	"github.com/gin-gonic/gin"
)

// recipeDate 取查詢參數的日期，預設今天
func recipeDate(c *gin.Context) string {
	if date := c.Query("date"); date != "" {
		return date
	}
	return time.Now().Format("2006-01-02")
}

// HandleDailyRecipe 處理 GET /recipe/daily
func HandleDailyRecipe(svc *recipe.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		proposal, err := svc.Daily(c.Request.Context(), sess.OwnerID, recipeDate(c))
		if err != nil {
			respondError(c, err, "Failed to generate daily recipe")
			return
		}
		c.JSON(http.StatusOK, proposal)
	}
}

// HandleReconcileRecipe 處理 GET /recipe/daily/reconcile：
// 把當日食譜對照庫存，待買在前、已有在後
func HandleReconcileRecipe(svc *recipe.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		need, have, err := svc.ReconcileDaily(c.Request.Context(), sess.OwnerID, recipeDate(c))
		if err != nil {
			respondError(c, err, "Failed to reconcile recipe")
			return
		}
		if need == nil {
			need = []recipe.Annotated{}
		}
		if have == nil {
			have = []recipe.Annotated{}
		}
		c.JSON(http.StatusOK, gin.H{"need": need, "have": have})
	}
}

// HandleExportRecipeNeeds 處理 POST /recipe/daily/export：
// 把對照後的待買食材加入採買清單
func HandleExportRecipeNeeds(svc *recipe.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		added, err := svc.ExportNeeds(c.Request.Context(), sess.OwnerID, recipeDate(c))
		if err != nil {
			respondError(c, err, "Failed to export needed ingredients")
			return
		}
		c.JSON(http.StatusOK, gin.H{"added": added})
	}
}

// HandleCookRecipe 處理 POST /recipe/daily/cook：依當日食譜扣庫存。
// 部分成功是預期結果，一律回 200 並附上未解析清單。
func HandleCookRecipe(svc *recipe.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		result, err := svc.Cook(c.Request.Context(), sess.OwnerID, recipeDate(c))
		if err != nil {
			respondError(c, err, "Failed to apply consumption")
			return
		}
		if result.Unresolved == nil {
			result.Unresolved = []string{}
		}
		c.JSON(http.StatusOK, result)
	}
}
