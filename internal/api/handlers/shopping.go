package handlers

import (
	"net/http"

	"home-assistant/internal/api/middleware"
	"home-assistant/internal/core/shopping"
	"home-assistant/internal/pkg/common"
	"home-assistant/internal/storage"

	"github.com/gin-gonic/gin"
)

// AddShoppingItemRequest 新增採買項目請求。
// quantity 刻意保留自由文字（例如 "300g"、"兩包"），入庫時才正規化。
type AddShoppingItemRequest struct {
	ItemName string `json:"item_name" binding:"required"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// UpdateShoppingItemRequest 採買項目部分更新請求
type UpdateShoppingItemRequest struct {
	ItemName *string `json:"item_name"`
	Quantity *string `json:"quantity"`
	Unit     *string `json:"unit"`
}

// CheckShoppingItemRequest 勾選狀態請求
type CheckShoppingItemRequest struct {
	Checked *bool `json:"checked" binding:"required"`
}

// HandleAddShoppingItem 處理 POST /shopping
func HandleAddShoppingItem(svc *shopping.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		var req AddShoppingItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		if err := svc.Add(c.Request.Context(), sess.OwnerID, req.ItemName, req.Quantity, req.Unit); err != nil {
			respondError(c, err, "Failed to add shopping item")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"status": "ok"})
	}
}

// HandleListShopping 處理 GET /shopping
func HandleListShopping(svc *shopping.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		items, err := svc.List(c.Request.Context(), sess.OwnerID)
		if err != nil {
			respondError(c, err, "Failed to list shopping items")
			return
		}
		if items == nil {
			items = []common.ShoppingItem{}
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

// HandleCheckShoppingItem 處理 PUT /shopping/:id/check
func HandleCheckShoppingItem(svc *shopping.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		var req CheckShoppingItemRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Checked == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		if err := svc.SetChecked(c.Request.Context(), sess.OwnerID, id, *req.Checked); err != nil {
			respondError(c, err, "Failed to update shopping item")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// HandleUpdateShoppingItem 處理 PUT /shopping/:id
func HandleUpdateShoppingItem(svc *shopping.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		var req UpdateShoppingItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		fields := storage.ShoppingItemUpdate{
			Name:     req.ItemName,
			Quantity: req.Quantity,
			Unit:     req.Unit,
		}
		if err := svc.Update(c.Request.Context(), sess.OwnerID, id, fields); err != nil {
			respondError(c, err, "Failed to update shopping item")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// HandleDeleteShoppingItem 處理 DELETE /shopping/:id
func HandleDeleteShoppingItem(svc *shopping.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		if err := svc.Delete(c.Request.Context(), sess.OwnerID, id); err != nil {
			respondError(c, err, "Failed to delete shopping item")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// HandleClearShopping 處理 DELETE /shopping
func HandleClearShopping(svc *shopping.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		if err := svc.Clear(c.Request.Context(), sess.OwnerID); err != nil {
			respondError(c, err, "Failed to clear shopping list")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// HandleDeleteCheckedShopping 處理 DELETE /shopping/checked
func HandleDeleteCheckedShopping(svc *shopping.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		if err := svc.DeleteChecked(c.Request.Context(), sess.OwnerID); err != nil {
			respondError(c, err, "Failed to delete checked items")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// HandlePromoteShopping 處理 POST /shopping/promote：
// 已勾選的項目正規化、AI 分區後轉入庫存
func HandlePromoteShopping(svc *shopping.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		promoted, err := svc.PromoteCheckedItems(c.Request.Context(), sess.OwnerID)
		if err != nil {
			respondError(c, err, "Failed to promote checked items")
			return
		}
		c.JSON(http.StatusOK, gin.H{"promoted": promoted})
	}
}
