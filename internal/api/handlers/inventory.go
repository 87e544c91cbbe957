package handlers

import (
	"net/http"

	"home-assistant/internal/api/middleware"
	"home-assistant/internal/core/inventory"
	"home-assistant/internal/pkg/common"
	"home-assistant/internal/storage"

	"github.com/gin-gonic/gin"
)

// AddLotRequest 入庫請求
type AddLotRequest struct {
	Name       string  `json:"name" binding:"required"`
	Quantity   float64 `json:"quantity" binding:"required"`
	Unit       string  `json:"unit"`
	ExpiryDate string  `json:"expiry_date"`
	BuyDate    string  `json:"buy_date"`
	Area       string  `json:"area"`
}

// UpdateLotRequest 批次部分更新請求；nil 欄位不變更
type UpdateLotRequest struct {
	Name       *string `json:"name"`
	Quantity   *int    `json:"quantity"`
	Unit       *string `json:"unit"`
	ExpiryDate *string `json:"expiry_date"`
	BuyDate    *string `json:"buy_date"`
	Area       *string `json:"area"`
}

// AdjustQuantityRequest 數量差值請求
type AdjustQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// HandleAddLot 處理 POST /inventory
func HandleAddLot(svc *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		var req AddLotRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		if err := svc.AddItem(c.Request.Context(), sess.OwnerID, req.Name, req.Quantity, req.Unit, req.ExpiryDate, req.BuyDate, req.Area); err != nil {
			respondError(c, err, "Failed to add inventory lot")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"status": "ok"})
	}
}

// HandleListLots 處理 GET /inventory（?area= 過濾單一區域）
func HandleListLots(svc *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		var (
			lots []common.Lot
			err  error
		)
		if area := c.Query("area"); area != "" {
			lots, err = svc.ListByArea(c.Request.Context(), sess.OwnerID, area)
		} else {
			lots, err = svc.ListAll(c.Request.Context(), sess.OwnerID)
		}
		if err != nil {
			respondError(c, err, "Failed to list inventory")
			return
		}
		if lots == nil {
			lots = []common.Lot{}
		}
		c.JSON(http.StatusOK, gin.H{"lots": lots})
	}
}

// HandleExpiringLots 處理 GET /inventory/expiring
func HandleExpiringLots(svc *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		days := 3
		if v := c.Query("days"); v != "" {
			if parsed, ok := parsePositiveInt(v); ok {
				days = parsed
			}
		}

		lots, err := svc.ExpiringSoon(c.Request.Context(), sess.OwnerID, days)
		if err != nil {
			respondError(c, err, "Failed to list expiring inventory")
			return
		}
		if lots == nil {
			lots = []common.Lot{}
		}
		c.JSON(http.StatusOK, gin.H{"lots": lots, "days": days})
	}
}

// HandleUpdateLot 處理 PUT /inventory/:id
func HandleUpdateLot(svc *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		var req UpdateLotRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		fields := storage.LotUpdate{
			Name:       req.Name,
			Quantity:   req.Quantity,
			Unit:       req.Unit,
			ExpiryDate: req.ExpiryDate,
			BuyDate:    req.BuyDate,
			Area:       req.Area,
		}
		if err := svc.Update(c.Request.Context(), sess.OwnerID, id, fields); err != nil {
			respondError(c, err, "Failed to update inventory lot")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// HandleAdjustQuantity 處理 POST /inventory/:id/adjust
func HandleAdjustQuantity(svc *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		var req AdjustQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		if err := svc.AdjustQuantity(c.Request.Context(), sess.OwnerID, id, req.Delta); err != nil {
			respondError(c, err, "Failed to adjust quantity")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// HandleDeleteLot 處理 DELETE /inventory/:id
func HandleDeleteLot(svc *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		if err := svc.Delete(c.Request.Context(), sess.OwnerID, id); err != nil {
			respondError(c, err, "Failed to delete inventory lot")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
