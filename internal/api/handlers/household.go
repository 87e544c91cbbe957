package handlers

import (
	"net/http"

	"home-assistant/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// SettingRequest 設定請求
type SettingRequest struct {
	Value string `json:"value"`
}

// EquipmentRequest 廚房設備清單請求（整份取代）
type EquipmentRequest struct {
	Equipment []string `json:"equipment"`
}

// HandleGetSetting 處理 GET /settings/:key
func HandleGetSetting() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		value, err := sess.Store.GetSetting(c.Request.Context(), sess.OwnerID, c.Param("key"))
		if err != nil {
			respondError(c, err, "Failed to load setting")
			return
		}
		c.JSON(http.StatusOK, gin.H{"key": c.Param("key"), "value": value})
	}
}

// HandleSetSetting 處理 PUT /settings/:key
func HandleSetSetting() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		var req SettingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		if err := sess.Store.SetSetting(c.Request.Context(), sess.OwnerID, c.Param("key"), req.Value); err != nil {
			respondError(c, err, "Failed to save setting")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// HandleGetEquipment 處理 GET /equipment
func HandleGetEquipment() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		equipment, err := sess.Store.GetKitchenEquipment(c.Request.Context(), sess.OwnerID)
		if err != nil {
			respondError(c, err, "Failed to load kitchen equipment")
			return
		}
		if equipment == nil {
			equipment = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"equipment": equipment})
	}
}

// HandleUpdateEquipment 處理 PUT /equipment
func HandleUpdateEquipment() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		var req EquipmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		if err := sess.Store.UpdateKitchenEquipment(c.Request.Context(), sess.OwnerID, req.Equipment); err != nil {
			respondError(c, err, "Failed to update kitchen equipment")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
