package handlers

import (
	"net/http"

	"home-assistant/internal/api/middleware"
	"home-assistant/internal/core/chat"
	"home-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// ChatRequest 聊天請求
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// HandleChat 處理 POST /chat
func HandleChat(svc *chat.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		reply, err := svc.Send(c.Request.Context(), sess.OwnerID, req.Message)
		if err != nil {
			respondError(c, err, "Chat failed, please try again")
			return
		}
		c.JSON(http.StatusOK, gin.H{"reply": reply})
	}
}

// HandleChatHistory 處理 GET /chat/history（?date= 過濾單日）
func HandleChatHistory(svc *chat.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		history, err := svc.History(c.Request.Context(), sess.OwnerID, c.Query("date"))
		if err != nil {
			respondError(c, err, "Failed to load chat history")
			return
		}
		if history == nil {
			history = []common.ChatMessage{}
		}
		c.JSON(http.StatusOK, gin.H{"messages": history})
	}
}

// HandleChatDates 處理 GET /chat/dates
func HandleChatDates(svc *chat.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		dates, err := svc.Dates(c.Request.Context(), sess.OwnerID)
		if err != nil {
			respondError(c, err, "Failed to load chat dates")
			return
		}
		if dates == nil {
			dates = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"dates": dates})
	}
}

// HandleClearChat 處理 DELETE /chat/history
func HandleClearChat(svc *chat.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		if err := svc.Clear(c.Request.Context(), sess.OwnerID); err != nil {
			respondError(c, err, "Failed to clear chat history")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
