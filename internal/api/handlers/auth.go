package handlers

import (
	"errors"
	"net/http"
	"strings"

	"home-assistant/internal/core/session"
	"home-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CredentialsRequest 登入/註冊請求
type CredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse 登入/註冊回應
type AuthResponse struct {
	Token   string `json:"token"`
	OwnerID int64  `json:"owner_id"`
}

// HandleLogin 處理 /auth/login
func HandleLogin(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		sess, token, err := manager.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			var cerr *common.CustomError
			if errors.As(err, &cerr) {
				c.JSON(cerr.Status, gin.H{"error": cerr.Message, "code": cerr.Code})
				return
			}
			common.LogError("登入失敗", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}

		c.JSON(http.StatusOK, AuthResponse{Token: token, OwnerID: sess.OwnerID})
	}
}

// HandleRegister 處理 /auth/register
func HandleRegister(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		sess, token, err := manager.Register(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			var cerr *common.CustomError
			if errors.As(err, &cerr) {
				c.JSON(cerr.Status, gin.H{"error": cerr.Message, "code": cerr.Code})
				return
			}
			if common.IsValidationError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			common.LogError("註冊失敗", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			return
		}

		c.JSON(http.StatusCreated, AuthResponse{Token: token, OwnerID: sess.OwnerID})
	}
}

// HandleLogout 處理 /auth/logout
func HandleLogout(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		manager.Logout(token)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
