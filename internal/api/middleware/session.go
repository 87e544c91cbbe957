package middleware

import (
	"net/http"
	"strings"

	"home-assistant/internal/core/session"

	"github.com/gin-gonic/gin"
)

// SessionKey gin context 中工作階段的鍵
const SessionKey = "session"

// Session 解析 Authorization Bearer token 為工作階段。
// 本機後端不需要 token，一律拿到單租戶工作階段。
func Session(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

		sess, err := manager.Resolve(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired session",
				"code":  "UNAUTHORIZED",
			})
			return
		}

		c.Set(SessionKey, sess)
		c.Next()
	}
}

// MustSession 從 gin context 取出工作階段
func MustSession(c *gin.Context) *session.Session {
	return c.MustGet(SessionKey).(*session.Session)
}
