package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"home-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError 把核心層錯誤對應到 HTTP 回應
func respondError(c *gin.Context, err error, fallback string) {
	var cerr *common.CustomError
	if errors.As(err, &cerr) {
		c.JSON(cerr.Status, common.ErrorResponse{Code: cerr.Code, Message: cerr.Message})
		return
	}
	if common.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	common.LogError(fallback,
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}

// pathID 解析路徑參數中的整數編號
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

// parsePositiveInt 解析正整數查詢參數
func parsePositiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
