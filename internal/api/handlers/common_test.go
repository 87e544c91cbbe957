package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"home-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

func recordError(t *testing.T, err error) (*httptest.ResponseRecorder, common.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/assistant/calories", nil)

	respondError(c, err, "request failed")

	var body common.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return rec, body
}

func TestRespondErrorAIServiceFailure(t *testing.T) {
	rec, body := recordError(t, common.NewAIServiceError(errors.New("backend down")))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if body.Code != "AI_SERVICE_ERROR" {
		t.Errorf("expected AI_SERVICE_ERROR, got %q", body.Code)
	}
}

func TestRespondErrorWrappedAIServiceFailure(t *testing.T) {
	// 核心層常用 %w 再包一層，狀態碼與代碼仍需對應到 503
	wrapped := fmt.Errorf("failed to generate daily recipe: %w",
		common.NewAIServiceError(errors.New("backend down")))
	rec, body := recordError(t, wrapped)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if body.Code != "AI_SERVICE_ERROR" {
		t.Errorf("expected AI_SERVICE_ERROR, got %q", body.Code)
	}
}
