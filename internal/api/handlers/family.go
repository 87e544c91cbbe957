package handlers

import (
	"net/http"

	"home-assistant/internal/api/middleware"
	"home-assistant/internal/core/family"
	"home-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// FamilyMemberRequest 家庭成員請求
type FamilyMemberRequest struct {
	Name      string  `json:"name" binding:"required"`
	Age       int     `json:"age"`
	Gender    string  `json:"gender"`
	Allergens string  `json:"allergens"`
	Genetic   string  `json:"genetic"`
	HeightCM  float64 `json:"height_cm"`
	WeightKG  float64 `json:"weight_kg"`
}

// familyMemberView 回應用的成員視圖，附上推導的 BMI
type familyMemberView struct {
	common.FamilyMember
	BMI float64 `json:"bmi"`
}

// HandleAddFamilyMember 處理 POST /family
func HandleAddFamilyMember(svc *family.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		var req FamilyMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		member := common.FamilyMember{
			Name:      req.Name,
			Age:       req.Age,
			Gender:    req.Gender,
			Allergens: req.Allergens,
			Genetic:   req.Genetic,
			HeightCM:  req.HeightCM,
			WeightKG:  req.WeightKG,
		}
		if err := svc.Add(c.Request.Context(), sess.OwnerID, member); err != nil {
			respondError(c, err, "Failed to add family member")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"status": "ok"})
	}
}

// HandleListFamily 處理 GET /family
func HandleListFamily(svc *family.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)

		members, err := svc.List(c.Request.Context(), sess.OwnerID)
		if err != nil {
			respondError(c, err, "Failed to list family members")
			return
		}

		views := make([]familyMemberView, 0, len(members))
		for _, m := range members {
			views = append(views, familyMemberView{FamilyMember: m, BMI: m.BMI()})
		}
		c.JSON(http.StatusOK, gin.H{"members": views})
	}
}

// HandleUpdateFamilyMember 處理 PUT /family/:id
func HandleUpdateFamilyMember(svc *family.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		var req FamilyMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		member := common.FamilyMember{
			ID:        id,
			Name:      req.Name,
			Age:       req.Age,
			Gender:    req.Gender,
			Allergens: req.Allergens,
			Genetic:   req.Genetic,
			HeightCM:  req.HeightCM,
			WeightKG:  req.WeightKG,
		}
		if err := svc.Update(c.Request.Context(), sess.OwnerID, member); err != nil {
			respondError(c, err, "Failed to update family member")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// HandleDeleteFamilyMember 處理 DELETE /family/:id
func HandleDeleteFamilyMember(svc *family.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.MustSession(c)
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		if err := svc.Delete(c.Request.Context(), sess.OwnerID, id); err != nil {
			respondError(c, err, "Failed to delete family member")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
