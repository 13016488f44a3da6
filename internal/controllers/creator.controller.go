package controllers

import (
	"net/http"

	"blogiq/internal/middleware"
	"blogiq/internal/services"

	"github.com/gin-gonic/gin"
)

type CreatorController struct {
	creators *services.CreatorService
}

func NewCreatorController(creators *services.CreatorService) *CreatorController {
	return &CreatorController{creators: creators}
}

// Apply godoc
// @Summary Apply to become a creator
// @Tags creator
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Application submitted"
// @Failure 400 {object} map[string]interface{} "Already a creator"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /creator/apply [post]
func (cc *CreatorController) Apply(c *gin.Context) {
	userID := middleware.UserID(c)
	access, err := cc.creators.Transition(c.Request.Context(), userID, userID, services.ActionApply)
	if err != nil {
		respondError(c, err, "Failed to submit application")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Application submitted",
		"data":    access,
	})
}
