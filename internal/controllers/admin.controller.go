package controllers

import (
	"net/http"

	"blogiq/internal/middleware"
	"blogiq/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	creators *services.CreatorService
	admin    *services.AdminService
}

func NewAdminController(creators *services.CreatorService, admin *services.AdminService) *AdminController {
	return &AdminController{creators: creators, admin: admin}
}

type UpdateRoleRequest struct {
	Action services.CreatorAction `json:"action" binding:"required" example:"upgrade"`
}

// UpdateUserRole godoc
// @Summary Change a user's creator status
// @Description upgrade approves an application, reject_application denies it and revoke removes creator access
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Identity provider user ID"
// @Param request body UpdateRoleRequest true "Action"
// @Success 200 {object} map[string]interface{} "User privileges updated successfully."
// @Failure 400 {object} map[string]interface{} "Invalid action"
// @Failure 403 {object} map[string]interface{} "Admin access required"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Failure 500 {object} map[string]interface{} "Failed to update user privileges"
// @Router /admin/users/{id}/role [put]
func (ac *AdminController) UpdateUserRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	access, err := ac.creators.Transition(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Action)
	if err != nil {
		respondError(c, err, "Failed to update user privileges")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User privileges updated successfully.",
		"data":    access,
	})
}

// GetStats godoc
// @Summary Admin dashboard figures
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Stats retrieved successfully"
// @Failure 403 {object} map[string]interface{} "Admin access required"
// @Router /admin/stats [get]
func (ac *AdminController) GetStats(c *gin.Context) {
	stats, err := ac.admin.Stats(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "Failed to fetch stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Stats retrieved successfully",
		"data":    stats,
	})
}

// GetPendingCreators godoc
// @Summary Users waiting on a creator application decision
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Pending creators retrieved successfully"
// @Failure 403 {object} map[string]interface{} "Admin access required"
// @Router /admin/creators/pending [get]
func (ac *AdminController) GetPendingCreators(c *gin.Context) {
	applicants, err := ac.creators.PendingCreators(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "Failed to fetch pending creators")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Pending creators retrieved successfully",
		"data":    applicants,
	})
}
