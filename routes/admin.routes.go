package routes

import (
	"blogiq/internal/controllers"
	"blogiq/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes only requires a session; the admin role is checked per
// request against the identity provider.
func RegisterAdminRoutes(router *gin.Engine, auth *middleware.Authenticator, adminController *controllers.AdminController) {
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(auth.AuthMiddleware())
	{
		adminRoutes.GET("/stats", adminController.GetStats)
		adminRoutes.GET("/creators/pending", adminController.GetPendingCreators)
		adminRoutes.PUT("/users/:id/role", adminController.UpdateUserRole)
	}
}
