package routes

import (
	"blogiq/internal/controllers"
	"blogiq/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterCreatorRoutes(router *gin.Engine, auth *middleware.Authenticator, creatorController *controllers.CreatorController) {
	creatorRoutes := router.Group("/creator")
	creatorRoutes.Use(auth.AuthMiddleware())
	{
		creatorRoutes.POST("/apply", creatorController.Apply)
	}
}
